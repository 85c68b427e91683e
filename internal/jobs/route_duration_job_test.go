package jobs

import (
	"context"
	"testing"
	"time"

	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// sqlite rejects the production models' Postgres function defaults
	// (gen_random_uuid(), now()), so the schema is created with explicit
	// sqlite-compatible DDL instead of AutoMigrate. Columns and unique
	// constraints mirror internal/models/gorm; upserts rely on the
	// unique indexes.
	for _, stmt := range []string{
		`CREATE TABLE routes (
			id uuid PRIMARY KEY,
			source_code varchar(3) NOT NULL,
			destination_code varchar(3) NOT NULL,
			average_duration_minutes real,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE UNIQUE INDEX uq_route_source_dest ON routes(source_code, destination_code)`,
		`CREATE TABLE flights (
			id uuid PRIMARY KEY,
			route_id uuid NOT NULL,
			carrier_code varchar(3) NOT NULL,
			flight_number varchar(10) NOT NULL,
			aircraft_type varchar(50),
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE UNIQUE INDEX uq_flight_carrier_number_route ON flights(route_id, carrier_code, flight_number)`,
		`CREATE TABLE flight_instances (
			id uuid PRIMARY KEY,
			flight_id uuid NOT NULL,
			departure_time_utc datetime NOT NULL,
			arrival_time_utc datetime NOT NULL,
			service_date date NOT NULL,
			duration_minutes integer,
			departure_terminal varchar(10),
			arrival_terminal varchar(10),
			is_active numeric DEFAULT true,
			created_at datetime,
			updated_at datetime
		)`,
		`CREATE INDEX idx_instance_flight_date ON flight_instances(flight_id, service_date)`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("Failed to migrate: %v", err)
		}
	}

	return db
}

func seedRouteWithInstances(t *testing.T, db *gorm.DB, source, destination string, durations []int) string {
	route := gormModels.Route{
		ID:              uuid.NewString(),
		SourceCode:      source,
		DestinationCode: destination,
	}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("Failed to seed route: %v", err)
	}

	flight := gormModels.Flight{
		ID:           uuid.NewString(),
		RouteID:      route.ID,
		CarrierCode:  "6E",
		FlightNumber: "6E" + source + destination,
	}
	if err := db.Create(&flight).Error; err != nil {
		t.Fatalf("Failed to seed flight: %v", err)
	}

	base := time.Date(2026, 9, 15, 6, 0, 0, 0, time.UTC)
	for i, minutes := range durations {
		departure := base.Add(time.Duration(i) * 2 * time.Hour)
		instance := gormModels.FlightInstance{
			ID:               uuid.NewString(),
			FlightID:         flight.ID,
			DepartureTimeUTC: departure,
			ArrivalTimeUTC:   departure.Add(time.Duration(minutes) * time.Minute),
			ServiceDate:      base,
			DurationMinutes:  minutes,
			IsActive:         true,
		}
		if err := db.Create(&instance).Error; err != nil {
			t.Fatalf("Failed to seed instance: %v", err)
		}
	}

	return route.ID
}

func TestRouteDurationJob_Run(t *testing.T) {
	db := setupTestDB(t)

	delBom := seedRouteWithInstances(t, db, "DEL", "BOM", []int{120, 140})
	delBlr := seedRouteWithInstances(t, db, "DEL", "BLR", []int{160})

	job := NewRouteDurationJob(db)

	updated, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated != 2 {
		t.Errorf("Expected 2 routes updated, got %d", updated)
	}

	var route gormModels.Route
	if err := db.First(&route, "id = ?", delBom).Error; err != nil {
		t.Fatalf("Failed to reload route: %v", err)
	}
	if route.AverageDurationMinutes == nil || *route.AverageDurationMinutes != 130 {
		t.Errorf("Expected DEL-BOM average 130, got %v", route.AverageDurationMinutes)
	}

	// A fresh struct is required: reusing `route` would make gorm add its
	// stale primary key to the WHERE clause and miss the second row.
	var routeBlr gormModels.Route
	if err := db.First(&routeBlr, "id = ?", delBlr).Error; err != nil {
		t.Fatalf("Failed to reload route: %v", err)
	}
	if routeBlr.AverageDurationMinutes == nil || *routeBlr.AverageDurationMinutes != 160 {
		t.Errorf("Expected DEL-BLR average 160, got %v", routeBlr.AverageDurationMinutes)
	}
}

func TestRouteDurationJob_Run_NoData(t *testing.T) {
	db := setupTestDB(t)
	job := NewRouteDurationJob(db)

	updated, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error on empty tables, got %v", err)
	}
	if updated != 0 {
		t.Errorf("Expected 0 updates, got %d", updated)
	}
}

func TestRouteDurationJob_Status(t *testing.T) {
	db := setupTestDB(t)
	seedRouteWithInstances(t, db, "DEL", "BOM", []int{120})

	job := NewRouteDurationJob(db)

	running, lastRunAt, lastError := job.Status()
	if running || !lastRunAt.IsZero() || lastError != "" {
		t.Errorf("Expected pristine status, got %v %v %q", running, lastRunAt, lastError)
	}

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	running, lastRunAt, lastError = job.Status()
	if running {
		t.Error("Expected job not running after completion")
	}
	if lastRunAt.IsZero() {
		t.Error("Expected last run time to be recorded")
	}
	if lastError != "" {
		t.Errorf("Expected no error recorded, got %q", lastError)
	}
}
