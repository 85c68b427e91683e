package repositories

import (
	"context"
	"testing"
	"time"

	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

func setupInstanceDB(t *testing.T) (*gorm.DB, *InstanceRepository) {
	gdb := setupTestDB(t)

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to unwrap sql.DB: %v", err)
	}

	return gdb, NewInstanceRepository(sqlx.NewDb(sqlDB, "sqlite3"), nil)
}

func seedFlight(t *testing.T, db *gorm.DB, source, destination, carrier, number string) (routeID, flightID string) {
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
		CarrierCode:  carrier,
		FlightNumber: number,
	}
	if err := db.Create(&flight).Error; err != nil {
		t.Fatalf("Failed to seed flight: %v", err)
	}

	return route.ID, flight.ID
}

// seedInstance writes an instance and then rewrites service_date as a bare
// YYYY-MM-DD string: sqlite stores time.Time columns as full timestamps,
// while the bulk fetch compares service_date against the date alone. The
// same update pins is_active, which gorm would otherwise leave to the
// column default when seeding a false value.
func seedInstance(t *testing.T, db *gorm.DB, flightID string, departure, arrival time.Time, active bool) string {
	instance := gormModels.FlightInstance{
		ID:               uuid.NewString(),
		FlightID:         flightID,
		DepartureTimeUTC: departure,
		ArrivalTimeUTC:   arrival,
		ServiceDate:      departure.Truncate(24 * time.Hour),
		DurationMinutes:  int(arrival.Sub(departure).Minutes()),
		IsActive:         active,
	}
	if err := db.Create(&instance).Error; err != nil {
		t.Fatalf("Failed to seed instance: %v", err)
	}

	err := db.Exec(
		"UPDATE flight_instances SET service_date = ?, is_active = ? WHERE id = ?",
		departure.UTC().Format("2006-01-02"), active, instance.ID,
	).Error
	if err != nil {
		t.Fatalf("Failed to normalize seeded instance: %v", err)
	}

	return instance.ID
}

func TestInstanceRepository_FetchBulk_OrderAndProjection(t *testing.T) {
	gdb, repo := setupInstanceDB(t)

	delBom, delBomFlight := seedFlight(t, gdb, "DEL", "BOM", "6E", "6E201")
	delBlr, delBlrFlight := seedFlight(t, gdb, "DEL", "BLR", "AI", "AI501")

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	// Seeded out of departure order on purpose.
	seedInstance(t, gdb, delBomFlight, day.Add(10*time.Hour), day.Add(12*time.Hour+15*time.Minute), true)
	seedInstance(t, gdb, delBlrFlight, day.Add(8*time.Hour), day.Add(10*time.Hour+40*time.Minute), true)
	seedInstance(t, gdb, delBomFlight, day.Add(6*time.Hour), day.Add(8*time.Hour+15*time.Minute), true)

	rows, err := repo.FetchBulk(context.Background(), []string{delBom, delBlr}, day, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].DepartureTimeUTC.Before(rows[i-1].DepartureTimeUTC) {
			t.Errorf("Rows out of departure order at %d: %v after %v",
				i, rows[i].DepartureTimeUTC, rows[i-1].DepartureTimeUTC)
		}
	}

	first := rows[0]
	if first.RouteID != delBom {
		t.Errorf("Expected first row on the DEL-BOM route, got %s", first.RouteID)
	}
	if first.CarrierCode != "6E" || first.FlightNumber != "6E201" {
		t.Errorf("Flight projection wrong: %s %s", first.CarrierCode, first.FlightNumber)
	}
	if first.SourceCode != "DEL" || first.DestinationCode != "BOM" {
		t.Errorf("Route projection wrong: %s-%s", first.SourceCode, first.DestinationCode)
	}
	if first.DurationMinutes != 135 {
		t.Errorf("Expected 135 minutes, got %d", first.DurationMinutes)
	}
	if rows[1].RouteID != delBlr {
		t.Errorf("Expected second row on the DEL-BLR route, got %s", rows[1].RouteID)
	}
}

func TestInstanceRepository_FetchBulk_ExcludesInactive(t *testing.T) {
	gdb, repo := setupInstanceDB(t)

	routeID, flightID := seedFlight(t, gdb, "DEL", "BOM", "6E", "6E201")

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	activeID := seedInstance(t, gdb, flightID, day.Add(6*time.Hour), day.Add(8*time.Hour), true)
	seedInstance(t, gdb, flightID, day.Add(9*time.Hour), day.Add(11*time.Hour), false)

	rows, err := repo.FetchBulk(context.Background(), []string{routeID}, day, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected only the active instance, got %d rows", len(rows))
	}
	if rows[0].InstanceID != activeID {
		t.Errorf("Expected instance %s, got %s", activeID, rows[0].InstanceID)
	}
}

func TestInstanceRepository_FetchBulk_StrictMinDepartureFloor(t *testing.T) {
	gdb, repo := setupInstanceDB(t)

	routeID, flightID := seedFlight(t, gdb, "BLR", "BOM", "6E", "6E330")

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	floor := day.Add(8 * time.Hour)

	seedInstance(t, gdb, flightID, floor.Add(-time.Hour), floor.Add(time.Hour), true)
	seedInstance(t, gdb, flightID, floor, floor.Add(2*time.Hour), true)
	afterID := seedInstance(t, gdb, flightID, floor.Add(time.Minute), floor.Add(2*time.Hour), true)

	rows, err := repo.FetchBulk(context.Background(), []string{routeID}, day, &floor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Departing exactly at the floor does not clear it.
	if len(rows) != 1 {
		t.Fatalf("Expected only the strictly later instance, got %d rows", len(rows))
	}
	if rows[0].InstanceID != afterID {
		t.Errorf("Expected instance %s, got %s", afterID, rows[0].InstanceID)
	}
}

func TestInstanceRepository_FetchBulk_FiltersByServiceDate(t *testing.T) {
	gdb, repo := setupInstanceDB(t)

	routeID, flightID := seedFlight(t, gdb, "DEL", "BOM", "6E", "6E201")

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	nextDay := day.Add(24 * time.Hour)
	wantedID := seedInstance(t, gdb, flightID, day.Add(6*time.Hour), day.Add(8*time.Hour), true)
	seedInstance(t, gdb, flightID, nextDay.Add(6*time.Hour), nextDay.Add(8*time.Hour), true)

	rows, err := repo.FetchBulk(context.Background(), []string{routeID}, day, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row for the service date, got %d", len(rows))
	}
	if rows[0].InstanceID != wantedID {
		t.Errorf("Expected instance %s, got %s", wantedID, rows[0].InstanceID)
	}
}

func TestInstanceRepository_FetchBulk_EmptyRouteIDs(t *testing.T) {
	_, repo := setupInstanceDB(t)

	rows, err := repo.FetchBulk(context.Background(), nil, time.Now(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rows != nil {
		t.Errorf("Expected nil rows for empty input, got %v", rows)
	}
}
