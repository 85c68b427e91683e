package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/limosin/flight-search/internal/db/repositories"
	"github.com/limosin/flight-search/internal/logging"
	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Loader ingests reference data and schedules from a directory of JSON
// files: airports.json, carriers.json, routes.json, schedules.json. Files
// that are absent are skipped. The search core never writes these tables;
// this loader is the only mutation path.
type Loader struct {
	db       *gormlib.DB
	airports *repositories.AirportRepository
	carriers *repositories.CarrierRepository
}

func NewLoader(db *gormlib.DB) *Loader {
	return &Loader{
		db:       db,
		airports: repositories.NewAirportRepository(db),
		carriers: repositories.NewCarrierRepository(db),
	}
}

// Stats reports how many records each stage ingested
type Stats struct {
	Airports  int `json:"airports"`
	Carriers  int `json:"carriers"`
	Routes    int `json:"routes"`
	Flights   int `json:"flights"`
	Instances int `json:"instances"`
	Fares     int `json:"fares"`
}

type airportsFile struct {
	Airports []struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		City        string `json:"city"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
		Timezone    string `json:"timezone"`
	} `json:"airports"`
}

type carriersFile struct {
	Carriers []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"carriers"`
}

type routesFile struct {
	Routes []struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	} `json:"routes"`
}

type scheduleInstance struct {
	DepartureTimeUTC time.Time `json:"departure_time_utc"`
	ArrivalTimeUTC   time.Time `json:"arrival_time_utc"`
	ServiceDate      string    `json:"service_date"`
	IsActive         *bool     `json:"is_active"`
	Fare             *struct {
		Currency   string  `json:"currency"`
		TotalPrice float64 `json:"total_price"`
		BaseFare   float64 `json:"base_fare"`
		TotalTax   float64 `json:"total_tax"`
		FareClass  string  `json:"fare_class"`
		FareBrand  string  `json:"fare_brand"`
	} `json:"fare"`
}

type schedulesFile struct {
	Schedules []struct {
		Carrier      string             `json:"carrier"`
		FlightNumber string             `json:"flight_number"`
		Origin       string             `json:"origin"`
		Destination  string             `json:"destination"`
		AircraftType string             `json:"aircraft_type"`
		Instances    []scheduleInstance `json:"instances"`
	} `json:"schedules"`
}

// Run ingests all recognized files under dir. Reference files are parsed
// concurrently; database writes are ordered so foreign keys resolve.
func (l *Loader) Run(ctx context.Context, dir string) (Stats, error) {
	var (
		stats     Stats
		airports  airportsFile
		carriers  carriersFile
		routeList routesFile
		schedules schedulesFile
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return parseOptional(filepath.Join(dir, "airports.json"), &airports) })
	g.Go(func() error { return parseOptional(filepath.Join(dir, "carriers.json"), &carriers) })
	g.Go(func() error { return parseOptional(filepath.Join(dir, "routes.json"), &routeList) })
	g.Go(func() error { return parseOptional(filepath.Join(dir, "schedules.json"), &schedules) })
	if err := g.Wait(); err != nil {
		return stats, err
	}

	n, err := l.ingestAirports(ctx, airports)
	if err != nil {
		return stats, fmt.Errorf("ingesting airports: %w", err)
	}
	stats.Airports = n

	n, err = l.ingestCarriers(ctx, carriers)
	if err != nil {
		return stats, fmt.Errorf("ingesting carriers: %w", err)
	}
	stats.Carriers = n

	n, err = l.ingestRoutes(ctx, routeList)
	if err != nil {
		return stats, fmt.Errorf("ingesting routes: %w", err)
	}
	stats.Routes = n

	if err := l.ingestSchedules(ctx, schedules, &stats); err != nil {
		return stats, fmt.Errorf("ingesting schedules: %w", err)
	}

	return stats, nil
}

func parseOptional(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Warn("ingest file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (l *Loader) ingestAirports(ctx context.Context, file airportsFile) (int, error) {
	records := make([]gormModels.Airport, 0, len(file.Airports))
	for _, a := range file.Airports {
		if a.Code == "" {
			continue
		}
		records = append(records, gormModels.Airport{
			ID:          uuid.NewString(),
			Code:        a.Code,
			Name:        a.Name,
			City:        a.City,
			Country:     a.Country,
			CountryCode: a.CountryCode,
			Timezone:    a.Timezone,
		})
	}
	if err := l.airports.BatchUpsert(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (l *Loader) ingestCarriers(ctx context.Context, file carriersFile) (int, error) {
	records := make([]gormModels.Carrier, 0, len(file.Carriers))
	for _, c := range file.Carriers {
		if c.Code == "" {
			continue
		}
		records = append(records, gormModels.Carrier{
			ID:   uuid.NewString(),
			Code: c.Code,
			Name: c.Name,
		})
	}
	if err := l.carriers.BatchUpsert(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ingestRoutes creates missing routes. Routes referencing unknown airports
// are skipped rather than failing the whole run.
func (l *Loader) ingestRoutes(ctx context.Context, file routesFile) (int, error) {
	count := 0
	for _, r := range file.Routes {
		if r.Origin == "" || r.Destination == "" || r.Origin == r.Destination {
			continue
		}

		origin, err := l.airports.FindByCode(ctx, r.Origin)
		if err != nil {
			return count, err
		}
		destination, err := l.airports.FindByCode(ctx, r.Destination)
		if err != nil {
			return count, err
		}
		if origin == nil || destination == nil {
			logging.Warn("skipping route with unknown airport",
				"origin", r.Origin, "destination", r.Destination)
			continue
		}

		route := gormModels.Route{
			ID:              uuid.NewString(),
			SourceCode:      r.Origin,
			DestinationCode: r.Destination,
		}
		err = l.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "source_code"}, {Name: "destination_code"}},
				DoNothing: true,
			}).
			Create(&route).Error
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (l *Loader) ingestSchedules(ctx context.Context, file schedulesFile, stats *Stats) error {
	for _, s := range file.Schedules {
		var route gormModels.Route
		err := l.db.WithContext(ctx).
			Where("source_code = ? AND destination_code = ?", s.Origin, s.Destination).
			First(&route).Error
		if err != nil {
			if errors.Is(err, gormlib.ErrRecordNotFound) {
				logging.Warn("skipping schedule with unknown route",
					"carrier", s.Carrier, "flight_number", s.FlightNumber,
					"origin", s.Origin, "destination", s.Destination)
				continue
			}
			return err
		}

		flight := gormModels.Flight{
			ID:           uuid.NewString(),
			RouteID:      route.ID,
			CarrierCode:  s.Carrier,
			FlightNumber: s.FlightNumber,
			AircraftType: s.AircraftType,
		}
		err = l.db.WithContext(ctx).
			Where("route_id = ? AND carrier_code = ? AND flight_number = ?", route.ID, s.Carrier, s.FlightNumber).
			FirstOrCreate(&flight).Error
		if err != nil {
			return err
		}
		stats.Flights++

		for _, inst := range s.Instances {
			serviceDate, err := time.ParseInLocation("2006-01-02", inst.ServiceDate, time.UTC)
			if err != nil {
				logging.Warn("skipping instance with bad service date",
					"carrier", s.Carrier, "flight_number", s.FlightNumber,
					"service_date", inst.ServiceDate)
				continue
			}
			if !inst.ArrivalTimeUTC.After(inst.DepartureTimeUTC) {
				logging.Warn("skipping instance with non-positive duration",
					"carrier", s.Carrier, "flight_number", s.FlightNumber,
					"departure", inst.DepartureTimeUTC)
				continue
			}

			active := true
			if inst.IsActive != nil {
				active = *inst.IsActive
			}

			record := gormModels.FlightInstance{
				ID:               uuid.NewString(),
				FlightID:         flight.ID,
				DepartureTimeUTC: inst.DepartureTimeUTC,
				ArrivalTimeUTC:   inst.ArrivalTimeUTC,
				ServiceDate:      serviceDate,
				DurationMinutes:  int(inst.ArrivalTimeUTC.Sub(inst.DepartureTimeUTC).Minutes()),
				IsActive:         active,
			}
			if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
			stats.Instances++

			if inst.Fare != nil {
				if err := l.createFare(ctx, s.Carrier, s.FlightNumber, &record, inst); err != nil {
					return err
				}
				stats.Fares++
			}
		}
	}
	return nil
}

func (l *Loader) createFare(ctx context.Context, carrier, flightNumber string, instance *gormModels.FlightInstance, inst scheduleInstance) error {
	currency := inst.Fare.Currency
	if currency == "" {
		currency = "INR"
	}

	fareID := uuid.NewString()
	fare := gormModels.Fare{
		ID:               fareID,
		FareKey:          fmt.Sprintf("fare_%s%s_%s_%s", carrier, flightNumber, instance.ServiceDate.Format("20060102"), fareID[:8]),
		FlightInstanceID: toNullString(instance.ID),
		FareClass:        inst.Fare.FareClass,
		FareBrand:        inst.Fare.FareBrand,
		Currency:         currency,
		TotalPrice:       inst.Fare.TotalPrice,
		BaseFare:         inst.Fare.BaseFare,
		TotalTax:         inst.Fare.TotalTax,
	}
	return l.db.WithContext(ctx).Create(&fare).Error
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
