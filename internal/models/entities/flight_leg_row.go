package entities

import "time"

// FlightLegRow is one scheduled occurrence joined with its flight and route,
// as returned by the bulk instance fetch. It carries everything needed to
// project a leg without further lookups.
type FlightLegRow struct {
	InstanceID       string    `db:"instance_id"`
	RouteID          string    `db:"route_id"`
	CarrierCode      string    `db:"carrier_code"`
	FlightNumber     string    `db:"flight_number"`
	SourceCode       string    `db:"source_code"`
	DestinationCode  string    `db:"destination_code"`
	DepartureTimeUTC time.Time `db:"departure_time_utc"`
	ArrivalTimeUTC   time.Time `db:"arrival_time_utc"`
	DurationMinutes  int       `db:"duration_minutes"`
}
