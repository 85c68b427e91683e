package services

import (
	"testing"
	"time"

	"github.com/limosin/flight-search/internal/models/entities"
)

func rowArrivingAt(arrival time.Time) entities.FlightLegRow {
	return entities.FlightLegRow{
		InstanceID:     "arriving",
		RouteID:        "r1",
		ArrivalTimeUTC: arrival,
	}
}

func rowDepartingAt(departure time.Time) entities.FlightLegRow {
	return entities.FlightLegRow{
		InstanceID:       "departing",
		RouteID:          "r2",
		DepartureTimeUTC: departure,
	}
}

func TestIsValidConnection_Boundaries(t *testing.T) {
	arrival := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		gapMinutes int
		want       bool
	}{
		{"below minimum", 44, false},
		{"exactly minimum", 45, true},
		{"comfortable gap", 120, true},
		{"exactly maximum", 720, true},
		{"above maximum", 721, false},
		{"departs before arrival", -30, false},
		{"zero gap", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			departing := rowDepartingAt(arrival.Add(time.Duration(tt.gapMinutes) * time.Minute))
			got := IsValidConnection(rowArrivingAt(arrival), departing, 45, 720)
			if got != tt.want {
				t.Errorf("gap %d min: expected %v, got %v", tt.gapMinutes, tt.want, got)
			}
		})
	}
}

func TestIndexInstancesByRoute_PreservesOrder(t *testing.T) {
	base := time.Date(2026, 9, 15, 6, 0, 0, 0, time.UTC)
	rows := []entities.FlightLegRow{
		{InstanceID: "a", RouteID: "r1", DepartureTimeUTC: base},
		{InstanceID: "b", RouteID: "r2", DepartureTimeUTC: base.Add(time.Hour)},
		{InstanceID: "c", RouteID: "r1", DepartureTimeUTC: base.Add(2 * time.Hour)},
	}

	byRoute := indexInstancesByRoute(rows)

	if len(byRoute) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(byRoute))
	}
	r1 := byRoute["r1"]
	if len(r1) != 2 || r1[0].InstanceID != "a" || r1[1].InstanceID != "c" {
		t.Errorf("expected r1 in fetch order [a c], got %v", r1)
	}
	if len(byRoute["r2"]) != 1 {
		t.Errorf("expected 1 instance on r2, got %d", len(byRoute["r2"]))
	}
}

func TestMinArrivalTime(t *testing.T) {
	if got := minArrivalTime(nil); got != nil {
		t.Errorf("expected nil for empty rows, got %v", got)
	}

	earliest := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	rows := []entities.FlightLegRow{
		{ArrivalTimeUTC: earliest.Add(3 * time.Hour)},
		{ArrivalTimeUTC: earliest},
		{ArrivalTimeUTC: earliest.Add(time.Hour)},
	}

	got := minArrivalTime(rows)
	if got == nil || !got.Equal(earliest) {
		t.Errorf("expected %v, got %v", earliest, got)
	}
}
