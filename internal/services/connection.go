package services

import (
	"time"

	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/models/entities"
)

// IsValidConnection reports whether the gap between an arriving and a
// departing occurrence satisfies the connection-time rules. Both bounds
// are inclusive. The same minimum applies to every connection; domestic
// and international are not differentiated.
func IsValidConnection(arriving, departing entities.FlightLegRow, minConnectMinutes, maxLayoverMinutes int) bool {
	gap := departing.DepartureTimeUTC.Sub(arriving.ArrivalTimeUTC).Minutes()

	if gap < float64(minConnectMinutes) {
		return false
	}
	if gap > float64(maxLayoverMinutes) {
		return false
	}
	return true
}

// indexInstancesByRoute groups bulk results by route id, preserving the
// departure-time order of the fetch. This map is what makes the join phase
// O(1) per route lookup.
func indexInstancesByRoute(rows []entities.FlightLegRow) map[string][]entities.FlightLegRow {
	byRoute := make(map[string][]entities.FlightLegRow)
	for _, row := range rows {
		byRoute[row.RouteID] = append(byRoute[row.RouteID], row)
	}
	return byRoute
}

// minArrivalTime returns the earliest arrival among the rows, used as the
// departure floor for the next leg position.
func minArrivalTime(rows []entities.FlightLegRow) *time.Time {
	if len(rows) == 0 {
		return nil
	}
	min := rows[0].ArrivalTimeUTC
	for _, row := range rows[1:] {
		if row.ArrivalTimeUTC.Before(min) {
			min = row.ArrivalTimeUTC
		}
	}
	return &min
}

// legFromRow projects a fetched occurrence into its itinerary-facing shape
func legFromRow(row entities.FlightLegRow) dtos.FlightLeg {
	return dtos.FlightLeg{
		Carrier:          row.CarrierCode,
		FlightNumber:     row.FlightNumber,
		Origin:           row.SourceCode,
		Destination:      row.DestinationCode,
		DepartureTimeUTC: row.DepartureTimeUTC,
		ArrivalTimeUTC:   row.ArrivalTimeUTC,
		DurationMinutes:  row.DurationMinutes,
	}
}
