package services

import (
	"context"
	"time"

	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/models/entities"
)

// RouteGraph enumerates candidate route chains between two airports.
// Implementations must cap fan-out; an empty result is not an error.
type RouteGraph interface {
	FindChains(ctx context.Context, origin, destination string, hops int) ([]entities.RouteChain, error)
}

// InstanceStore returns active scheduled occurrences for a set of routes on
// a service date in one batched call, sorted by departure ascending.
type InstanceStore interface {
	FetchBulk(ctx context.Context, routeIDs []string, serviceDate time.Time, minDeparture *time.Time) ([]entities.FlightLegRow, error)
}

// FareResolver attempts to produce a real price for a leg combination.
// found is false when no stored fare covers every leg.
type FareResolver interface {
	PriceFor(ctx context.Context, legs []entities.FlightLegRow) (amount float64, found bool, err error)
}

// PriceEstimator produces a fallback price when no real fare exists.
// Implementations must be safe for concurrent use.
type PriceEstimator interface {
	Estimate(numLegs int) float64
}

// SearchCriteria is the validated input to a search invocation.
type SearchCriteria struct {
	Origin      string
	Destination string
	Date        time.Time
	MaxHops     int
	MaxResults  int
	Sort        string
	Window      *dtos.TimeWindow
}
