package services

import (
	"context"
	"fmt"
	"time"

	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/models/entities"
)

// DirectFlightSearch handles the 0-stop pass
type DirectFlightSearch struct {
	routes  RouteGraph
	store   InstanceStore
	builder *ItineraryBuilder
}

func NewDirectFlightSearch(routes RouteGraph, store InstanceStore, builder *ItineraryBuilder) *DirectFlightSearch {
	return &DirectFlightSearch{routes: routes, store: store, builder: builder}
}

// Search returns single-leg itineraries on the direct route, earliest
// departures first, capped at maxResults.
func (s *DirectFlightSearch) Search(ctx context.Context, origin, destination string, serviceDate time.Time, maxResults int) ([]dtos.Itinerary, error) {
	chains, err := s.routes.FindChains(ctx, origin, destination, 0)
	if err != nil {
		return nil, fmt.Errorf("direct pass: %w", err)
	}
	if len(chains) == 0 {
		return nil, nil
	}

	rows, err := s.store.FetchBulk(ctx, []string{chains[0][0].ID}, serviceDate, nil)
	if err != nil {
		return nil, fmt.Errorf("direct pass: %w", err)
	}

	itineraries := make([]dtos.Itinerary, 0, len(rows))
	for _, row := range rows {
		if len(itineraries) >= maxResults {
			break
		}
		itinerary, err := s.builder.Build(ctx, []entities.FlightLegRow{row})
		if err != nil {
			return nil, fmt.Errorf("direct pass: %w", err)
		}
		itineraries = append(itineraries, itinerary)
	}

	return itineraries, nil
}
