package services

import (
	"context"
	"fmt"
	"time"

	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/models/entities"
)

// OneStopFlightSearch handles the 1-stop pass
type OneStopFlightSearch struct {
	routes     RouteGraph
	store      InstanceStore
	builder    *ItineraryBuilder
	minConnect int
	maxLayover int
}

func NewOneStopFlightSearch(routes RouteGraph, store InstanceStore, builder *ItineraryBuilder, minConnect, maxLayover int) *OneStopFlightSearch {
	return &OneStopFlightSearch{
		routes:     routes,
		store:      store,
		builder:    builder,
		minConnect: minConnect,
		maxLayover: maxLayover,
	}
}

// Search returns one-stop itineraries, at most maxResults. Emission stops
// as soon as the budget is hit, possibly partway through a route pair's
// instance list.
func (s *OneStopFlightSearch) Search(ctx context.Context, origin, destination string, serviceDate time.Time, maxResults int) ([]dtos.Itinerary, error) {
	chains, err := s.routes.FindChains(ctx, origin, destination, 1)
	if err != nil {
		return nil, fmt.Errorf("one-stop pass: %w", err)
	}
	if len(chains) == 0 {
		return nil, nil
	}

	firstRouteIDs := uniqueHopIDs(chains, 0)
	secondRouteIDs := uniqueHopIDs(chains, 1)

	firstLegRows, err := s.store.FetchBulk(ctx, firstRouteIDs, serviceDate, nil)
	if err != nil {
		return nil, fmt.Errorf("one-stop pass: %w", err)
	}
	if len(firstLegRows) == 0 {
		return nil, nil
	}

	// No connection can depart before the earliest possible arrival, so
	// the second fetch is floored at the minimum first-leg arrival.
	secondLegRows, err := s.store.FetchBulk(ctx, secondRouteIDs, serviceDate, minArrivalTime(firstLegRows))
	if err != nil {
		return nil, fmt.Errorf("one-stop pass: %w", err)
	}

	firstByRoute := indexInstancesByRoute(firstLegRows)
	secondByRoute := indexInstancesByRoute(secondLegRows)

	return s.buildItineraries(ctx, chains, firstByRoute, secondByRoute, maxResults)
}

func (s *OneStopFlightSearch) buildItineraries(
	ctx context.Context,
	chains []entities.RouteChain,
	firstByRoute, secondByRoute map[string][]entities.FlightLegRow,
	maxResults int,
) ([]dtos.Itinerary, error) {
	var itineraries []dtos.Itinerary

	for _, chain := range chains {
		if len(itineraries) >= maxResults {
			break
		}

		firstLegs := firstByRoute[chain[0].ID]
		secondLegs := secondByRoute[chain[1].ID]

		for _, first := range firstLegs {
			if len(itineraries) >= maxResults {
				break
			}

			for _, second := range secondLegs {
				if !IsValidConnection(first, second, s.minConnect, s.maxLayover) {
					continue
				}

				itinerary, err := s.builder.Build(ctx, []entities.FlightLegRow{first, second})
				if err != nil {
					return nil, fmt.Errorf("one-stop pass: %w", err)
				}
				itineraries = append(itineraries, itinerary)

				if len(itineraries) >= maxResults {
					break
				}
			}
		}
	}

	return itineraries, nil
}

// uniqueHopIDs collects the distinct route ids at one hop position across
// chains, preserving first-seen order.
func uniqueHopIDs(chains []entities.RouteChain, position int) []string {
	seen := make(map[string]struct{}, len(chains))
	ids := make([]string, 0, len(chains))
	for _, chain := range chains {
		id := chain[position].ID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
