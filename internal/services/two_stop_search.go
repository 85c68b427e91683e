package services

import (
	"context"
	"fmt"
	"time"

	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/models/entities"
)

// TwoStopFlightSearch handles the 2-stop pass. Unlike the one-stop pass it
// emits every valid triplet up to the route-triplet cap; the orchestrator
// truncates globally afterwards.
type TwoStopFlightSearch struct {
	routes     RouteGraph
	store      InstanceStore
	builder    *ItineraryBuilder
	minConnect int
	maxLayover int
}

func NewTwoStopFlightSearch(routes RouteGraph, store InstanceStore, builder *ItineraryBuilder, minConnect, maxLayover int) *TwoStopFlightSearch {
	return &TwoStopFlightSearch{
		routes:     routes,
		store:      store,
		builder:    builder,
		minConnect: minConnect,
		maxLayover: maxLayover,
	}
}

// Search returns two-stop itineraries for every fully valid triplet.
func (s *TwoStopFlightSearch) Search(ctx context.Context, origin, destination string, serviceDate time.Time) ([]dtos.Itinerary, error) {
	chains, err := s.routes.FindChains(ctx, origin, destination, 2)
	if err != nil {
		return nil, fmt.Errorf("two-stop pass: %w", err)
	}
	if len(chains) == 0 {
		return nil, nil
	}

	firstRouteIDs := uniqueHopIDs(chains, 0)
	secondRouteIDs := uniqueHopIDs(chains, 1)
	thirdRouteIDs := uniqueHopIDs(chains, 2)

	firstLegRows, err := s.store.FetchBulk(ctx, firstRouteIDs, serviceDate, nil)
	if err != nil {
		return nil, fmt.Errorf("two-stop pass: %w", err)
	}
	if len(firstLegRows) == 0 {
		return nil, nil
	}

	secondLegRows, err := s.store.FetchBulk(ctx, secondRouteIDs, serviceDate, minArrivalTime(firstLegRows))
	if err != nil {
		return nil, fmt.Errorf("two-stop pass: %w", err)
	}
	if len(secondLegRows) == 0 {
		return nil, nil
	}

	thirdLegRows, err := s.store.FetchBulk(ctx, thirdRouteIDs, serviceDate, minArrivalTime(secondLegRows))
	if err != nil {
		return nil, fmt.Errorf("two-stop pass: %w", err)
	}

	firstByRoute := indexInstancesByRoute(firstLegRows)
	secondByRoute := indexInstancesByRoute(secondLegRows)
	thirdByRoute := indexInstancesByRoute(thirdLegRows)

	var itineraries []dtos.Itinerary

	for _, chain := range chains {
		firstLegs := firstByRoute[chain[0].ID]
		secondLegs := secondByRoute[chain[1].ID]
		thirdLegs := thirdByRoute[chain[2].ID]

		for _, first := range firstLegs {
			for _, second := range secondLegs {
				if !IsValidConnection(first, second, s.minConnect, s.maxLayover) {
					continue
				}

				for _, third := range thirdLegs {
					if !IsValidConnection(second, third, s.minConnect, s.maxLayover) {
						continue
					}

					itinerary, err := s.builder.Build(ctx, []entities.FlightLegRow{first, second, third})
					if err != nil {
						return nil, fmt.Errorf("two-stop pass: %w", err)
					}
					itineraries = append(itineraries, itinerary)
				}
			}
		}
	}

	return itineraries, nil
}
