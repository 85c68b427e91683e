package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/logging"
	"github.com/limosin/flight-search/internal/models/dtos"
)

// SearchService orchestrates the direct, one-stop, and two-stop passes with
// a shrinking result budget and early termination. State is read-only per
// invocation, so one instance serves concurrent searches without locking.
type SearchService struct {
	cfg     *config.SearchConfig
	direct  *DirectFlightSearch
	oneStop *OneStopFlightSearch
	twoStop *TwoStopFlightSearch
}

func NewSearchService(cfg *config.SearchConfig, routes RouteGraph, store InstanceStore, fares FareResolver, estimator PriceEstimator) *SearchService {
	builder := NewItineraryBuilder(fares, estimator, cfg.DefaultCurrency)

	return &SearchService{
		cfg:     cfg,
		direct:  NewDirectFlightSearch(routes, store, builder),
		oneStop: NewOneStopFlightSearch(routes, store, builder, cfg.MCTDomesticMinutes, cfg.MaxLayoverMinutes),
		twoStop: NewTwoStopFlightSearch(routes, store, builder, cfg.MCTDomesticMinutes, cfg.MaxLayoverMinutes),
	}
}

// Search runs the applicable passes in order and returns the filtered,
// sorted, truncated result list. An empty list is a normal outcome, not an
// error; collaborator failures propagate to the caller.
func (s *SearchService) Search(ctx context.Context, criteria SearchCriteria) ([]dtos.Itinerary, error) {
	var results []dtos.Itinerary

	// Direct flights are always preferred over transfers. When they alone
	// satisfy the budget, the later passes never run.
	if criteria.MaxHops >= 0 {
		direct, err := s.direct.Search(ctx, criteria.Origin, criteria.Destination, criteria.Date, criteria.MaxResults)
		if err != nil {
			return nil, err
		}
		results = append(results, direct...)
	}

	if criteria.MaxHops >= 1 && len(results) < criteria.MaxResults {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		remaining := criteria.MaxResults - len(results)
		oneStop, err := s.oneStop.Search(ctx, criteria.Origin, criteria.Destination, criteria.Date, remaining)
		if err != nil {
			return nil, err
		}
		results = append(results, oneStop...)
	}

	if criteria.MaxHops >= 2 && len(results) < criteria.MaxResults {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		twoStop, err := s.twoStop.Search(ctx, criteria.Origin, criteria.Destination, criteria.Date)
		if err != nil {
			return nil, err
		}
		results = append(results, twoStop...)
	}

	results = filterByDepartureWindow(results, criteria.Window)
	sortItineraries(results, criteria.Sort)

	if len(results) > criteria.MaxResults {
		results = results[:criteria.MaxResults]
	}

	logging.Debug("search completed",
		"origin", criteria.Origin,
		"destination", criteria.Destination,
		"max_hops", criteria.MaxHops,
		"returned", len(results),
	)

	return results, nil
}

// filterByDepartureWindow keeps itineraries whose first leg departs within
// the same-day window, inclusive at both ends, compared by minute of day.
func filterByDepartureWindow(itineraries []dtos.Itinerary, window *dtos.TimeWindow) []dtos.Itinerary {
	if window == nil {
		return itineraries
	}

	start, okStart := minuteOfDay(window.Start)
	end, okEnd := minuteOfDay(window.End)
	if !okStart || !okEnd {
		return itineraries
	}

	filtered := itineraries[:0]
	for _, itinerary := range itineraries {
		departure := itinerary.Legs[0].DepartureTimeUTC
		minute := departure.Hour()*60 + departure.Minute()
		if minute >= start && minute <= end {
			filtered = append(filtered, itinerary)
		}
	}
	return filtered
}

func minuteOfDay(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// sortItineraries orders results by the requested key. The sort is stable
// so tied elements keep pass-emission order.
func sortItineraries(itineraries []dtos.Itinerary, key string) {
	switch key {
	case dtos.SortDuration:
		sort.SliceStable(itineraries, func(i, j int) bool {
			return itineraries[i].TotalDurationMinutes < itineraries[j].TotalDurationMinutes
		})
	case dtos.SortDepartureTime:
		sort.SliceStable(itineraries, func(i, j int) bool {
			return itineraries[i].Legs[0].DepartureTimeUTC.Before(itineraries[j].Legs[0].DepartureTimeUTC)
		})
	default:
		sort.SliceStable(itineraries, func(i, j int) bool {
			return itineraries[i].Price.Amount < itineraries[j].Price.Amount
		})
	}
}
