package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/models/entities"

	"github.com/google/uuid"
)

// RandomPriceEstimator draws a base fare uniformly from [3000, 15000) and
// marks multi-leg itineraries up 30% per extra leg.
type RandomPriceEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomPriceEstimator(seed int64) *RandomPriceEstimator {
	return &RandomPriceEstimator{rng: rand.New(rand.NewSource(seed))}
}

func (e *RandomPriceEstimator) Estimate(numLegs int) float64 {
	e.mu.Lock()
	base := 3000 + e.rng.Float64()*12000
	e.mu.Unlock()

	multiplier := 1.0 + float64(numLegs-1)*0.3
	return math.Round(base*multiplier*100) / 100
}

// FixedPriceEstimator always returns the same base, keeping fallback
// pricing deterministic where that matters (tests, replayable searches).
type FixedPriceEstimator struct {
	Base float64
}

func (e FixedPriceEstimator) Estimate(numLegs int) float64 {
	multiplier := 1.0 + float64(numLegs-1)*0.3
	return math.Round(e.Base*multiplier*100) / 100
}

// StoredFareResolver prices a leg combination from stored fares: the sum of
// the cheapest valid fare per instance, found only when every leg has one.
type StoredFareResolver struct {
	fares fareSource
}

type fareSource interface {
	LowestByInstance(ctx context.Context, instanceIDs []string) (map[string]float64, error)
}

func NewStoredFareResolver(fares fareSource) *StoredFareResolver {
	return &StoredFareResolver{fares: fares}
}

func (r *StoredFareResolver) PriceFor(ctx context.Context, legs []entities.FlightLegRow) (float64, bool, error) {
	ids := make([]string, 0, len(legs))
	for _, leg := range legs {
		ids = append(ids, leg.InstanceID)
	}

	lowest, err := r.fares.LowestByInstance(ctx, ids)
	if err != nil {
		return 0, false, err
	}

	total := 0.0
	for _, leg := range legs {
		amount, ok := lowest[leg.InstanceID]
		if !ok {
			return 0, false, nil
		}
		total += amount
	}
	return math.Round(total*100) / 100, true, nil
}

// ItineraryBuilder assembles a validated leg sequence into a priced
// itinerary. Callers guarantee chronological contiguity; the builder does
// not re-validate it.
type ItineraryBuilder struct {
	fares     FareResolver
	estimator PriceEstimator
	currency  string
}

func NewItineraryBuilder(fares FareResolver, estimator PriceEstimator, currency string) *ItineraryBuilder {
	return &ItineraryBuilder{
		fares:     fares,
		estimator: estimator,
		currency:  currency,
	}
}

// Build creates an itinerary from a non-empty ordered leg sequence.
func (b *ItineraryBuilder) Build(ctx context.Context, rows []entities.FlightLegRow) (dtos.Itinerary, error) {
	legs := make([]dtos.FlightLeg, 0, len(rows))
	for _, row := range rows {
		legs = append(legs, legFromRow(row))
	}

	firstDeparture := legs[0].DepartureTimeUTC
	lastArrival := legs[len(legs)-1].ArrivalTimeUTC
	totalDuration := int(lastArrival.Sub(firstDeparture).Minutes())

	amount, found, err := b.fares.PriceFor(ctx, rows)
	if err != nil {
		return dtos.Itinerary{}, fmt.Errorf("resolving fare: %w", err)
	}
	if !found {
		amount = b.estimator.Estimate(len(rows))
	}

	itineraryID := uuid.NewString()

	return dtos.Itinerary{
		ID:                   itineraryID,
		Legs:                 legs,
		Stops:                len(legs) - 1,
		TotalDurationMinutes: totalDuration,
		Price:                dtos.Price{Currency: b.currency, Amount: amount},
		FareKey:              fareKey(legs, itineraryID),
	}, nil
}

// fareKey derives the opaque key a downstream fare-detail lookup resolves.
// Format: fare_<ORIGIN>_<DEST>_<YYYYMMDD>_<first 8 of itinerary id>.
func fareKey(legs []dtos.FlightLeg, itineraryID string) string {
	origin := legs[0].Origin
	destination := legs[len(legs)-1].Destination
	dateStr := legs[0].DepartureTimeUTC.Format("20060102")
	return fmt.Sprintf("fare_%s_%s_%s_%s", origin, destination, dateStr, itineraryID[:8])
}
