package repositories

import (
	"context"
	"fmt"
	"time"

	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// FareRepository looks up stored fares for flight instances
type FareRepository struct {
	db *gormlib.DB
}

func NewFareRepository(db *gormlib.DB) *FareRepository {
	return &FareRepository{db: db}
}

// LowestByInstance returns the cheapest currently valid fare per flight
// instance. Instances with no valid fare are absent from the map.
func (r *FareRepository) LowestByInstance(ctx context.Context, instanceIDs []string) (map[string]float64, error) {
	if len(instanceIDs) == 0 {
		return map[string]float64{}, nil
	}

	now := time.Now().UTC()

	var fares []gormModels.Fare
	err := r.db.WithContext(ctx).
		Where("flight_instance_id IN ?", instanceIDs).
		Where("valid_from IS NULL OR valid_from <= ?", now).
		Where("valid_until IS NULL OR valid_until >= ?", now).
		Order("total_price ASC").
		Find(&fares).Error
	if err != nil {
		return nil, fmt.Errorf("fetching fares: %w", err)
	}

	lowest := make(map[string]float64, len(instanceIDs))
	for _, fare := range fares {
		if !fare.FlightInstanceID.Valid {
			continue
		}
		if _, ok := lowest[fare.FlightInstanceID.String]; !ok {
			lowest[fare.FlightInstanceID.String] = fare.TotalPrice
		}
	}
	return lowest, nil
}
