package repositories

import (
	"context"

	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByCode finds an airport by IATA code (case-insensitive)
func (r *AirportRepository) FindByCode(ctx context.Context, code string) (*gormModels.Airport, error) {
	var airport gormModels.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?)", code).
		First(&airport).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// List returns all airports ordered by code
func (r *AirportRepository) List(ctx context.Context) ([]gormModels.Airport, error) {
	var airports []gormModels.Airport
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&airports).Error
	return airports, err
}

// BatchUpsert inserts airports, updating display metadata on code conflict
func (r *AirportRepository) BatchUpsert(ctx context.Context, airports []gormModels.Airport) error {
	if len(airports) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "city", "country", "country_code", "timezone", "updated_at"}),
		}).
		CreateInBatches(airports, 100).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.Airport{}).Count(&count).Error
	return count, err
}
