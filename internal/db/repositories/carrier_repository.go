package repositories

import (
	"context"

	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CarrierRepository handles carrier table operations
type CarrierRepository struct {
	db *gormlib.DB
}

func NewCarrierRepository(db *gormlib.DB) *CarrierRepository {
	return &CarrierRepository{db: db}
}

// FindByCode finds a carrier by IATA code (case-insensitive)
func (r *CarrierRepository) FindByCode(ctx context.Context, code string) (*gormModels.Carrier, error) {
	var carrier gormModels.Carrier

	err := r.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?)", code).
		First(&carrier).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &carrier, nil
}

// BatchUpsert inserts carriers, updating the name on code conflict
func (r *CarrierRepository) BatchUpsert(ctx context.Context, carriers []gormModels.Carrier) error {
	if len(carriers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		CreateInBatches(carriers, 100).Error
}

// Count returns total number of carriers
func (r *CarrierRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.Carrier{}).Count(&count).Error
	return count, err
}
