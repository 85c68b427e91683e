package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/models/entities"
	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// RouteRepository enumerates candidate route chains between two airports.
// The pair and triplet caps bound the join work in the one-stop and
// two-stop passes and must not be removed.
type RouteRepository struct {
	db           *gormlib.DB
	pairLimit    int
	tripletLimit int
	penalty      float64
}

func NewRouteRepository(db *gormlib.DB, cfg *config.SearchConfig) *RouteRepository {
	return &RouteRepository{
		db:           db,
		pairLimit:    cfg.RoutePairLimit,
		tripletLimit: cfg.RouteTripletLimit,
		penalty:      cfg.UnknownDurationPenalty,
	}
}

// FindChains returns candidate chains of hops+1 routes from origin to
// destination. An empty result means no chain exists and is not an error.
func (r *RouteRepository) FindChains(ctx context.Context, origin, destination string, hops int) ([]entities.RouteChain, error) {
	switch hops {
	case 0:
		return r.directChain(ctx, origin, destination)
	case 1:
		return r.pairChains(ctx, origin, destination)
	case 2:
		return r.tripletChains(ctx, origin, destination)
	default:
		return nil, fmt.Errorf("unsupported hop count %d", hops)
	}
}

func (r *RouteRepository) directChain(ctx context.Context, origin, destination string) ([]entities.RouteChain, error) {
	var route gormModels.Route
	err := r.db.WithContext(ctx).
		Where("source_code = ? AND destination_code = ?", origin, destination).
		First(&route).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding direct route: %w", err)
	}

	return []entities.RouteChain{{hopFromRoute(&route)}}, nil
}

type RoutePairRow struct {
	ID1  string   `gorm:"column:id1"`
	Src1 string   `gorm:"column:src1"`
	Dst1 string   `gorm:"column:dst1"`
	Avg1 *float64 `gorm:"column:avg1"`
	ID2  string   `gorm:"column:id2"`
	Src2 string   `gorm:"column:src2"`
	Dst2 string   `gorm:"column:dst2"`
	Avg2 *float64 `gorm:"column:avg2"`
}

func (r *RouteRepository) pairChains(ctx context.Context, origin, destination string) ([]entities.RouteChain, error) {
	var rows []RoutePairRow
	err := r.db.WithContext(ctx).
		Table("routes AS r1").
		Select(`r1.id AS id1, r1.source_code AS src1, r1.destination_code AS dst1, r1.average_duration_minutes AS avg1,
			r2.id AS id2, r2.source_code AS src2, r2.destination_code AS dst2, r2.average_duration_minutes AS avg2`).
		Joins("JOIN routes AS r2 ON r2.source_code = r1.destination_code").
		Where("r1.source_code = ?", origin).
		Where("r2.destination_code = ?", destination).
		Where("r1.destination_code <> ? AND r1.destination_code <> ?", origin, destination).
		Limit(r.pairLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("finding route pairs: %w", err)
	}

	chains := make([]entities.RouteChain, 0, len(rows))
	for _, row := range rows {
		chains = append(chains, entities.RouteChain{
			{ID: row.ID1, SourceCode: row.Src1, DestinationCode: row.Dst1, AverageDurationMinutes: row.Avg1},
			{ID: row.ID2, SourceCode: row.Src2, DestinationCode: row.Dst2, AverageDurationMinutes: row.Avg2},
		})
	}
	return chains, nil
}

type routeTripletRow struct {
	RoutePairRow
	ID3  string   `gorm:"column:id3"`
	Src3 string   `gorm:"column:src3"`
	Dst3 string   `gorm:"column:dst3"`
	Avg3 *float64 `gorm:"column:avg3"`
}

// tripletChains ranks candidates ascending by summed average duration so
// the cap keeps the most promising triplets rather than arbitrary ones.
// Routes with no recorded duration are pushed to the back via a large
// penalty value.
func (r *RouteRepository) tripletChains(ctx context.Context, origin, destination string) ([]entities.RouteChain, error) {
	rank := fmt.Sprintf(
		"(COALESCE(r1.average_duration_minutes, %[1]g) + COALESCE(r2.average_duration_minutes, %[1]g) + COALESCE(r3.average_duration_minutes, %[1]g)) ASC",
		r.penalty,
	)

	var rows []routeTripletRow
	err := r.db.WithContext(ctx).
		Table("routes AS r1").
		Select(`r1.id AS id1, r1.source_code AS src1, r1.destination_code AS dst1, r1.average_duration_minutes AS avg1,
			r2.id AS id2, r2.source_code AS src2, r2.destination_code AS dst2, r2.average_duration_minutes AS avg2,
			r3.id AS id3, r3.source_code AS src3, r3.destination_code AS dst3, r3.average_duration_minutes AS avg3`).
		Joins("JOIN routes AS r2 ON r2.source_code = r1.destination_code").
		Joins("JOIN routes AS r3 ON r3.source_code = r2.destination_code").
		Where("r1.source_code = ?", origin).
		Where("r3.destination_code = ?", destination).
		Where("r1.destination_code <> ? AND r1.destination_code <> ?", origin, destination).
		Where("r2.destination_code <> ? AND r2.destination_code <> ?", origin, destination).
		Where("r1.destination_code <> r2.destination_code").
		Order(rank).
		Limit(r.tripletLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("finding route triplets: %w", err)
	}

	chains := make([]entities.RouteChain, 0, len(rows))
	for _, row := range rows {
		chains = append(chains, entities.RouteChain{
			{ID: row.ID1, SourceCode: row.Src1, DestinationCode: row.Dst1, AverageDurationMinutes: row.Avg1},
			{ID: row.ID2, SourceCode: row.Src2, DestinationCode: row.Dst2, AverageDurationMinutes: row.Avg2},
			{ID: row.ID3, SourceCode: row.Src3, DestinationCode: row.Dst3, AverageDurationMinutes: row.Avg3},
		})
	}
	return chains, nil
}

func hopFromRoute(route *gormModels.Route) entities.RouteHop {
	return entities.RouteHop{
		ID:                     route.ID,
		SourceCode:             route.SourceCode,
		DestinationCode:        route.DestinationCode,
		AverageDurationMinutes: route.AverageDurationMinutes,
	}
}
