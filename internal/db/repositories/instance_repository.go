package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/limosin/flight-search/internal/constants"
	"github.com/limosin/flight-search/internal/metrics"
	"github.com/limosin/flight-search/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// InstanceRepository fetches scheduled flight occurrences. The search core
// issues exactly one FetchBulk per leg position, never one per candidate,
// which keeps query cost independent of candidate count.
type InstanceRepository struct {
	db         *sqlx.DB
	metricsReg *metrics.MetricsRegistry
}

func NewInstanceRepository(db *sqlx.DB, metricsReg *metrics.MetricsRegistry) *InstanceRepository {
	return &InstanceRepository{db: db, metricsReg: metricsReg}
}

// FetchBulk returns all active instances on the given routes for the
// service date, sorted by departure ascending. When minDeparture is set,
// only instances departing strictly after it are returned; callers use the
// minimum arrival of the previous leg position as the floor, since no valid
// connection can depart before the earliest possible arrival.
func (r *InstanceRepository) FetchBulk(
	ctx context.Context,
	routeIDs []string,
	serviceDate time.Time,
	minDeparture *time.Time,
) ([]entities.FlightLegRow, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}

	if r.metricsReg != nil {
		start := time.Now()
		r.metricsReg.BulkFetchesTotal.Inc()
		defer func() {
			r.metricsReg.BulkFetchDuration.Observe(time.Since(start).Seconds())
		}()
	}

	query := constants.FetchInstancesBulk
	args := []interface{}{routeIDs, serviceDate.Format("2006-01-02")}

	if minDeparture != nil {
		query += constants.FetchInstancesMinDepartureClause
		args = append(args, *minDeparture)
	}
	query += constants.FetchInstancesOrderClause

	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expanding bulk instance query: %w", err)
	}

	var rows []entities.FlightLegRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(expanded), expandedArgs...); err != nil {
		return nil, fmt.Errorf("fetching flight instances: %w", err)
	}

	return rows, nil
}
