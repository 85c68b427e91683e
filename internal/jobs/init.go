package jobs

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Container holds the background jobs so handlers can trigger them manually
type Container struct {
	RouteDuration *RouteDurationJob
}

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(ctx context.Context, db *gorm.DB) *Container {
	routeDurationJob := NewRouteDurationJob(db)

	// Recompute route averages every 6 hours; the data only shifts when
	// new schedules are ingested.
	go routeDurationJob.RunScheduled(ctx, 6*time.Hour)

	return &Container{RouteDuration: routeDurationJob}
}
