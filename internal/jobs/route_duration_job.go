package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"
)

// RouteDurationJob recomputes routes.average_duration_minutes from the
// observed durations of flight instances. The averages feed the ranking of
// two-stop route triplets; stale averages degrade ranking quality but
// never correctness.
type RouteDurationJob struct {
	db *gorm.DB

	mu        sync.Mutex
	running   bool
	lastRunAt time.Time
	lastError string
}

// NewRouteDurationJob creates a new route duration job instance
func NewRouteDurationJob(db *gorm.DB) *RouteDurationJob {
	return &RouteDurationJob{db: db}
}

type routeAverage struct {
	RouteID     string  `gorm:"column:route_id"`
	AvgDuration float64 `gorm:"column:avg_duration"`
}

// Run recomputes and stores the per-route average durations
func (j *RouteDurationJob) Run(ctx context.Context) (int, error) {
	start := time.Now()
	j.setRunning(true)
	defer j.setRunning(false)

	log.Printf("[RouteDurationJob] Starting route duration update at %s", start.Format(time.RFC3339))

	var averages []routeAverage
	err := j.db.WithContext(ctx).
		Table("flight_instances AS fi").
		Select("f.route_id AS route_id, AVG(fi.duration_minutes) AS avg_duration").
		Joins("JOIN flights f ON fi.flight_id = f.id").
		Where("fi.duration_minutes IS NOT NULL").
		Group("f.route_id").
		Scan(&averages).Error
	if err != nil {
		j.recordResult(err)
		return 0, fmt.Errorf("computing route averages: %w", err)
	}

	if len(averages) == 0 {
		log.Printf("[RouteDurationJob] No duration data found, nothing to update")
		j.recordResult(nil)
		return 0, nil
	}

	updated := 0
	for _, avg := range averages {
		result := j.db.WithContext(ctx).
			Table("routes").
			Where("id = ?", avg.RouteID).
			Update("average_duration_minutes", avg.AvgDuration)
		if result.Error != nil {
			j.recordResult(result.Error)
			return updated, fmt.Errorf("updating route %s: %w", avg.RouteID, result.Error)
		}
		updated += int(result.RowsAffected)
	}

	log.Printf("[RouteDurationJob] Completed in %s. Routes updated: %d",
		time.Since(start).Truncate(time.Millisecond), updated)

	j.recordResult(nil)
	return updated, nil
}

// RunScheduled runs the job immediately and then on every tick until the
// context is cancelled.
func (j *RouteDurationJob) RunScheduled(ctx context.Context, interval time.Duration) {
	if _, err := j.Run(ctx); err != nil {
		log.Printf("[RouteDurationJob] Initial run failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				log.Printf("[RouteDurationJob] Scheduled run failed: %v", err)
			}
		}
	}
}

// Status reports whether the job is running and the outcome of the last run
func (j *RouteDurationJob) Status() (running bool, lastRunAt time.Time, lastError string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running, j.lastRunAt, j.lastError
}

func (j *RouteDurationJob) setRunning(running bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.running = running
}

func (j *RouteDurationJob) recordResult(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastRunAt = time.Now()
	if err != nil {
		j.lastError = err.Error()
	} else {
		j.lastError = ""
	}
}
