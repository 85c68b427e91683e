package api

import (
	"net/http"
	"time"

	"github.com/limosin/flight-search/internal/jobs"
)

// JobsHandler exposes manual triggering and status of background jobs
type JobsHandler struct {
	routeDuration *jobs.RouteDurationJob
}

func NewJobsHandler(routeDuration *jobs.RouteDurationJob) *JobsHandler {
	return &JobsHandler{routeDuration: routeDuration}
}

type jobRunResult struct {
	RoutesUpdated int `json:"routes_updated"`
}

// TriggerRouteDurationUpdate handles POST /api/v1/admin/jobs/update-route-durations
func (h *JobsHandler) TriggerRouteDurationUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := h.routeDuration.Run(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "route duration update failed: "+err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &jobRunResult{RoutesUpdated: updated})
	}
}

type jobStatus struct {
	Running   bool   `json:"running"`
	LastRunAt string `json:"last_run_at,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// GetJobStatus handles GET /api/v1/admin/jobs/status
func (h *JobsHandler) GetJobStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		running, lastRunAt, lastError := h.routeDuration.Status()

		status := jobStatus{Running: running, LastError: lastError}
		if !lastRunAt.IsZero() {
			status.LastRunAt = lastRunAt.Format(time.RFC3339)
		}

		respondWithSuccess(w, http.StatusOK, &status)
	}
}
