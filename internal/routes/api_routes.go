package routes

import (
	"github.com/limosin/flight-search/internal/api"
	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/metrics"
	"github.com/limosin/flight-search/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, cfg *config.Config, deps *api.Dependencies, jobsHandler *api.JobsHandler, metricsReg *metrics.MetricsRegistry) {
	r.Route("/api/v1", func(v1 chi.Router) {
		// Search is the hot path and gets its own rate limit
		v1.Group(func(search chi.Router) {
			search.Use(middleware.RateLimitMiddleware(cfg.SearchRatePerSecond, cfg.SearchRateBurst))
			search.Post("/search", api.SearchHandler(deps.Services.Search, &cfg.Search, metricsReg))
		})

		v1.Get("/airports", api.ListAirportsHandler(deps.Repo.Airports))
		v1.Get("/airports/{code}", api.GetAirportHandler(deps.Repo.Airports))

		v1.Post("/admin/jobs/update-route-durations", jobsHandler.TriggerRouteDurationUpdate())
		v1.Get("/admin/jobs/status", jobsHandler.GetJobStatus())
	})
}
