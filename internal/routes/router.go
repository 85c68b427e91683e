package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/limosin/flight-search/internal/api"
	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/db"
	"github.com/limosin/flight-search/internal/jobs"
	"github.com/limosin/flight-search/internal/logging"
	"github.com/limosin/flight-search/internal/metrics"
	"github.com/limosin/flight-search/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the chi router and wires all dependencies
func RegisterRoutes(cfg *config.Config, upSince time.Time) (http.Handler, error) {
	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000", "http://localhost:8000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		return nil, err
	}

	// Background jobs run for the lifetime of the process
	jobsContainer := jobs.InitializeJobs(context.Background(), db.PgDB)
	jobsHandler := api.NewJobsHandler(jobsContainer.RouteDuration)

	RegisterAPIRoutes(r, cfg, deps, jobsHandler, metricsReg)

	return r, nil
}
