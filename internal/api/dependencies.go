package api

import (
	"time"

	"github.com/limosin/flight-search/internal/common"
	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/db"
	"github.com/limosin/flight-search/internal/db/repositories"
	"github.com/limosin/flight-search/internal/logging"
	"github.com/limosin/flight-search/internal/metrics"
	"github.com/limosin/flight-search/internal/services"
)

type Repositories struct {
	Routes    *repositories.RouteRepository
	Instances *repositories.InstanceRepository
	Fares     *repositories.FareRepository
	Airports  *repositories.AirportRepository
	Carriers  *repositories.CarrierRepository
}

type Services struct {
	Cache  common.CacheInterface
	Search *services.SearchService
}

type Dependencies struct {
	Cfg      *config.Config
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services. Redis backs the cache
// when configured; otherwise the in-memory cache is used.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repo := &Repositories{
		Routes:    repositories.NewRouteRepository(db.PgDB, &cfg.Search),
		Instances: repositories.NewInstanceRepository(db.DB, metricsReg),
		Fares:     repositories.NewFareRepository(db.PgDB),
		Airports:  repositories.NewAirportRepository(db.PgDB),
		Carriers:  repositories.NewCarrierRepository(db.PgDB),
	}

	var cacheSvc common.CacheInterface
	if cfg.RedisAddr != "" {
		redisCache, err := common.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(cfg.CacheTTLSeconds, cfg.CacheCleanupSeconds)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(cfg.CacheTTLSeconds, cfg.CacheCleanupSeconds)
	}

	routeGraph := services.NewCachedRouteGraph(
		repo.Routes,
		cacheSvc,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
	)
	fareResolver := services.NewStoredFareResolver(repo.Fares)
	estimator := services.NewRandomPriceEstimator(time.Now().UnixNano())

	searchSvc := services.NewSearchService(&cfg.Search, routeGraph, repo.Instances, fareResolver, estimator)

	return &Dependencies{
		Cfg:  cfg,
		Repo: repo,
		Services: &Services{
			Cache:  cacheSvc,
			Search: searchSvc,
		},
	}, nil
}
