package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/limosin/flight-search/internal/common"
	"github.com/limosin/flight-search/internal/logging"
	"github.com/limosin/flight-search/internal/models/entities"
)

// CachedRouteGraph wraps a RouteGraph with a TTL cache keyed by
// (origin, destination, hops). Route topology changes only on ingestion,
// so chain enumeration is a safe thing to cache. Chains are stored as JSON
// so the same code works against the in-memory and Redis caches.
type CachedRouteGraph struct {
	inner RouteGraph
	cache common.CacheInterface
	ttl   time.Duration
}

var _ RouteGraph = (*CachedRouteGraph)(nil)

func NewCachedRouteGraph(inner RouteGraph, cache common.CacheInterface, ttl time.Duration) *CachedRouteGraph {
	return &CachedRouteGraph{inner: inner, cache: cache, ttl: ttl}
}

func (g *CachedRouteGraph) FindChains(ctx context.Context, origin, destination string, hops int) ([]entities.RouteChain, error) {
	key := fmt.Sprintf("chains:%s:%s:%d", origin, destination, hops)

	if cached, found := g.cache.Get(key); found {
		if payload, ok := cached.(string); ok {
			var chains []entities.RouteChain
			if err := json.Unmarshal([]byte(payload), &chains); err == nil {
				return chains, nil
			}
			logging.Warn("route chain cache: discarding undecodable entry", "key", key)
			g.cache.Delete(key)
		}
	}

	chains, err := g.inner.FindChains(ctx, origin, destination, hops)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(chains); err == nil {
		g.cache.Set(key, string(payload), g.ttl)
	}

	return chains, nil
}
