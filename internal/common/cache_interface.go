package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis caches.
// The route-chain cache is the main consumer; values that must survive a
// Redis round trip should be cached as serialized strings.
type CacheInterface interface {
	// Set stores a value under key for the given TTL
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the cached value and true, or nil and false on a miss
	Get(key string) (interface{}, bool)

	// Delete drops the key; absent keys are a no-op
	Delete(key string)

	// GetOrSet returns the cached value, or loads, stores, and returns it
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections (Redis); no-op in memory
	Close() error
}
