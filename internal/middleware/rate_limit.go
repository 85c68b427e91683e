package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// perIPLimiters tracks one token bucket per client IP for the search
// endpoint. Entries are never evicted; the map is bounded by the number of
// distinct clients, which is acceptable for this service's exposure.
type perIPLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (p *perIPLimiters) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists := p.limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(p.rps, p.burst)
	p.limiters[ip] = limiter
	return limiter
}

// RateLimitMiddleware limits each client IP to rps requests per second
// with the given burst.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	limiters := &perIPLimiters{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiters.get(ip).Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
