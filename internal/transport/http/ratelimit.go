package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleTTL       = 10 * time.Minute
)

// clientLimiter is one client's token bucket and when it was last used.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps a token bucket per client key.
// Each bucket holds limit tokens and refills at limit per window.
type rateLimiter struct {
	limit    int
	every    rate.Limit
	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	if limit <= 0 || window <= 0 {
		return &rateLimiter{limit: 0}
	}
	return &rateLimiter{
		limit:    limit,
		every:    rate.Limit(float64(limit) / window.Seconds()),
		limiters: make(map[string]*clientLimiter),
	}
}

func (r *rateLimiter) enabled() bool {
	return r != nil && r.limit > 0
}

func (r *rateLimiter) allow(key string) bool {
	if !r.enabled() {
		return true
	}
	return r.get(key, time.Now()).Allow()
}

func (r *rateLimiter) get(key string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	cl, ok := r.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(r.every, r.limit)}
		r.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweep drops buckets idle for longer than ttl.
func (r *rateLimiter) sweep(now time.Time, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, cl := range r.limiters {
		if now.Sub(cl.lastSeen) > ttl {
			delete(r.limiters, key)
		}
	}
}

func (r *rateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.limiters)
}

// startCleanup sweeps idle buckets until stop is closed.
func (r *rateLimiter) startCleanup(stop <-chan struct{}) {
	if !r.enabled() {
		return
	}
	go func() {
		ticker := time.NewTicker(limiterSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				r.sweep(now, limiterIdleTTL)
			case <-stop:
				return
			}
		}
	}()
}
