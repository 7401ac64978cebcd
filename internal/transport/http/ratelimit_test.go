package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterDisabled(t *testing.T) {
	var nilLimiter *rateLimiter
	assert.True(t, nilLimiter.allow("a"))

	limiter := newRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, limiter.allow("a"))
	}
}

func TestRateLimiterPerKey(t *testing.T) {
	limiter := newRateLimiter(2, time.Hour)

	assert.True(t, limiter.allow("a"))
	assert.True(t, limiter.allow("a"))
	assert.False(t, limiter.allow("a"))
	assert.True(t, limiter.allow("b"))
}

func TestRateLimiterRefills(t *testing.T) {
	limiter := newRateLimiter(1, 20*time.Millisecond)

	assert.True(t, limiter.allow("a"))
	assert.False(t, limiter.allow("a"))

	assert.Eventually(t, func() bool {
		return limiter.allow("a")
	}, time.Second, 5*time.Millisecond)
}

func TestRateLimiterSweepDropsIdleClients(t *testing.T) {
	limiter := newRateLimiter(1, time.Hour)
	start := time.Now()

	limiter.get("idle", start)
	limiter.get("busy", start.Add(9*time.Minute))
	assert.Equal(t, 2, limiter.size())

	limiter.sweep(start.Add(11*time.Minute), limiterIdleTTL)
	assert.Equal(t, 1, limiter.size())

	// A swept client starts over with a full bucket.
	assert.True(t, limiter.allow("idle"))
}
