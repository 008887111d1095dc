// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package ratelimit_test

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modonevolutio/modon/internal/platform/ratelimit"
)

// testClock is a manually advanced clock for deterministic window tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

/*
TestLimiter_WindowBehavior verifies the canonical fixed-window contract:
exactly maxRequests are admitted, the next request is rejected, and a new
window opens with count reset to 1 once resetAt has passed.
*/
func TestLimiter_WindowBehavior(t *testing.T) {
	clock := newTestClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	const maxRequests = 5
	window := time.Second

	// 1. Exactly 5 requests inside the window are allowed.
	for i := 0; i < maxRequests; i++ {
		result := limiter.Check("203.0.113.7", maxRequests, window)
		assert.True(t, result.Allowed, "request %d must be allowed", i+1)
		assert.Equal(t, maxRequests-i-1, result.Remaining)
	}

	// 2. The 6th is rejected with a retry hint and an unchanged window.
	rejected := limiter.Check("203.0.113.7", maxRequests, window)
	assert.False(t, rejected.Allowed)
	assert.Equal(t, 0, rejected.Remaining)
	assert.Equal(t, clock.Now().Add(window), rejected.ResetAt)
	assert.Contains(t, rejected.Message, "try again in 1 seconds")

	// 3. Rejection must not extend the window: still rejected just before reset.
	clock.Advance(window - time.Millisecond)
	assert.False(t, limiter.Check("203.0.113.7", maxRequests, window).Allowed)

	// 4. Past resetAt a fresh window opens with count 1.
	clock.Advance(2 * time.Millisecond)
	fresh := limiter.Check("203.0.113.7", maxRequests, window)
	assert.True(t, fresh.Allowed)
	assert.Equal(t, maxRequests-1, fresh.Remaining)
}

/*
TestLimiter_IdentifiersAreIndependent verifies per-identifier isolation.
*/
func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	limiter := ratelimit.NewLimiter()

	assert.True(t, limiter.Check("203.0.113.7", 1, time.Minute).Allowed)
	assert.False(t, limiter.Check("203.0.113.7", 1, time.Minute).Allowed)
	assert.True(t, limiter.Check("203.0.113.8", 1, time.Minute).Allowed)
}

/*
TestLimiter_Sweep verifies that expired entries are removed while live
windows survive, and that an unswept expired entry is still replaced
correctly on next access.
*/
func TestLimiter_Sweep(t *testing.T) {
	clock := newTestClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	limiter.Check("expired", 5, time.Second)
	clock.Advance(30 * time.Second)
	limiter.Check("live", 5, time.Minute)

	assert.Equal(t, 2, limiter.Len())
	limiter.Sweep()
	assert.Equal(t, 1, limiter.Len())

	// Lazy expiry is correctness-critical even without the sweep.
	fresh := limiter.Check("expired", 5, time.Second)
	assert.True(t, fresh.Allowed)
	assert.Equal(t, 4, fresh.Remaining)
}

/*
TestLimiter_ConcurrentChecks hammers one identifier from many goroutines and
requires that admissions never exceed the window maximum.
*/
func TestLimiter_ConcurrentChecks(t *testing.T) {
	limiter := ratelimit.NewLimiter()

	const maxRequests = 50
	const attempts = 200

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Check("shared", maxRequests, time.Minute).Allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, maxRequests, admitted)
}

/*
TestClientIdentifier verifies the proxy-header derivation order.
*/
func TestClientIdentifier(t *testing.T) {
	t.Run("first_forwarded_for_value_wins", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/api/v1/leads", nil)
		request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		request.Header.Set("X-Real-IP", "198.51.100.9")
		assert.Equal(t, "203.0.113.7", ratelimit.ClientIdentifier(request))
	})

	t.Run("real_ip_fallback", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/api/v1/leads", nil)
		request.Header.Set("X-Real-IP", "198.51.100.9")
		assert.Equal(t, "198.51.100.9", ratelimit.ClientIdentifier(request))
	})

	t.Run("unknown_sentinel", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/api/v1/leads", nil)
		assert.Equal(t, ratelimit.UnknownIdentifier, ratelimit.ClientIdentifier(request))
	})
}
