// Copyright (c) 2026 MODON Evolutio. All rights reserved.

/*
Package ratelimit implements the fixed-window request limiter protecting
public mutation endpoints (lead submission, contact forms).

# Algorithm

Fixed window, not sliding or token-bucket: the first request from an
identifier opens a window of the configured duration; requests inside the
window are counted; the request that would exceed the maximum is rejected
without advancing the window.

# Concurrency

The keyed map is guarded by a mutex so that two simultaneous requests from
the same identifier cannot both read count < max and both be admitted.
A periodic sweep removes expired entries to bound memory growth; the sweep
is best-effort housekeeping, because an expired-but-unswept entry is replaced
on next access anyway.
*/
package ratelimit

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"
)

// UnknownIdentifier is the sentinel identifier used when no client address
// can be derived from the request.
const UnknownIdentifier = "unknown"

// Result is the outcome of a single limiter check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window expires.
	ResetAt time.Time

	// Message is a human-readable retry hint, set only on rejection.
	Message string
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is an in-process fixed-window counter keyed by client identifier.
//
// State is process-local and lost on restart. Construct one per logical
// endpoint policy and inject it; there is no package-level singleton, so
// tests can build isolated instances with a controlled clock.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewLimiter constructs an empty [Limiter] using the wall clock.
func NewLimiter() *Limiter {
	return NewLimiterWithClock(time.Now)
}

// NewLimiterWithClock constructs a [Limiter] with an injected clock.
// Only intended for test use.
func NewLimiterWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     now,
	}
}

// Check records one request from identifier against the maxRequests/window
// policy and reports whether it is allowed.
//
// A missing or expired entry is replaced by a fresh window with count 1.
// A full window rejects without counting, so the window never resets early.
func (l *Limiter) Check(identifier string, maxRequests int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[identifier]
	if !ok || !e.resetAt.After(now) {
		e = &entry{count: 1, resetAt: now.Add(window)}
		l.entries[identifier] = e
		return Result{Allowed: true, Remaining: maxRequests - 1, ResetAt: e.resetAt}
	}

	if e.count >= maxRequests {
		retryAfter := int(math.Ceil(e.resetAt.Sub(now).Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   e.resetAt,
			Message:   fmt.Sprintf("Too many requests. Please try again in %d seconds.", retryAfter),
		}
	}

	e.count++
	return Result{Allowed: true, Remaining: maxRequests - e.count, ResetAt: e.resetAt}
}

// Sweep removes entries whose window has fully expired.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for identifier, e := range l.entries {
		if !e.resetAt.After(now) {
			delete(l.entries, identifier)
		}
	}
}

// StartSweeping runs [Limiter.Sweep] every interval until done is closed.
func (l *Limiter) StartSweeping(done <-chan struct{}, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-done:
				return
			}
		}
	}()
}

// Len reports the number of tracked identifiers, swept or not.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ClientIdentifier derives the limiter key from proxy headers: the first
// X-Forwarded-For value, else X-Real-IP, else [UnknownIdentifier].
//
// Headers are trusted as-is. Deployments must sit behind a reverse proxy
// that strips or sets them, otherwise the identifier is spoofable.
func ClientIdentifier(request *http.Request) string {
	if forwarded := request.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if ip := request.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	return UnknownIdentifier
}
