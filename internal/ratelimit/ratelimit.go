// Package ratelimit provides the shared admission gate that enforces the
// global requests-per-second ceiling across every API call a run makes.
//
// One Gate is constructed per run and passed to both the fetcher and the
// deletion pool. Increasing worker concurrency therefore hides latency
// without increasing the call rate.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the conservative default ceiling, matching
// the ActiveCampaign per-account limit headroom.
const DefaultRequestsPerSecond = 10

// Gate is a token-bucket admission gate. It uses a burst of one so that
// the observed call rate never exceeds the configured ceiling, and it
// honours server-imposed backoff recorded from 429 responses.
type Gate struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewGate creates a gate admitting at most requestsPerSecond calls per
// second. Non-positive values fall back to the default ceiling.
func NewGate(requestsPerSecond float64) *Gate {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	return &Gate{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until a request may be issued without exceeding the
// ceiling. It also respects any backoff period set by RecordRetryAfter.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	retryAt := g.retryAt
	g.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return g.limiter.Wait(ctx)
}

// Allow reports whether a request may be issued immediately.
func (g *Gate) Allow() bool {
	g.mu.Lock()
	retryAt := g.retryAt
	g.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return g.limiter.Allow()
}

// RecordRetryAfter records a server-imposed backoff period, typically
// from a 429 Retry-After header. Zero or negative seconds are ignored;
// the bounded retry schedule handles responses without the header.
func (g *Gate) RecordRetryAfter(seconds int) {
	if seconds <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.retryAt = time.Now().Add(time.Duration(seconds) * time.Second)
}

// Limit returns the configured ceiling in requests per second.
func (g *Gate) Limit() float64 {
	return float64(g.limiter.Limit())
}
