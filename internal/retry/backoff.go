// Package retry provides the bounded exponential backoff schedule shared
// by the fetch and delete paths.
package retry

import (
	"context"
	"time"
)

const (
	// MaxAttempts is the attempt ceiling for retryable operations.
	// Attempt numbering is zero-based: attempts 0..MaxAttempts-1.
	MaxAttempts = 3

	// baseDelay is the delay after the first failed attempt.
	baseDelay = time.Second

	// maxDelay caps the backoff growth.
	maxDelay = 30 * time.Second
)

// Backoff returns the delay to wait after the given zero-based failed
// attempt: base * 2^attempt, capped at maxDelay. Pure function.
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := baseDelay << uint(attempt)
	if d > maxDelay || d <= 0 {
		return maxDelay
	}
	return d
}

// Sleep waits for the backoff delay of the given attempt, returning early
// with the context error if the context is cancelled.
func Sleep(ctx context.Context, attempt int) error {
	timer := time.NewTimer(Backoff(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
