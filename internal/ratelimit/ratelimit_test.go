package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGate_DefaultOnNonPositive(t *testing.T) {
	g := NewGate(0)
	assert.Equal(t, float64(DefaultRequestsPerSecond), g.Limit())

	g = NewGate(-5)
	assert.Equal(t, float64(DefaultRequestsPerSecond), g.Limit())
}

func TestGate_Wait_PacesRequests(t *testing.T) {
	// 100/s: 5 admissions need at least 40ms beyond the first token.
	g := NewGate(100)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, g.Wait(ctx))
	}
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
}

func TestGate_Wait_GlobalAcrossGoroutines(t *testing.T) {
	// The ceiling is shared: 20 goroutines through a 100/s gate still
	// need at least 190ms for 20 admissions.
	g := NewGate(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Wait(ctx)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 190*time.Millisecond)
}

func TestGate_Wait_CancelledContext(t *testing.T) {
	g := NewGate(1)
	ctx, cancel := context.WithCancel(context.Background())

	// Drain the initial token, then cancel while waiting.
	require.NoError(t, g.Wait(ctx))
	cancel()

	err := g.Wait(ctx)
	assert.Error(t, err)
}

func TestGate_RecordRetryAfter_BlocksAllow(t *testing.T) {
	g := NewGate(1000)

	assert.True(t, g.Allow())

	g.RecordRetryAfter(2)
	assert.False(t, g.Allow())
}

func TestGate_RecordRetryAfter_IgnoresNonPositive(t *testing.T) {
	g := NewGate(1000)

	g.RecordRetryAfter(0)
	g.RecordRetryAfter(-3)

	assert.True(t, g.Allow())
}
