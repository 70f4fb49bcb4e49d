// Package memory provides in-memory implementations of the state ports,
// used by tests and as a null backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
)

// Ensure ProgressStore implements the interface.
var _ driven.ProgressStore = (*ProgressStore)(nil)

// ProgressStore is an in-memory implementation of driven.ProgressStore.
type ProgressStore struct {
	mu       sync.RWMutex
	snapshot *snapshot
}

// snapshot is a deep copy of the persisted fields, so callers cannot
// mutate stored state through a retained *domain.Progress.
type snapshot struct {
	ids       []string
	deleted   int
	failed    int
	batch     int
	remaining int
	startedAt time.Time
	lastRunAt time.Time
}

// NewProgressStore creates an empty in-memory progress store.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{}
}

// Load retrieves the stored progress record.
func (s *ProgressStore) Load(_ context.Context) (*domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	snap := s.snapshot
	return domain.RestoreProgress(
		snap.ids, snap.deleted, snap.failed, snap.batch, snap.remaining,
		snap.startedAt, snap.lastRunAt,
	), nil
}

// Save stores a deep copy of the progress record.
func (s *ProgressStore) Save(_ context.Context, p *domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = &snapshot{
		ids:       p.ProcessedIDs(),
		deleted:   p.TotalDeleted,
		failed:    p.TotalFailed,
		batch:     p.BatchNumber,
		remaining: p.RemainingEstimate,
		startedAt: p.StartedAt,
		lastRunAt: p.LastRunAt,
	}
	return nil
}
