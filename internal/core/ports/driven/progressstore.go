package driven

import (
	"context"

	"github.com/gcs-ops/notesweep/internal/core/domain"
)

// ProgressStore persists deletion progress between runs.
type ProgressStore interface {
	// Load retrieves the persisted progress record.
	// Returns domain.ErrNotFound when no record exists yet (first run)
	// and domain.ErrStateCorrupt when the record cannot be decoded.
	Load(ctx context.Context) (*domain.Progress, error)

	// Save overwrites the persisted progress record atomically.
	// A subsequent Load must never observe a partial write.
	// Failures wrap domain.ErrStateUnwritable.
	Save(ctx context.Context, p *domain.Progress) error
}
