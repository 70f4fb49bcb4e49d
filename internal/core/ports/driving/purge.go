package driving

import (
	"context"

	"github.com/gcs-ops/notesweep/internal/core/domain"
)

// PurgeRunner executes one fetch/filter/delete/persist run.
type PurgeRunner interface {
	// Run performs a single run and returns its report.
	// On a fatal fetch error the run aborts with no progress mutation.
	// On a delete or persist failure the collected outcomes are
	// best-effort persisted before the error is returned.
	Run(ctx context.Context) (*domain.RunReport, error)

	// Progress returns the currently persisted progress record without
	// contacting the remote API. Returns domain.ErrNotFound before the
	// first run.
	Progress(ctx context.Context) (*domain.Progress, error)
}
