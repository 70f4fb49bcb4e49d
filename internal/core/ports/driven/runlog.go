package driven

import "github.com/gcs-ops/notesweep/internal/core/domain"

// RunLog appends human-readable per-run summaries to durable storage.
type RunLog interface {
	// Append writes one timestamped line. Best effort for callers that
	// must not fail the run on logging problems.
	Append(line string) error

	// AppendReport writes the run summary line for a report.
	AppendReport(r *domain.RunReport) error
}
