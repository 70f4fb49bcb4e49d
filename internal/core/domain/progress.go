package domain

import "time"

// Progress is the durable record of deletion progress across runs.
// It is the single source of truth for "already handled": an ID present
// in the processed set must never be resubmitted for deletion.
//
// Progress is owned by the run controller, which is its sole writer.
// It is loaded at the start of a run and persisted atomically at the end.
type Progress struct {
	// processed holds every note ID that was confirmed handled
	// (deleted or already gone). Monotonically grows, never shrinks.
	processed map[string]struct{}

	// TotalDeleted counts notes confirmed removed across all runs.
	TotalDeleted int

	// TotalFailed counts recorded deletion failures across all runs.
	TotalFailed int

	// BatchNumber increments once per run.
	BatchNumber int

	// RemainingEstimate is the best-effort count of unprocessed matching
	// notes, recomputed each run from the fetch phase.
	RemainingEstimate int

	// StartedAt is when the first run created this record.
	StartedAt time.Time

	// LastRunAt is when the most recent run persisted this record.
	LastRunAt time.Time
}

// NewProgress creates an empty progress record for a first run.
func NewProgress() *Progress {
	return &Progress{
		processed: make(map[string]struct{}),
		StartedAt: time.Now(),
	}
}

// RestoreProgress rebuilds a progress record from persisted values.
// Duplicate IDs collapse into a single set entry.
func RestoreProgress(processedIDs []string, totalDeleted, totalFailed, batchNumber, remaining int, startedAt, lastRunAt time.Time) *Progress {
	p := &Progress{
		processed:         make(map[string]struct{}, len(processedIDs)),
		TotalDeleted:      totalDeleted,
		TotalFailed:       totalFailed,
		BatchNumber:       batchNumber,
		RemainingEstimate: remaining,
		StartedAt:         startedAt,
		LastRunAt:         lastRunAt,
	}
	for _, id := range processedIDs {
		p.processed[id] = struct{}{}
	}
	return p
}

// IsProcessed reports whether the note ID was already handled.
func (p *Progress) IsProcessed(id string) bool {
	_, ok := p.processed[id]
	return ok
}

// MarkProcessed records a note ID as handled. Marking an ID twice is a
// no-op; the set never holds duplicates and never shrinks.
func (p *Progress) MarkProcessed(id string) {
	p.processed[id] = struct{}{}
}

// ProcessedCount returns the number of handled note IDs.
func (p *Progress) ProcessedCount() int {
	return len(p.processed)
}

// ProcessedIDs returns a copy of the handled note IDs.
// Order is unspecified.
func (p *Progress) ProcessedIDs() []string {
	ids := make([]string, 0, len(p.processed))
	for id := range p.processed {
		ids = append(ids, id)
	}
	return ids
}
