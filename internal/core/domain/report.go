package domain

import (
	"fmt"
	"time"
)

// RunReport summarises one fetch/filter/delete/persist run.
type RunReport struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// BatchNumber is the progress batch counter for this run.
	BatchNumber int

	// Candidates is the filtered queue length before capping.
	Candidates int

	// Attempted is how many deletions were actually attempted
	// (candidates, capped by the per-run item limit).
	Attempted int

	// Deleted counts confirmed deletions this run.
	Deleted int

	// AlreadyGone counts notes found already absent this run.
	AlreadyGone int

	// Failed counts recorded failures this run.
	Failed int

	// Remaining is the estimate of matching notes left after this run.
	Remaining int

	// Complete is true when no matching notes remain. Advisory signal
	// for the external trigger; the tool does not self-disable.
	Complete bool

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// CompletionPercent is the share of this run's candidates now handled,
// as a percentage. A run with no candidates is fully complete.
func (r *RunReport) CompletionPercent() float64 {
	if r.Candidates == 0 {
		return 100
	}
	return float64(r.Candidates-r.Remaining) / float64(r.Candidates) * 100
}

// Summary renders the one-line human-readable run summary.
func (r *RunReport) Summary() string {
	return fmt.Sprintf(
		"batch #%d run %s: candidates=%d attempted=%d deleted=%d already-gone=%d failed=%d remaining=%d (%.1f%% done, %.1fs)",
		r.BatchNumber, r.RunID, r.Candidates, r.Attempted,
		r.Deleted, r.AlreadyGone, r.Failed, r.Remaining,
		r.CompletionPercent(), r.Duration.Seconds(),
	)
}
