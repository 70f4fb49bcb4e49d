package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
	"github.com/gcs-ops/notesweep/internal/core/ports/driving"
	"github.com/gcs-ops/notesweep/internal/logger"
)

// Ensure PurgeService implements the interface.
var _ driving.PurgeRunner = (*PurgeService)(nil)

// PurgeConfig holds the per-run parameters of the purge loop.
type PurgeConfig struct {
	// TargetUserID is the owner whose deal notes are being deleted.
	TargetUserID string

	// PageSize is the listing page size.
	PageSize int

	// MaxItemsPerRun caps deletions attempted in one run; 0 = unlimited.
	MaxItemsPerRun int
}

// PurgeService is the run controller. It sequences one run through
// fetch, filter, delete and persist, and is the sole writer of the
// progress record.
type PurgeService struct {
	lister driven.NoteLister
	pool   *DeletePool
	store  driven.ProgressStore
	runlog driven.RunLog
	cfg    PurgeConfig
}

// NewPurgeService creates a run controller.
func NewPurgeService(
	lister driven.NoteLister,
	pool *DeletePool,
	store driven.ProgressStore,
	runlog driven.RunLog,
	cfg PurgeConfig,
) *PurgeService {
	return &PurgeService{
		lister: lister,
		pool:   pool,
		store:  store,
		runlog: runlog,
		cfg:    cfg,
	}
}

// Run performs one fetch → filter → delete → persist sequence.
//
// A fatal fetch error aborts before any deletion with zero progress
// mutation. After the deletion phase the collected outcomes are always
// persisted, even when the run is failing, because those deletions
// already happened remotely and must not be re-counted.
func (s *PurgeService) Run(ctx context.Context) (*domain.RunReport, error) {
	start := time.Now()
	report := &domain.RunReport{RunID: uuid.NewString()}

	// Init: load progress, or start fresh on the first run.
	progress, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		progress = domain.NewProgress()
	case err != nil:
		return nil, fmt.Errorf("load progress: %w", err)
	}
	progress.BatchNumber++
	report.BatchNumber = progress.BatchNumber

	logger.Info("Batch #%d: %d notes processed so far (%d deleted, %d failed)",
		progress.BatchNumber, progress.ProcessedCount(),
		progress.TotalDeleted, progress.TotalFailed)

	// Fetching: drain the listing fully. Nothing has been deleted yet,
	// so aborting here without touching progress is safe.
	notes, err := s.lister.ListNotes(ctx, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	// Filtering: the remaining estimate is the queue length before the
	// per-run cap is applied.
	candidates := Candidates(notes, s.cfg.TargetUserID, progress)
	report.Candidates = len(candidates)
	report.Attempted = len(candidates)
	if s.cfg.MaxItemsPerRun > 0 && report.Attempted > s.cfg.MaxItemsPerRun {
		report.Attempted = s.cfg.MaxItemsPerRun
	}

	logger.Info("Fetched %d notes, %d candidates, attempting %d",
		len(notes), report.Candidates, report.Attempted)

	// Deleting.
	results := s.pool.Run(ctx, candidates, s.cfg.MaxItemsPerRun)

	// Persisting: fold outcomes into progress and write atomically.
	// Uses a detached context so a cancelled run still checkpoints.
	for _, res := range results {
		switch res.Status {
		case domain.StatusDeleted:
			progress.MarkProcessed(res.NoteID)
			progress.TotalDeleted++
			report.Deleted++
		case domain.StatusAlreadyGone:
			progress.MarkProcessed(res.NoteID)
			progress.TotalDeleted++
			report.AlreadyGone++
		case domain.StatusFailed:
			progress.TotalFailed++
			report.Failed++
			logger.Warn("Delete failed for note %s: %s: %v", res.NoteID, res.Reason, res.Err)
		}
	}

	report.Remaining = report.Candidates - report.Deleted - report.AlreadyGone
	report.Complete = report.Remaining == 0
	report.Duration = time.Since(start)

	progress.RemainingEstimate = report.Remaining
	progress.LastRunAt = time.Now()

	if err := s.store.Save(context.WithoutCancel(ctx), progress); err != nil {
		return report, fmt.Errorf("save progress: %w", err)
	}

	s.logSummary(report)

	if err := ctx.Err(); err != nil {
		// The run was cut short after partial deletion; progress for
		// the completed outcomes is already durable.
		return report, err
	}
	return report, nil
}

// Progress returns the persisted progress record.
func (s *PurgeService) Progress(ctx context.Context) (*domain.Progress, error) {
	return s.store.Load(ctx)
}

// logSummary writes the run summary to the append-only run log.
// Logging failures must not fail the run.
func (s *PurgeService) logSummary(report *domain.RunReport) {
	if s.runlog == nil {
		return
	}
	if err := s.runlog.AppendReport(report); err != nil {
		logger.Warn("Run log append failed: %v", err)
		return
	}
	if report.Complete {
		if err := s.runlog.Append("COMPLETE: target set is empty, no candidates remain"); err != nil {
			logger.Warn("Run log append failed: %v", err)
		}
	}
}
