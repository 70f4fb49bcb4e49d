package services

import (
	"context"
	"errors"
	"sync"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
	"github.com/gcs-ops/notesweep/internal/logger"
	"github.com/gcs-ops/notesweep/internal/retry"
)

// DefaultConcurrency is the worker count used when the configured value
// is not positive.
const DefaultConcurrency = 20

// DeletePool issues delete calls from a bounded set of workers. The
// global requests-per-second ceiling is enforced by the shared admission
// gate inside the API client, so adding workers hides latency without
// raising the call rate. The pool only proposes outcomes; progress
// mutation stays with the run controller.
type DeletePool struct {
	deleter     driven.NoteDeleter
	concurrency int
}

// NewDeletePool creates a pool around the given deleter.
func NewDeletePool(deleter driven.NoteDeleter, concurrency int) *DeletePool {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &DeletePool{deleter: deleter, concurrency: concurrency}
}

// Run attempts deletion of the given IDs. When maxItems is positive, at
// most that many IDs are admitted this run; zero means unlimited. The
// returned results cover every admitted ID except those abandoned by
// context cancellation, so a partial slice is safe to persist.
func (p *DeletePool) Run(ctx context.Context, ids []string, maxItems int) []domain.DeleteResult {
	if maxItems > 0 && len(ids) > maxItems {
		ids = ids[:maxItems]
	}
	if len(ids) == 0 {
		return nil
	}

	workers := p.concurrency
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan string)
	out := make(chan domain.DeleteResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if res, ok := p.deleteOne(ctx, id); ok {
					out <- res
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case jobs <- id:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]domain.DeleteResult, 0, len(ids))
	for res := range out {
		results = append(results, res)
	}
	return results
}

// deleteOne runs the bounded retry loop for a single ID and classifies
// the outcome. The second return is false when the attempt was
// abandoned because the context ended, in which case no outcome must be
// recorded: the ID stays unprocessed and the next run retries it.
func (p *DeletePool) deleteOne(ctx context.Context, id string) (domain.DeleteResult, bool) {
	var lastErr error

	for attempt := 0; attempt < retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying delete of note %s (attempt %d)", id, attempt+1)
			if err := retry.Sleep(ctx, attempt-1); err != nil {
				return domain.DeleteResult{}, false
			}
		}

		err := p.deleter.DeleteNote(ctx, id)
		switch {
		case err == nil:
			return domain.DeleteResult{NoteID: id, Status: domain.StatusDeleted}, true

		case errors.Is(err, domain.ErrNotFound):
			// The desired end state already holds.
			return domain.DeleteResult{NoteID: id, Status: domain.StatusAlreadyGone}, true

		case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrTransient):
			if ctx.Err() != nil {
				return domain.DeleteResult{}, false
			}
			lastErr = err

		default:
			// Non-retryable client error.
			return domain.DeleteResult{
				NoteID: id,
				Status: domain.StatusFailed,
				Reason: domain.FailClientError,
				Err:    err,
			}, true
		}
	}

	reason := domain.FailTransient
	if errors.Is(lastErr, domain.ErrRateLimited) {
		reason = domain.FailRateLimited
	}
	return domain.DeleteResult{
		NoteID: id,
		Status: domain.StatusFailed,
		Reason: reason,
		Err:    lastErr,
	}, true
}
