package domain

// DeleteStatus classifies the outcome of one deletion attempt.
type DeleteStatus string

const (
	// StatusDeleted means the remote service confirmed the deletion.
	StatusDeleted DeleteStatus = "deleted"

	// StatusAlreadyGone means the note no longer exists remotely
	// (404/410). The desired end state already holds, so this counts
	// as success.
	StatusAlreadyGone DeleteStatus = "already-gone"

	// StatusFailed means the deletion did not succeed after retries.
	StatusFailed DeleteStatus = "failed"
)

// FailReason explains why a deletion was recorded as failed.
type FailReason string

const (
	// FailRateLimited means the API kept answering 429 past the retry budget.
	FailRateLimited FailReason = "rate-limited"

	// FailClientError means the API answered a non-retryable 4xx.
	FailClientError FailReason = "client-error"

	// FailTransient means network errors or 5xx persisted past the retry budget.
	FailTransient FailReason = "transient"
)

// DeleteResult is the per-note outcome of one deletion attempt.
type DeleteResult struct {
	// NoteID identifies the note the attempt was for.
	NoteID string

	// Status classifies the outcome.
	Status DeleteStatus

	// Reason explains a failed status. Empty on success.
	Reason FailReason

	// Err carries the final error for a failed status, for logging.
	Err error
}

// Succeeded reports whether the note is confirmed gone remotely.
func (r DeleteResult) Succeeded() bool {
	return r.Status == StatusDeleted || r.Status == StatusAlreadyGone
}
