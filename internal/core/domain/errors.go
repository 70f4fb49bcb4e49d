package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a network failure or 5xx response that is
	// worth retrying with backoff.
	ErrTransient = errors.New("transient error")

	// ErrFetchFailed indicates the listing phase could not complete.
	// Fatal for the run: nothing has been deleted yet, so aborting
	// without touching progress is safe.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrStateCorrupt indicates the persisted progress record could not
	// be decoded. Deliberately fatal: restarting from empty would only
	// cause harmless re-work, but it would mask real corruption, so an
	// operator has to intervene explicitly.
	ErrStateCorrupt = errors.New("progress state corrupt")

	// ErrStateUnwritable indicates progress could not be durably
	// persisted. Fatal: a run must not report success if its outcomes
	// cannot be recorded.
	ErrStateUnwritable = errors.New("progress state unwritable")
)
