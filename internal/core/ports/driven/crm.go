package driven

import (
	"context"

	"github.com/gcs-ops/notesweep/internal/core/domain"
)

// NoteLister pages through the remote note collection.
type NoteLister interface {
	// ListNotes drains the remote listing endpoint page by page and
	// returns every note it saw. The collection is finite; a page
	// shorter than the page size signals the end. Transient page errors
	// are retried internally; exhausting the retry budget surfaces an
	// error and the partial result must be discarded by the caller.
	ListNotes(ctx context.Context, pageSize int) ([]domain.Note, error)
}

// NoteDeleter removes a single note by ID.
type NoteDeleter interface {
	// DeleteNote issues one delete call. It returns nil when the remote
	// service confirms the deletion. Errors wrap the domain sentinels
	// (ErrNotFound, ErrRateLimited, ErrTransient) so callers can
	// classify them with errors.Is; anything else is a client error.
	DeleteNote(ctx context.Context, id string) error
}

// NoteAPI combines listing and deletion against the remote CRM.
type NoteAPI interface {
	NoteLister
	NoteDeleter
}
