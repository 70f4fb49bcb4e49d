package activecampaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
	"github.com/gcs-ops/notesweep/internal/logger"
	"github.com/gcs-ops/notesweep/internal/retry"
)

// Ensure Client implements the CRM ports.
var _ driven.NoteAPI = (*Client)(nil)

// DefaultPageSize is the listing page size used when the caller passes
// a non-positive value.
const DefaultPageSize = 100

// noteRecord is the wire representation of a note in list responses.
type noteRecord struct {
	ID      string `json:"id"`
	UserID  string `json:"userid"`
	RelType string `json:"reltype"`
	RelID   string `json:"relid"`
	CDate   string `json:"cdate"`
}

// listNotesResponse is the wire representation of a listing page.
type listNotesResponse struct {
	Notes []noteRecord `json:"notes"`
}

// ListNotes drains the note listing endpoint page by page until a page
// comes back shorter than the page size. Each page request is retried
// on transient failures with bounded backoff; exhausting the budget
// surfaces the last error and the caller must discard the partial
// result. The listing always restarts from offset zero; the filter
// stage makes refetching previously handled notes cheap.
func (c *Client) ListNotes(ctx context.Context, pageSize int) ([]domain.Note, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var notes []domain.Note
	offset := 0
	page := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch, err := c.fetchPage(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list notes page %d: %w", page, err)
		}

		for _, rec := range batch {
			notes = append(notes, rec.toDomain())
		}

		if page%10 == 0 {
			logger.Debug("Fetched page %d, %d notes so far", page, len(notes))
		}

		if len(batch) < pageSize {
			return notes, nil
		}
		offset += pageSize
		page++
	}
}

// fetchPage requests one listing page, retrying transient and
// rate-limited failures up to the shared attempt ceiling.
func (c *Client) fetchPage(ctx context.Context, limit, offset int) ([]noteRecord, error) {
	url := fmt.Sprintf("%s/notes?limit=%d&offset=%d", c.baseURL, limit, offset)

	var lastErr error
	for attempt := 0; attempt < retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying page fetch (attempt %d): %v", attempt+1, lastErr)
			if err := retry.Sleep(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		body, err := c.do(ctx, http.MethodGet, url, ListTimeout)
		if err != nil {
			if errors.Is(err, domain.ErrTransient) || errors.Is(err, domain.ErrRateLimited) {
				lastErr = err
				continue
			}
			return nil, err
		}

		var decoded listNotesResponse
		decodeErr := json.NewDecoder(body).Decode(&decoded)
		body.Close()
		if decodeErr != nil {
			// A truncated body is as retryable as the network
			// failure that produced it.
			lastErr = fmt.Errorf("%w: decode page: %w", domain.ErrTransient, decodeErr)
			continue
		}

		return decoded.Notes, nil
	}

	return nil, lastErr
}

// DeleteNote issues one delete call for the note ID. Retry policy is the
// caller's concern; the adapter only classifies the response.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/notes/%s", c.baseURL, id)

	body, err := c.do(ctx, http.MethodDelete, url, DefaultTimeout)
	if err != nil {
		return err
	}
	body.Close()
	return nil
}

// toDomain maps a wire record onto the domain note.
func (r noteRecord) toDomain() domain.Note {
	n := domain.Note{
		ID:     r.ID,
		UserID: r.UserID,
		Rel:    domain.RelType(r.RelType),
		DealID: r.RelID,
	}
	if t, err := time.Parse(time.RFC3339, r.CDate); err == nil {
		n.CreatedAt = t
	}
	return n
}
