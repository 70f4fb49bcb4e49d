package activecampaign

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/ratelimit"
)

// newTestClient builds a client against the test server with a gate
// wide enough that tests never wait on admission.
func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, "test-key", ratelimit.NewGate(10000))
}

func notePayload(id, userID, relType string) string {
	return fmt.Sprintf(`{"id":%q,"userid":%q,"reltype":%q,"relid":"500","cdate":"2024-06-01T10:00:00Z"}`, id, userID, relType)
}

func TestListNotes_DrainsAllPages(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("Api-Token"))
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		switch offset {
		case "0":
			fmt.Fprintf(w, `{"notes":[%s,%s]}`,
				notePayload("1", "112", "Deal"),
				notePayload("2", "7", "Subscriber"))
		default:
			// Short page ends the listing.
			fmt.Fprintf(w, `{"notes":[%s]}`, notePayload("3", "112", "Deal"))
		}
	}))
	defer srv.Close()

	notes, err := newTestClient(srv).ListNotes(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{"0", "2"}, offsets)
	assert.Equal(t, "1", notes[0].ID)
	assert.Equal(t, "112", notes[0].UserID)
	assert.Equal(t, domain.RelDeal, notes[0].Rel)
	assert.Equal(t, "500", notes[0].DealID)
	assert.False(t, notes[0].CreatedAt.IsZero())
	assert.Equal(t, domain.RelContact, notes[1].Rel)
}

func TestListNotes_EmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"notes":[]}`)
	}))
	defer srv.Close()

	notes, err := newTestClient(srv).ListNotes(context.Background(), 100)

	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestListNotes_RetriesTransientPageError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"notes":[%s]}`, notePayload("1", "112", "Deal"))
	}))
	defer srv.Close()

	notes, err := newTestClient(srv).ListNotes(context.Background(), 100)

	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListNotes_ExhaustsRetryBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListNotes(context.Background(), 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, int32(3), calls.Load())
}

func TestListNotes_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListNotes(context.Background(), 100)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeleteNote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/notes/42", r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteNote(context.Background(), "42")

	assert.NoError(t, err)
}

func TestDeleteNote_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteNote(context.Background(), "42")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestDeleteNote_Gone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteNote(context.Background(), "42")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteNote_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteNote(context.Background(), "42")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.True(t, IsRateLimited(err))
}

func TestDeleteNote_RateLimited_RecordsRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gate := ratelimit.NewGate(10000)
	client := NewClient(srv.URL, "k", gate)

	err := client.DeleteNote(context.Background(), "42")

	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.False(t, gate.Allow())
}

func TestDeleteNote_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteNote(context.Background(), "42")

	assert.ErrorIs(t, err, domain.ErrTransient)
}

func TestDeleteNote_ClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteNote(context.Background(), "42")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTransient)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
