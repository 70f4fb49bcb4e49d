package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcs-ops/notesweep/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Load_EmptyReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveLoad_Roundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := domain.NewProgress()
	p.MarkProcessed("n1")
	p.MarkProcessed("n2")
	p.TotalDeleted = 2
	p.TotalFailed = 1
	p.BatchNumber = 4
	p.RemainingEstimate = 9
	p.LastRunAt = time.Now()

	require.NoError(t, store.Save(ctx, p))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.ProcessedCount())
	assert.True(t, loaded.IsProcessed("n1"))
	assert.True(t, loaded.IsProcessed("n2"))
	assert.Equal(t, 2, loaded.TotalDeleted)
	assert.Equal(t, 1, loaded.TotalFailed)
	assert.Equal(t, 4, loaded.BatchNumber)
	assert.Equal(t, 9, loaded.RemainingEstimate)
	assert.False(t, loaded.LastRunAt.IsZero())
}

func TestStore_Save_ProcessedSetOnlyGrows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := domain.NewProgress()
	p.MarkProcessed("a")
	require.NoError(t, store.Save(ctx, p))

	// A later save with more IDs keeps the earlier ones.
	p.MarkProcessed("b")
	p.BatchNumber = 2
	require.NoError(t, store.Save(ctx, p))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.ProcessedCount())
	assert.Equal(t, 2, loaded.BatchNumber)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)

	p := domain.NewProgress()
	p.MarkProcessed("persisted")
	p.BatchNumber = 1
	require.NoError(t, store.Save(ctx, p))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.IsProcessed("persisted"))
}
