// Package file provides the file-backed state adapters: a JSON progress
// store with atomic replace semantics and an append-only run log.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
)

// Ensure ProgressStore implements the interface.
var _ driven.ProgressStore = (*ProgressStore)(nil)

// SchemaVersion is the current state file format version.
const SchemaVersion = 1

// ProgressStore persists progress as a single JSON document at a
// well-known path. Writes go to a temp file in the same directory and
// are renamed into place, so a crashed run can never leave a partial
// record for the next run to read.
type ProgressStore struct {
	path string
}

// stateFile is the on-disk representation of domain.Progress.
type stateFile struct {
	Version           int       `json:"version"`
	ProcessedNoteIDs  []string  `json:"processed_note_ids"`
	TotalDeleted      int       `json:"total_deleted"`
	TotalFailed       int       `json:"total_failed"`
	BatchNumber       int       `json:"batch_number"`
	RemainingEstimate int       `json:"remaining_estimate"`
	StartedAt         time.Time `json:"start_time"`
	LastRunAt         time.Time `json:"last_run_time"`
}

// NewProgressStore creates a store at the given path. The parent
// directory is created if needed.
func NewProgressStore(path string) (*ProgressStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	return &ProgressStore{path: path}, nil
}

// Path returns the state file path.
func (s *ProgressStore) Path() string {
	return s.path
}

// Load reads and decodes the state file. A missing file maps to
// domain.ErrNotFound (first run); an undecodable file maps to
// domain.ErrStateCorrupt and deliberately requires operator
// intervention instead of silently restarting from empty.
func (s *ProgressStore) Load(_ context.Context) (*domain.Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read state file %s: %w", s.path, err)
	}

	var sf stateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStateCorrupt, s.path, err)
	}
	if sf.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %s: unknown version %d", domain.ErrStateCorrupt, s.path, sf.Version)
	}

	return domain.RestoreProgress(
		sf.ProcessedNoteIDs, sf.TotalDeleted, sf.TotalFailed,
		sf.BatchNumber, sf.RemainingEstimate, sf.StartedAt, sf.LastRunAt,
	), nil
}

// Save encodes progress and atomically replaces the state file.
func (s *ProgressStore) Save(_ context.Context, p *domain.Progress) error {
	ids := p.ProcessedIDs()
	sort.Strings(ids)

	sf := stateFile{
		Version:           SchemaVersion,
		ProcessedNoteIDs:  ids,
		TotalDeleted:      p.TotalDeleted,
		TotalFailed:       p.TotalFailed,
		BatchNumber:       p.BatchNumber,
		RemainingEstimate: p.RemainingEstimate,
		StartedAt:         p.StartedAt,
		LastRunAt:         p.LastRunAt,
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrStateUnwritable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: temp file: %w", domain.ErrStateUnwritable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write: %w", domain.ErrStateUnwritable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync: %w", domain.ErrStateUnwritable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close: %w", domain.ErrStateUnwritable, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace: %w", domain.ErrStateUnwritable, err)
	}
	return nil
}
