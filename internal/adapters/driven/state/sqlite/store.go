// Package sqlite provides a SQLite-backed progress store, for
// deployments where the processed set grows past what a JSON file
// handles comfortably.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gcs-ops/notesweep/internal/adapters/driven/state/sqlite/migrations"
	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ProgressStore = (*Store)(nil)

// Store is a SQLite-backed implementation of driven.ProgressStore.
// The progress aggregate lives in a single pinned row; the processed
// set has its own table. Save runs in one transaction, which gives the
// same never-a-partial-write guarantee as the file store's
// temp-and-rename.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at the given path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	// WAL mode for crash consistency without blocking readers.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the progress row and the processed set.
func (s *Store) Load(ctx context.Context) (*domain.Progress, error) {
	var (
		deleted, failed, batch, remaining int
		startedAt                         time.Time
		lastRunAt                         sql.NullTime
	)

	row := s.db.QueryRowContext(ctx, `
		SELECT total_deleted, total_failed, batch_number, remaining_estimate, started_at, last_run_at
		FROM progress WHERE id = 1
	`)
	if err := row.Scan(&deleted, &failed, &batch, &remaining, &startedAt, &lastRunAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: scan progress row: %w", domain.ErrStateCorrupt, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT note_id FROM processed_notes`)
	if err != nil {
		return nil, fmt.Errorf("%w: query processed set: %w", domain.ErrStateCorrupt, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan processed id: %w", domain.ErrStateCorrupt, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate processed set: %w", domain.ErrStateCorrupt, err)
	}

	var lastRun time.Time
	if lastRunAt.Valid {
		lastRun = lastRunAt.Time
	}
	return domain.RestoreProgress(ids, deleted, failed, batch, remaining, startedAt, lastRun), nil
}

// Save writes the aggregate and the processed set in one transaction.
func (s *Store) Save(ctx context.Context, p *domain.Progress) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrStateUnwritable, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO progress (id, total_deleted, total_failed, batch_number, remaining_estimate, started_at, last_run_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_deleted = excluded.total_deleted,
			total_failed = excluded.total_failed,
			batch_number = excluded.batch_number,
			remaining_estimate = excluded.remaining_estimate,
			last_run_at = excluded.last_run_at
	`, p.TotalDeleted, p.TotalFailed, p.BatchNumber, p.RemainingEstimate, p.StartedAt, p.LastRunAt)
	if err != nil {
		return fmt.Errorf("%w: upsert progress: %w", domain.ErrStateUnwritable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO processed_notes (note_id) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", domain.ErrStateUnwritable, err)
	}
	defer stmt.Close()

	for _, id := range p.ProcessedIDs() {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("%w: insert processed id: %w", domain.ErrStateUnwritable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrStateUnwritable, err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
