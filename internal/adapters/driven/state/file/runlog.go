package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gcs-ops/notesweep/internal/core/domain"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
)

// Ensure RunLog implements the interface.
var _ driven.RunLog = (*RunLog)(nil)

// RunLog appends timestamped human-readable lines to a log file, one
// per run summary. The file is opened for each append so a crashed run
// never holds it open.
type RunLog struct {
	path string
}

// NewRunLog creates a run log at the given path.
func NewRunLog(path string) (*RunLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	return &RunLog{path: path}, nil
}

// Append writes one timestamped line.
func (l *RunLog) Append(line string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(f, "[%s] %s\n", timestamp, line); err != nil {
		return fmt.Errorf("append run log: %w", err)
	}
	return nil
}

// AppendReport writes the summary line for a run report.
func (l *RunLog) AppendReport(r *domain.RunReport) error {
	return l.Append(r.Summary())
}
