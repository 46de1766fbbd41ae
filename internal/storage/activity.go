package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const activityTimeLayout = "2006-01-02 15:04:05"

// ActivityLog is the write-only, line-oriented append log of notable
// mutations: one line per event, `[<timestamp>] - <message>`.
// Timestamps are rendered in the reporting timezone. The application
// never reads this file back.
type ActivityLog struct {
	path  string
	loc   *time.Location
	clock func() time.Time
	mu    sync.Mutex
}

// NewActivityLog creates a log writing to path with timestamps in loc.
func NewActivityLog(path string, loc *time.Location) *ActivityLog {
	return &ActivityLog{
		path:  path,
		loc:   loc,
		clock: time.Now,
	}
}

// Record appends one event line. A failure to log is reported but must
// not fail the mutation that triggered it, so callers typically ignore
// the returned error after surfacing it.
func (l *ActivityLog) Record(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open activity log: %w", err)
	}

	stamp := l.clock().In(l.loc).Format(activityTimeLayout)
	if _, err := fmt.Fprintf(f, "[%s] - %s\n", stamp, message); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write activity log: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close activity log: %w", err)
	}

	slog.Debug("recorded activity", "message", message)
	return nil
}
