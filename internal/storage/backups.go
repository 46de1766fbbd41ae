package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/homeease/homeease/internal/common"
	"github.com/homeease/homeease/internal/model"
)

const (
	backupPrefix = "backup_"
	backupExt    = ".csv"

	// backupTimeLayout names archives by creation time at second
	// granularity. Two backups within the same second would collide;
	// acceptable for a single user working interactively.
	backupTimeLayout = "20060102_150405"
)

// BackupManager snapshots the expense ledger into timestamped archives
// and restores from them. Archives are immutable and never auto-deleted.
type BackupManager struct {
	store *CSVStore
	dir   string
	clock func() time.Time
	mu    sync.Mutex
}

// NewBackupManager creates a manager writing archives into dir.
func NewBackupManager(store *CSVStore, dir string) *BackupManager {
	return &BackupManager{
		store: store,
		dir:   dir,
		clock: time.Now,
	}
}

// Create snapshots the current ledger into a new archive and returns
// its ID. An empty ledger cannot be backed up.
func (m *BackupManager) Create(ctx context.Context) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	count, err := m.store.Count(ctx)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", common.ErrEmptyStore
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	id := m.clock().Format(backupTimeLayout)
	archivePath := filepath.Join(m.dir, backupPrefix+id+backupExt)

	if err := copyFile(m.store.Path(), archivePath); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	slog.Info("created backup archive", "id", id, "records", count)
	return id, nil
}

// List returns descriptors for all archives, sorted by name — which is
// creation order, given the timestamp naming scheme.
func (m *BackupManager) List(ctx context.Context) ([]model.BackupInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]model.BackupInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupExt) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupExt)

		createdAt, parseErr := time.Parse(backupTimeLayout, id)
		if parseErr != nil {
			slog.Warn("skipping archive with unrecognized name", "name", name)
			continue
		}

		info, statErr := entry.Info()
		if statErr != nil {
			return nil, fmt.Errorf("failed to stat archive: %w", statErr)
		}

		records, countErr := countArchiveRecords(filepath.Join(m.dir, name))
		if countErr != nil {
			slog.Warn("failed to count archive records", "name", name, "error", countErr)
		}

		backups = append(backups, model.BackupInfo{
			ID:        id,
			CreatedAt: createdAt,
			Records:   records,
			FileSize:  info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].ID < backups[j].ID })
	return backups, nil
}

// Restore applies an archive to the live ledger. Overwrite replaces the
// ledger with the archive's contents; Append concatenates the archive's
// rows after the existing ones, preserving order and duplicates. An
// invalid archive ID leaves the ledger untouched.
func (m *BackupManager) Restore(ctx context.Context, id string, mode model.RestoreMode) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %s", common.ErrUnknownArchive, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	archivePath := filepath.Join(m.dir, backupPrefix+id+backupExt)
	if _, err := os.Stat(archivePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", common.ErrUnknownArchive, id)
		}
		return fmt.Errorf("failed to access archive: %w", err)
	}

	switch mode {
	case model.RestoreAppend:
		if err := m.appendArchive(archivePath); err != nil {
			return err
		}
	case model.RestoreOverwrite:
		if err := replaceFile(archivePath, m.store.Path()); err != nil {
			return fmt.Errorf("failed to restore archive: %w", err)
		}
	default:
		return fmt.Errorf("invalid restore mode: %q", mode)
	}

	slog.Info("restored backup archive", "id", id, "mode", mode)
	return nil
}

// appendArchive concatenates the archive's bytes after the live ledger,
// writing the combined result atomically.
func (m *BackupManager) appendArchive(archivePath string) error {
	live, err := os.ReadFile(m.store.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	archived, err := os.ReadFile(archivePath)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	if len(live) > 0 && !bytes.HasSuffix(live, []byte("\n")) {
		live = append(live, '\n')
	}
	combined := append(live, archived...)

	dir := filepath.Dir(m.store.Path())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".restore-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(combined); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write combined ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger: %w", err)
	}
	if err := os.Rename(tmpName, m.store.Path()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger: %w", err)
	}

	return nil
}

// countArchiveRecords counts well-formed rows in an archive file.
func countArchiveRecords(path string) (int, error) {
	archive := NewCSVStore(path)
	return archive.Count(context.Background())
}

// copyFile copies src to dst verbatim. dst must not be mutated on error.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			slog.Error("failed to close source file", "error", closeErr)
		}
	}()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("failed to copy: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close destination: %w", err)
	}
	return nil
}

// replaceFile copies src over dst atomically via a temp file and rename.
func replaceFile(src, dst string) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".restore-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := copyFile(src, tmpName); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
