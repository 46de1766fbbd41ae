package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/homeease/homeease/internal/common"
	"github.com/homeease/homeease/internal/model"
	"github.com/homeease/homeease/internal/money"
)

const recordFields = 4

// CSVStore persists expense records as comma-separated rows of
// date,category,description,amount with no header. Amounts are stored
// in display form (thousands separators, two fraction digits).
//
// Records are addressed by 1-based ordinal position. Every mutation is
// a whole-file rewrite; a mutex makes the single-writer assumption of
// the design explicit.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store backed by the given CSV file. The file is
// created lazily on first write; a missing file reads as empty.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the ledger file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Append adds one record to the end of the ledger.
func (s *CSVStore) Append(ctx context.Context, record model.ExpenseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(recordToRow(record)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush record: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close ledger: %w", err)
	}

	slog.Debug("appended expense record", "category", record.Category)
	return nil
}

// List returns all records in ledger order. The 1-based display ordinal
// is implied by slice position. Malformed rows are skipped, and a
// missing ledger file reads as empty.
func (s *CSVStore) List(ctx context.Context) ([]model.ExpenseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Edit rewrites the category, description, and amount of the record at
// the given 1-based ordinal. The date is immutable once set.
func (s *CSVStore) Edit(ctx context.Context, ordinal int, category, description string, amount decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	if ordinal < 1 || ordinal > len(records) {
		return fmt.Errorf("%w: %d", common.ErrInvalidOrdinal, ordinal)
	}

	records[ordinal-1].Category = category
	records[ordinal-1].Description = description
	records[ordinal-1].Amount = amount

	if err := s.save(records); err != nil {
		return err
	}

	slog.Debug("edited expense record", "ordinal", ordinal)
	return nil
}

// DeleteOne removes the record at the given 1-based ordinal.
// Confirmation of destructive operations is the caller's concern.
func (s *CSVStore) DeleteOne(ctx context.Context, ordinal int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	if ordinal < 1 || ordinal > len(records) {
		return fmt.Errorf("%w: %d", common.ErrInvalidOrdinal, ordinal)
	}

	records = append(records[:ordinal-1], records[ordinal:]...)

	if err := s.save(records); err != nil {
		return err
	}

	slog.Debug("deleted expense record", "ordinal", ordinal)
	return nil
}

// DeleteMany removes the records at the given 1-based ordinals,
// silently dropping out-of-range entries from the batch. It returns the
// number of records deleted. If no ordinal in the batch is valid, the
// ledger is left untouched and ErrNoValidTargets is returned.
func (s *CSVStore) DeleteMany(ctx context.Context, ordinals []int) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return 0, err
	}

	seen := make(map[int]bool, len(ordinals))
	valid := make([]int, 0, len(ordinals))
	for _, ord := range ordinals {
		if ord < 1 || ord > len(records) || seen[ord] {
			continue
		}
		seen[ord] = true
		valid = append(valid, ord)
	}

	if len(valid) == 0 {
		return 0, common.ErrNoValidTargets
	}

	// Remove highest ordinals first so earlier removals do not shift
	// the positions of those still pending in the same batch.
	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	for _, ord := range valid {
		records = append(records[:ord-1], records[ord:]...)
	}

	if err := s.save(records); err != nil {
		return 0, err
	}

	slog.Debug("deleted expense records", "count", len(valid))
	return len(valid), nil
}

// DeleteAll truncates the ledger to empty. Irreversible except by
// restoring a backup archive.
func (s *CSVStore) DeleteAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(nil); err != nil {
		return err
	}

	slog.Debug("deleted all expense records")
	return nil
}

// Total returns the sum of all record amounts, zero for an empty ledger.
func (s *CSVStore) Total(ctx context.Context) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total, nil
}

// Count returns the number of well-formed records in the ledger.
func (s *CSVStore) Count(ctx context.Context) (int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// load reads all well-formed rows. Callers must hold s.mu.
func (s *CSVStore) load() ([]model.ExpenseRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close ledger", "error", closeErr)
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	records := make([]model.ExpenseRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) != recordFields {
			slog.Warn("skipping malformed ledger row", "line", i+1, "fields", len(row))
			continue
		}
		amount, parseErr := money.Parse(row[3])
		if parseErr != nil {
			slog.Warn("skipping ledger row with unreadable amount", "line", i+1, "amount", row[3])
			continue
		}
		records = append(records, model.ExpenseRecord{
			Date:        row[0],
			Category:    row[1],
			Description: row[2],
			Amount:      amount,
		})
	}

	return records, nil
}

// save rewrites the whole ledger atomically: write to a temp file in
// the same directory, then rename over the original. Callers must hold
// s.mu.
func (s *CSVStore) save(records []model.ExpenseRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".expenses-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	for _, r := range records {
		if err := w.Write(recordToRow(r)); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to flush ledger: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger: %w", err)
	}

	return nil
}

func recordToRow(r model.ExpenseRecord) []string {
	return []string{r.Date, r.Category, r.Description, money.Format(r.Amount)}
}
