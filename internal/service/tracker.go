package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/homeease/homeease/internal/common"
	"github.com/homeease/homeease/internal/model"
	"github.com/homeease/homeease/internal/money"
)

// letterPattern is the only structural constraint on category names:
// at least one ASCII letter. Digits, punctuation, and whitespace are
// otherwise permitted ("Apt-101" is a valid category).
var letterPattern = regexp.MustCompile(`[A-Za-z]`)

// ValidCategoryName reports whether a name satisfies the structural
// constraint on categories.
func ValidCategoryName(name string) bool {
	return letterPattern.MatchString(name)
}

// Config carries the tracker's validation and reporting settings.
type Config struct {
	// ReportingLocation is the timezone used to date new records.
	ReportingLocation *time.Location
	// MaxFieldLength caps category and description length.
	// Zero means unbounded.
	MaxFieldLength int
}

// Tracker coordinates the record store, category registry, backup
// manager, and activity log behind the operations the CLI layer calls.
// Every mutating operation emits one activity-log line; a failure to
// log is reported but never fails the mutation itself.
type Tracker struct {
	store      RecordStore
	categories CategoryRegistry
	backups    BackupStore
	activity   ActivityLogger
	cfg        Config
}

// NewTracker creates the service façade over the given collaborators.
func NewTracker(store RecordStore, categories CategoryRegistry, backups BackupStore, activity ActivityLogger, cfg Config) *Tracker {
	if cfg.ReportingLocation == nil {
		cfg.ReportingLocation = time.UTC
	}
	return &Tracker{
		store:      store,
		categories: categories,
		backups:    backups,
		activity:   activity,
		cfg:        cfg,
	}
}

// AddExpense validates the inputs and appends a new record dated "now"
// in the reporting timezone.
func (t *Tracker) AddExpense(ctx context.Context, category, description, amountText string) (model.ExpenseRecord, error) {
	category, description, amount, err := t.validateFields(category, description, amountText)
	if err != nil {
		return model.ExpenseRecord{}, err
	}

	record := model.NewExpenseRecord(t.cfg.ReportingLocation, category, description, amount)
	if err := t.store.Append(ctx, record); err != nil {
		return model.ExpenseRecord{}, common.NewUserError("could not save the expense", err)
	}

	t.logActivity("Expense added")
	return record, nil
}

// ListExpenses returns all records; the 1-based display ordinal is the
// slice position plus one, valid only until the next mutation.
func (t *Tracker) ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error) {
	return t.store.List(ctx)
}

// EditExpense rewrites the category, description, and amount of the
// record at the given ordinal. The record's date is immutable.
func (t *Tracker) EditExpense(ctx context.Context, ordinal int, category, description, amountText string) error {
	category, description, amount, err := t.validateFields(category, description, amountText)
	if err != nil {
		return err
	}

	if err := t.store.Edit(ctx, ordinal, category, description, amount); err != nil {
		return err
	}

	t.logActivity("Expense edited")
	return nil
}

// DeleteExpense removes the record at the given ordinal. The caller is
// expected to have confirmed the deletion with the user.
func (t *Tracker) DeleteExpense(ctx context.Context, ordinal int) error {
	if err := t.store.DeleteOne(ctx, ordinal); err != nil {
		return err
	}

	t.logActivity("Expense deleted")
	return nil
}

// DeleteExpenses removes the records at the given ordinals, ignoring
// invalid entries in the batch. It returns the number deleted.
func (t *Tracker) DeleteExpenses(ctx context.Context, ordinals []int) (int, error) {
	deleted, err := t.store.DeleteMany(ctx, ordinals)
	if err != nil {
		return 0, err
	}

	t.logActivity(fmt.Sprintf("Deleted %d expenses", deleted))
	return deleted, nil
}

// DeleteAllExpenses truncates the ledger. Irreversible except by
// restoring a backup.
func (t *Tracker) DeleteAllExpenses(ctx context.Context) error {
	if err := t.store.DeleteAll(ctx); err != nil {
		return err
	}

	t.logActivity("All expenses deleted")
	return nil
}

// ComputeTotal returns the sum of all record amounts.
func (t *Tracker) ComputeTotal(ctx context.Context) (decimal.Decimal, error) {
	return t.store.Total(ctx)
}

// CreateBackup snapshots the ledger into a new timestamped archive.
func (t *Tracker) CreateBackup(ctx context.Context) (string, error) {
	id, err := t.backups.Create(ctx)
	if err != nil {
		return "", err
	}

	t.logActivity("Backup created")
	return id, nil
}

// ListBackups returns descriptors for all archives in creation order.
func (t *Tracker) ListBackups(ctx context.Context) ([]model.BackupInfo, error) {
	return t.backups.List(ctx)
}

// RestoreBackup applies an archive to the live ledger.
func (t *Tracker) RestoreBackup(ctx context.Context, id string, mode model.RestoreMode) error {
	if err := t.backups.Restore(ctx, id, mode); err != nil {
		return err
	}

	t.logActivity(fmt.Sprintf("Backup restored (%s)", mode))
	return nil
}

// ListCategories returns the current vocabulary in insertion order.
func (t *Tracker) ListCategories(ctx context.Context) ([]string, error) {
	return t.categories.Categories(ctx)
}

// AddCategory validates a name and appends it to the vocabulary.
func (t *Tracker) AddCategory(ctx context.Context, name string) error {
	name, err := t.validateCategory(name)
	if err != nil {
		return err
	}

	known, err := t.categories.HasCategory(ctx, name)
	if err != nil {
		return err
	}

	if err := t.categories.AddCategory(ctx, name); err != nil {
		return common.NewUserError("could not save the category", err)
	}

	if !known {
		t.logActivity("Category added")
	}
	return nil
}

// KnowsCategory reports whether the vocabulary already contains a name.
func (t *Tracker) KnowsCategory(ctx context.Context, name string) (bool, error) {
	return t.categories.HasCategory(ctx, name)
}

func (t *Tracker) validateFields(category, description, amountText string) (string, string, decimal.Decimal, error) {
	category, err := t.validateCategory(category)
	if err != nil {
		return "", "", decimal.Zero, err
	}

	description, err = t.validateDescription(description)
	if err != nil {
		return "", "", decimal.Zero, err
	}

	amount, err := money.Parse(amountText)
	if err != nil {
		return "", "", decimal.Zero, err
	}

	return category, description, amount, nil
}

func (t *Tracker) validateCategory(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.ErrEmptyCategory
	}
	if t.cfg.MaxFieldLength > 0 && len(name) > t.cfg.MaxFieldLength {
		return "", common.ErrCategoryTooLong
	}
	if !letterPattern.MatchString(name) {
		return "", common.ErrNoLetterInCategory
	}
	return name, nil
}

func (t *Tracker) validateDescription(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", common.ErrEmptyDescription
	}
	if t.cfg.MaxFieldLength > 0 && len(text) > t.cfg.MaxFieldLength {
		return "", common.ErrDescriptionTooLong
	}
	return text, nil
}

func (t *Tracker) logActivity(message string) {
	if err := t.activity.Record(message); err != nil {
		slog.Warn("failed to record activity", "message", message, "error", err)
	}
}
