package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeease/homeease/internal/common"
	"github.com/homeease/homeease/internal/model"
	"github.com/homeease/homeease/internal/storage"
)

type trackerFixture struct {
	tracker      *Tracker
	activityPath string
}

func newTestTracker(t *testing.T, cfg Config) *trackerFixture {
	t.Helper()
	dir := t.TempDir()

	store := storage.NewCSVStore(filepath.Join(dir, "expenses.csv"))
	categories := storage.NewCategoryFile(filepath.Join(dir, "categories.txt"))
	backups := storage.NewBackupManager(store, filepath.Join(dir, "backups"))
	activityPath := filepath.Join(dir, "activity.log")
	activity := storage.NewActivityLog(activityPath, time.UTC)

	return &trackerFixture{
		tracker:      NewTracker(store, categories, backups, activity, cfg),
		activityPath: activityPath,
	}
}

func (f *trackerFixture) activityLines(t *testing.T) []string {
	t.Helper()
	raw, err := os.ReadFile(f.activityPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(raw)), "\n")
}

func TestTracker_AddExpense(t *testing.T) {
	ctx := context.Background()
	f := newTestTracker(t, Config{ReportingLocation: time.FixedZone("UTC+8", 8*60*60)})

	record, err := f.tracker.AddExpense(ctx, "  Food ", "Lunch", "1,500.25")
	require.NoError(t, err)
	assert.Equal(t, "Food", record.Category)
	assert.True(t, record.Amount.Equal(decimal.RequireFromString("1500.25")))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, record.Date)

	records, err := f.tracker.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	lines := f.activityLines(t)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Expense added")
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] - `, lines[0])
}

func TestTracker_AddExpenseValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		wantErr     error
		name        string
		category    string
		description string
		amount      string
		cfg         Config
	}{
		{
			name:        "empty category",
			category:    "   ",
			description: "Lunch",
			amount:      "100",
			wantErr:     common.ErrEmptyCategory,
		},
		{
			name:        "category without letters",
			category:    "123",
			description: "Lunch",
			amount:      "100",
			wantErr:     common.ErrNoLetterInCategory,
		},
		{
			name:        "category over configured cap",
			category:    strings.Repeat("x", 51),
			description: "Lunch",
			amount:      "100",
			cfg:         Config{MaxFieldLength: 50},
			wantErr:     common.ErrCategoryTooLong,
		},
		{
			name:        "empty description",
			category:    "Food",
			description: "",
			amount:      "100",
			wantErr:     common.ErrEmptyDescription,
		},
		{
			name:        "description over configured cap",
			category:    "Food",
			description: strings.Repeat("x", 51),
			amount:      "100",
			cfg:         Config{MaxFieldLength: 50},
			wantErr:     common.ErrDescriptionTooLong,
		},
		{
			name:        "bad amount",
			category:    "Food",
			description: "Lunch",
			amount:      "45,7",
			wantErr:     common.ErrCommaAsDecimal,
		},
		{
			name:        "zero amount",
			category:    "Food",
			description: "Lunch",
			amount:      "0",
			wantErr:     common.ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestTracker(t, tt.cfg)
			_, err := f.tracker.AddExpense(ctx, tt.category, tt.description, tt.amount)
			require.ErrorIs(t, err, tt.wantErr)

			// Nothing was stored and nothing was logged.
			records, listErr := f.tracker.ListExpenses(ctx)
			require.NoError(t, listErr)
			assert.Empty(t, records)
			assert.Empty(t, f.activityLines(t))
		})
	}
}

func TestTracker_LongFieldsAllowedByDefault(t *testing.T) {
	ctx := context.Background()
	f := newTestTracker(t, Config{})

	// No formal cap unless one is configured.
	_, err := f.tracker.AddExpense(ctx, strings.Repeat("c", 200), strings.Repeat("d", 500), "10")
	require.NoError(t, err)
}

func TestTracker_EditExpense(t *testing.T) {
	ctx := context.Background()
	f := newTestTracker(t, Config{})

	_, err := f.tracker.AddExpense(ctx, "Food", "Lunch", "150.00")
	require.NoError(t, err)

	require.NoError(t, f.tracker.EditExpense(ctx, 1, "Dining", "Lunch", "175.50"))

	records, err := f.tracker.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dining", records[0].Category)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("175.50")))

	err = f.tracker.EditExpense(ctx, 9, "Dining", "Lunch", "175.50")
	assert.ErrorIs(t, err, common.ErrInvalidOrdinal)

	lines := f.activityLines(t)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Expense edited")
}

func TestTracker_DeleteExpenses(t *testing.T) {
	ctx := context.Background()
	f := newTestTracker(t, Config{})

	for _, desc := range []string{"one", "two", "three", "four", "five"} {
		_, err := f.tracker.AddExpense(ctx, "Food", desc, "10")
		require.NoError(t, err)
	}

	deleted, err := f.tracker.DeleteExpenses(ctx, []int{2, 5, 99})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	_, err = f.tracker.DeleteExpenses(ctx, []int{42})
	assert.ErrorIs(t, err, common.ErrNoValidTargets)

	require.NoError(t, f.tracker.DeleteExpense(ctx, 1))
	require.NoError(t, f.tracker.DeleteAllExpenses(ctx))

	records, err := f.tracker.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	lines := f.activityLines(t)
	assert.Contains(t, lines[len(lines)-1], "All expenses deleted")
	assert.Contains(t, lines[len(lines)-2], "Expense deleted")
	assert.Contains(t, lines[len(lines)-3], "Deleted 2 expenses")
}

func TestTracker_ComputeTotal(t *testing.T) {
	ctx := context.Background()
	f := newTestTracker(t, Config{})

	total, err := f.tracker.ComputeTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	_, err = f.tracker.AddExpense(ctx, "Food", "Lunch", "100.00")
	require.NoError(t, err)
	_, err = f.tracker.AddExpense(ctx, "Travel", "Taxi", "250.50")
	require.NoError(t, err)

	total, err = f.tracker.ComputeTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("350.50")), "got %s", total)
}

func TestTracker_BackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newTestTracker(t, Config{})

	_, err := f.tracker.CreateBackup(ctx)
	assert.ErrorIs(t, err, common.ErrEmptyStore)

	_, err = f.tracker.AddExpense(ctx, "Food", "Lunch", "150.00")
	require.NoError(t, err)

	id, err := f.tracker.CreateBackup(ctx)
	require.NoError(t, err)

	backups, err := f.tracker.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, id, backups[0].ID)

	require.NoError(t, f.tracker.DeleteAllExpenses(ctx))
	require.NoError(t, f.tracker.RestoreBackup(ctx, id, model.RestoreOverwrite))

	records, err := f.tracker.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lunch", records[0].Description)

	err = f.tracker.RestoreBackup(ctx, "20990101_000000", model.RestoreAppend)
	assert.ErrorIs(t, err, common.ErrUnknownArchive)

	lines := f.activityLines(t)
	assert.Contains(t, lines[len(lines)-1], "Backup restored (overwrite)")
}

func TestTracker_Categories(t *testing.T) {
	ctx := context.Background()
	f := newTestTracker(t, Config{})

	categories, err := f.tracker.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultCategories, categories)

	require.NoError(t, f.tracker.AddCategory(ctx, "Pets"))

	known, err := f.tracker.KnowsCategory(ctx, "pets")
	require.NoError(t, err)
	assert.True(t, known)

	err = f.tracker.AddCategory(ctx, "123")
	assert.ErrorIs(t, err, common.ErrNoLetterInCategory)

	err = f.tracker.AddCategory(ctx, "")
	assert.ErrorIs(t, err, common.ErrEmptyCategory)
}

func TestValidCategoryName(t *testing.T) {
	assert.True(t, ValidCategoryName("Apt-101"))
	assert.True(t, ValidCategoryName("Food"))
	assert.False(t, ValidCategoryName("123"))
	assert.False(t, ValidCategoryName("!!!"))
}
