// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/homeease/homeease/internal/model"
)

// RecordStore defines the contract for the persisted expense ledger.
// Records are addressed by 1-based ordinal position in the current
// listing; ordinals are snapshot-relative and shift on every mutation.
type RecordStore interface {
	Append(ctx context.Context, record model.ExpenseRecord) error
	List(ctx context.Context) ([]model.ExpenseRecord, error)
	Edit(ctx context.Context, ordinal int, category, description string, amount decimal.Decimal) error
	DeleteOne(ctx context.Context, ordinal int) error
	DeleteMany(ctx context.Context, ordinals []int) (int, error)
	DeleteAll(ctx context.Context) error
	Total(ctx context.Context) (decimal.Decimal, error)
}

// CategoryRegistry defines the contract for the append-only category
// vocabulary.
type CategoryRegistry interface {
	Categories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) error
	HasCategory(ctx context.Context, name string) (bool, error)
}

// BackupStore defines the contract for ledger archives.
type BackupStore interface {
	Create(ctx context.Context) (string, error)
	List(ctx context.Context) ([]model.BackupInfo, error)
	Restore(ctx context.Context, id string, mode model.RestoreMode) error
}

// ActivityLogger records one line per notable mutation. It is
// write-only: nothing in the application reads it back.
type ActivityLogger interface {
	Record(message string) error
}
