// Package model defines the core domain types for the expense tracker.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used in the ledger file.
const DateLayout = "2006-01-02"

// ExpenseRecord is one row of the expense ledger.
//
// A record has no stable identifier. It is addressed by its 1-based
// position in the current listing, which shifts on every insert or
// delete; ordinals are snapshot-relative and must be recomputed after
// any mutation.
type ExpenseRecord struct {
	Date        string // YYYY-MM-DD in the reporting timezone, immutable once set
	Category    string
	Description string
	Amount      decimal.Decimal // always > 0
}

// NewExpenseRecord creates a record dated "now" in the given reporting zone.
func NewExpenseRecord(loc *time.Location, category, description string, amount decimal.Decimal) ExpenseRecord {
	return ExpenseRecord{
		Date:        time.Now().In(loc).Format(DateLayout),
		Category:    category,
		Description: description,
		Amount:      amount,
	}
}
