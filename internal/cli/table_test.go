package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/homeease/homeease/internal/model"
)

func TestRenderExpenses(t *testing.T) {
	records := []model.ExpenseRecord{
		{Date: "2024-01-01", Category: "Food", Description: "Lunch", Amount: decimal.RequireFromString("150.00")},
		{Date: "2024-01-02", Category: "Travel", Description: "Flight", Amount: decimal.RequireFromString("1234.56")},
	}
	out := RenderExpenses(records, decimal.RequireFromString("1384.56"))

	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "1,234.56")
	assert.Contains(t, out, "1,384.56")
	// Ordinals are rendered for addressing records in edit/delete.
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "2")
}

func TestRenderBackups(t *testing.T) {
	backups := []model.BackupInfo{
		{ID: "20240315_093045", CreatedAt: time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC), Records: 3, FileSize: 120},
	}
	out := RenderBackups(backups)

	assert.Contains(t, out, "20240315_093045")
	assert.Contains(t, out, "2024-03-15 09:30:45")
	assert.Contains(t, out, "3")
}

func TestRenderCategories(t *testing.T) {
	out := RenderCategories([]string{"Food", "Transport"})

	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Transport")
}
