package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/homeease/homeease/internal/model"
	"github.com/homeease/homeease/internal/money"
)

// RenderExpenses renders the ledger as a table. The "#" column is the
// 1-based display ordinal, valid only until the next mutation.
func RenderExpenses(records []model.ExpenseRecord, total decimal.Decimal) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Date", "Category", "Description", "Amount"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Amount", Align: text.AlignRight},
	})

	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.Date, r.Category, r.Description, money.Format(r.Amount)})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", money.Format(total)})

	return t.Render()
}

// RenderBackups renders archive descriptors as a table.
func RenderBackups(backups []model.BackupInfo) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Created", "Records", "Size"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Records", Align: text.AlignRight},
		{Name: "Size", Align: text.AlignRight},
	})

	for _, b := range backups {
		t.AppendRow(table.Row{b.ID, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Records, b.FileSize})
	}

	return t.Render()
}

// RenderCategories renders the vocabulary as a numbered table.
func RenderCategories(categories []string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Category"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
	})

	for i, cat := range categories {
		t.AppendRow(table.Row{i + 1, cat})
	}

	return t.Render()
}
