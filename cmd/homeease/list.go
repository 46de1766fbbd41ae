package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeease/homeease/internal/cli"
	"github.com/homeease/homeease/internal/money"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses with their current numbers",
		Long: `List all expenses in ledger order.

The # column is each record's current position. It is the only way to
address a record for edit or delete, and it shifts whenever records are
added or removed — re-list before every mutation.`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tracker := newTracker()

	records, err := tracker.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	total, err := tracker.ComputeTotal(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute total: %w", err)
	}

	fmt.Fprintln(out, cli.FormatTitle("Expense Records"))
	fmt.Fprintln(out, cli.RenderExpenses(records, total))
	return nil
}

func totalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the sum of all recorded expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			total, err := newTracker().ComputeTotal(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to compute total: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), money.Format(total))
			return nil
		},
	}
}
