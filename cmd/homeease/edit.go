package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/homeease/homeease/internal/cli"
	"github.com/homeease/homeease/internal/common"
	"github.com/homeease/homeease/internal/money"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <number>",
		Short: "Edit the expense at the given number",
		Long: `Edit the category, description, and amount of one expense.

The number is the record's position in the current listing (see
'homeease list'). The record's date cannot be changed.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tracker := newTracker()
	prompter := cli.NewPrompter(cmd.InOrStdin(), out)

	ordinal, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid expense number %q", args[0])
	}

	records, err := tracker.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}
	if ordinal < 1 || ordinal > len(records) {
		return fmt.Errorf("%w: %d", common.ErrInvalidOrdinal, ordinal)
	}

	current := records[ordinal-1]
	fmt.Fprintf(out, "Editing #%d: %s | %s | %s | %s\n",
		ordinal, current.Date, current.Category, current.Description, money.Format(current.Amount))

	category, err := promptCategory(ctx, tracker, prompter, out)
	if err != nil {
		return err
	}
	description, err := promptDescription(prompter, out)
	if err != nil {
		return err
	}
	amountText, err := promptAmount(prompter, out)
	if err != nil {
		return err
	}

	if err := tracker.EditExpense(ctx, ordinal, category, description, amountText); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Expense #%d updated.", ordinal)))
	return nil
}
