package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeease/homeease/internal/cli"
	"github.com/homeease/homeease/internal/money"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Long: `Record a new expense dated today.

Category, description, and amount may be given as flags; anything
missing is collected interactively. Amounts accept thousands grouping
(5000, 5,000, and 5,000.00 all mean the same thing).`,
		RunE: runAdd,
	}

	cmd.Flags().StringP("category", "c", "", "expense category")
	cmd.Flags().StringP("description", "d", "", "what the money went to")
	cmd.Flags().StringP("amount", "a", "", "amount spent")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tracker := newTracker()
	prompter := cli.NewPrompter(cmd.InOrStdin(), out)

	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	amountText, _ := cmd.Flags().GetString("amount")

	var err error
	if category == "" {
		if category, err = promptCategory(ctx, tracker, prompter, out); err != nil {
			return err
		}
	}
	if description == "" {
		if description, err = promptDescription(prompter, out); err != nil {
			return err
		}
	}
	if amountText == "" {
		if amountText, err = promptAmount(prompter, out); err != nil {
			return err
		}
	}

	record, err := tracker.AddExpense(ctx, category, description, amountText)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Recorded %s — %s (%s) on %s",
		money.Format(record.Amount), record.Description, record.Category, record.Date)))
	return nil
}
