package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeease/homeease/internal/cli"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <number>|<n,m,...>|all",
		Short: "Delete one expense, a batch, or everything",
		Long: `Delete expenses by their current listing numbers.

A batch like '2,5,7' deletes several at once; numbers that no longer
exist are skipped. 'all' empties the ledger — irreversible unless you
restore a backup. Every delete asks for confirmation.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tracker := newTracker()
	prompter := cli.NewPrompter(cmd.InOrStdin(), out)

	ordinals, all, err := parseOrdinals(args[0])
	if err != nil {
		return err
	}

	assumeYes, _ := cmd.Flags().GetBool("yes")
	if !assumeYes {
		question := fmt.Sprintf("Delete expense(s) %v?", ordinals)
		if all {
			question = "Delete ALL expenses?"
		}
		confirmed, confirmErr := prompter.Confirm(question)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			fmt.Fprintln(out, "Nothing deleted.")
			return nil
		}
	}

	switch {
	case all:
		if err := tracker.DeleteAllExpenses(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("All expenses deleted."))
	case len(ordinals) == 1:
		if err := tracker.DeleteExpense(ctx, ordinals[0]); err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("Expense deleted."))
	default:
		deleted, deleteErr := tracker.DeleteExpenses(ctx, ordinals)
		if deleteErr != nil {
			return deleteErr
		}
		if deleted < len(ordinals) {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Deleted %d of %d (some numbers were invalid).", deleted, len(ordinals))))
		} else {
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %d expenses.", deleted)))
		}
	}

	return nil
}
