package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/homeease/homeease/internal/cli"
	"github.com/homeease/homeease/internal/common"
	"github.com/homeease/homeease/internal/model"
	"github.com/homeease/homeease/internal/money"
	"github.com/homeease/homeease/internal/service"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive text menu",
		Long: `Drive the tracker through a numbered menu instead of subcommands.

Validation failures re-prompt rather than exiting, so you can keep
working through typos.`,
		RunE: runMenu,
	}
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tracker := newTracker()
	prompter := cli.NewPrompter(cmd.InOrStdin(), out)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		printMenu(out)

		choice, err := prompter.ReadString("Select option (1-8)")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "Goodbye.")
				return nil
			}
			return err
		}

		var opErr error
		switch choice {
		case "1":
			opErr = menuAdd(ctx, tracker, prompter, out)
		case "2":
			opErr = menuList(ctx, tracker, out)
		case "3":
			opErr = menuEdit(ctx, tracker, prompter, out)
		case "4":
			opErr = menuDelete(ctx, tracker, prompter, out)
		case "5":
			opErr = menuBackup(ctx, tracker, out)
		case "6":
			opErr = menuRestore(ctx, tracker, prompter, out)
		case "7":
			opErr = menuCategories(ctx, tracker, prompter, out)
		case "8":
			fmt.Fprintln(out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(out, cli.FormatError("Invalid choice."))
			continue
		}

		if opErr != nil {
			if errors.Is(opErr, io.EOF) {
				fmt.Fprintln(out, "Goodbye.")
				return nil
			}
			// Validation failures re-prompt; anything else aborts.
			if !common.IsRecoverable(opErr) {
				return opErr
			}
			fmt.Fprintln(out, cli.FormatError(opErr.Error()))
		}
	}
}

func printMenu(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.FormatTitle("HomeEase Expense Tracker"))
	fmt.Fprintln(out, "  1. Add expense")
	fmt.Fprintln(out, "  2. View expenses")
	fmt.Fprintln(out, "  3. Edit expense")
	fmt.Fprintln(out, "  4. Delete expenses")
	fmt.Fprintln(out, "  5. Create backup")
	fmt.Fprintln(out, "  6. Restore backup")
	fmt.Fprintln(out, "  7. Categories")
	fmt.Fprintln(out, "  8. Exit")
}

func menuAdd(ctx context.Context, tracker *service.Tracker, prompter *cli.Prompter, out io.Writer) error {
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

	record, err := tracker.AddExpense(ctx, category, description, amountText)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Recorded %s — %s", money.Format(record.Amount), record.Description)))
	return nil
}

func menuList(ctx context.Context, tracker *service.Tracker, out io.Writer) error {
	records, err := tracker.ListExpenses(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	total, err := tracker.ComputeTotal(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.RenderExpenses(records, total))
	return nil
}

func menuEdit(ctx context.Context, tracker *service.Tracker, prompter *cli.Prompter, out io.Writer) error {
	if err := menuList(ctx, tracker, out); err != nil {
		return err
	}

	input, err := prompter.ReadString("Expense number to edit")
	if err != nil {
		return err
	}
	ordinal, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidOrdinal, input)
	}

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

	fmt.Fprintln(out, cli.FormatSuccess("Expense updated."))
	return nil
}

func menuDelete(ctx context.Context, tracker *service.Tracker, prompter *cli.Prompter, out io.Writer) error {
	if err := menuList(ctx, tracker, out); err != nil {
		return err
	}

	input, err := prompter.ReadString("Number(s) to delete (e.g. 3 or 2,5) or 'all'")
	if err != nil {
		return err
	}
	ordinals, all, err := parseOrdinals(input)
	if err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidOrdinal, input)
	}

	question := fmt.Sprintf("Delete expense(s) %v?", ordinals)
	if all {
		question = "Delete ALL expenses?"
	}
	confirmed, err := prompter.Confirm(question)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(out, "Nothing deleted.")
		return nil
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
		deleted, err := tracker.DeleteExpenses(ctx, ordinals)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %d expenses.", deleted)))
	}
	return nil
}

func menuBackup(ctx context.Context, tracker *service.Tracker, out io.Writer) error {
	id, err := tracker.CreateBackup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Backup %s created.", id)))
	return nil
}

func menuRestore(ctx context.Context, tracker *service.Tracker, prompter *cli.Prompter, out io.Writer) error {
	backups, err := tracker.ListBackups(ctx)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups yet.")
		return nil
	}

	fmt.Fprintln(out, cli.RenderBackups(backups))

	id, err := prompter.ReadString("Archive ID to restore")
	if err != nil {
		return err
	}

	choice, err := prompter.ReadChoice("Overwrite current records or append to them? (o/a)", []string{"o", "a"})
	if err != nil {
		return err
	}
	mode := model.RestoreOverwrite
	if choice == "a" {
		mode = model.RestoreAppend
	}

	if mode == model.RestoreOverwrite {
		confirmed, confirmErr := prompter.Confirm("Replace the current ledger with this archive?")
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			fmt.Fprintln(out, "Restore canceled.")
			return nil
		}
	}

	if err := tracker.RestoreBackup(ctx, id, mode); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Backup %s restored (%s).", id, mode)))
	return nil
}

func menuCategories(ctx context.Context, tracker *service.Tracker, prompter *cli.Prompter, out io.Writer) error {
	categories, err := tracker.ListCategories(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.RenderCategories(categories))

	addNew, err := prompter.Confirm("Add a new category?")
	if err != nil {
		return err
	}
	if !addNew {
		return nil
	}

	name, err := prompter.ReadString("New category name")
	if err != nil {
		return err
	}
	if err := tracker.AddCategory(ctx, name); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Category %q saved.", name)))
	return nil
}
