package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeease/homeease/internal/cli"
	"github.com/homeease/homeease/internal/model"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the ledger and restore from snapshots",
		Long: `Create, list, and restore timestamped backup archives.

Archives are verbatim copies of the ledger, named by creation time.
They are never deleted automatically. Note that two backups within the
same second would collide — fine for one person working interactively.`,
	}

	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupListCmd())
	cmd.AddCommand(backupRestoreCmd())

	return cmd
}

func backupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Snapshot the current ledger into a new archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := newTracker().CreateBackup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Backup %s created.", id)))
			return nil
		},
	}
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all backup archives",
		RunE: func(cmd *cobra.Command, _ []string) error {
			backups, err := newTracker().ListBackups(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list backups: %w", err)
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBackups(backups))
			return nil
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore the ledger from an archive",
		Long: `Restore the ledger from the archive with the given ID.

By default the archive replaces the live ledger. With --append the
archive's rows are added after the existing ones instead, preserving
both sets in order.`,
		Args: cobra.ExactArgs(1),
		RunE: runBackupRestore,
	}

	cmd.Flags().Bool("append", false, "append archive rows instead of replacing the ledger")
	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	return cmd
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tracker := newTracker()

	mode := model.RestoreOverwrite
	if appendMode, _ := cmd.Flags().GetBool("append"); appendMode {
		mode = model.RestoreAppend
	}

	assumeYes, _ := cmd.Flags().GetBool("yes")
	if !assumeYes && mode == model.RestoreOverwrite {
		prompter := cli.NewPrompter(cmd.InOrStdin(), out)
		confirmed, err := prompter.Confirm("Replace the current ledger with this archive?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Restore canceled.")
			return nil
		}
	}

	if err := tracker.RestoreBackup(ctx, args[0], mode); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Backup %s restored (%s).", args[0], mode)))
	return nil
}
