package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeease/homeease/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category vocabulary",
		Long: `Manage the open-ended category vocabulary.

The vocabulary starts with a default set and only ever grows: names you
add stay available forever. Any text with at least one letter works as
a category, even when it is not in the vocabulary.`,
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all known categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := newTracker().ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCategories(categories))
			return nil
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category to the vocabulary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newTracker().AddCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Category %q saved.", args[0])))
			return nil
		},
	}
}
