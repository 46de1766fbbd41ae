package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/homeease/homeease/internal/cli"
	"github.com/homeease/homeease/internal/config"
	"github.com/homeease/homeease/internal/money"
	"github.com/homeease/homeease/internal/service"
	"github.com/homeease/homeease/internal/storage"
)

// newTracker wires the file-backed collaborators from configuration.
func newTracker() *service.Tracker {
	store := storage.NewCSVStore(config.DataFile())
	categories := storage.NewCategoryFile(config.CategoriesFile())
	backups := storage.NewBackupManager(store, config.BackupDir())
	activity := storage.NewActivityLog(config.ActivityLogFile(), config.ReportingLocation())

	return service.NewTracker(store, categories, backups, activity, service.Config{
		ReportingLocation: config.ReportingLocation(),
		MaxFieldLength:    config.MaxFieldLength(),
	})
}

// promptCategory shows the known vocabulary and accepts either a number
// from the list or free text. A new name may be saved to the vocabulary
// for reuse.
func promptCategory(ctx context.Context, tracker *service.Tracker, p *cli.Prompter, out io.Writer) (string, error) {
	categories, err := tracker.ListCategories(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load categories: %w", err)
	}

	fmt.Fprintln(out, "Categories:")
	for i, cat := range categories {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, cat)
	}

	for {
		input, err := p.ReadString("Category (number or new name)")
		if err != nil {
			return "", err
		}

		if num, parseErr := strconv.Atoi(input); parseErr == nil {
			if num >= 1 && num <= len(categories) {
				return categories[num-1], nil
			}
			fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("Please enter a number between 1 and %d", len(categories))))
			continue
		}

		if input == "" {
			fmt.Fprintln(out, cli.FormatError("Category cannot be empty."))
			continue
		}
		if !service.ValidCategoryName(input) {
			fmt.Fprintln(out, cli.FormatError("Category must contain at least one letter."))
			continue
		}

		known, err := tracker.KnowsCategory(ctx, input)
		if err != nil {
			return "", err
		}
		if !known {
			save, err := p.Confirm(fmt.Sprintf("Save %q to your categories for next time?", input))
			if err != nil {
				return "", err
			}
			if save {
				if err := tracker.AddCategory(ctx, input); err != nil {
					return "", err
				}
			}
		}

		return input, nil
	}
}

// promptDescription prompts until a non-empty description is entered.
func promptDescription(p *cli.Prompter, out io.Writer) (string, error) {
	for {
		input, err := p.ReadString("Description")
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		fmt.Fprintln(out, cli.FormatError("Description cannot be empty."))
	}
}

// promptAmount prompts until the input parses as a positive amount,
// echoing the parser's guidance on each failure.
func promptAmount(p *cli.Prompter, out io.Writer) (string, error) {
	for {
		input, err := p.ReadString("Amount (e.g. 5000 or 5,000.00)")
		if err != nil {
			return "", err
		}

		if _, parseErr := money.Parse(input); parseErr != nil {
			fmt.Fprintln(out, cli.FormatError(parseErr.Error()))
			fmt.Fprintln(out, cli.SubtleStyle.Render("  Valid: 5000 | 5,000 | 5,000.00   Invalid: 5,0,0 | 5,00.00"))
			continue
		}

		return input, nil
	}
}

// parseOrdinals parses delete targets: "all", a single number, or a
// comma-separated batch like "2,5,7".
func parseOrdinals(arg string) (ordinals []int, all bool, err error) {
	if strings.EqualFold(strings.TrimSpace(arg), "all") {
		return nil, true, nil
	}

	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			return nil, false, fmt.Errorf("invalid expense number %q", part)
		}
		ordinals = append(ordinals, n)
	}

	if len(ordinals) == 0 {
		return nil, false, fmt.Errorf("no expense numbers given")
	}
	return ordinals, false, nil
}
