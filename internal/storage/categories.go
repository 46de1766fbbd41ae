package storage

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultCategories is the vocabulary seeded on first use.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Travel",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Medical",
	"Other",
}

// CategoryFile is the open-ended, append-only category vocabulary,
// persisted one name per line. Insertion order is preserved and the
// vocabulary only ever grows; there is no removal operation.
type CategoryFile struct {
	path string
	mu   sync.Mutex
}

// NewCategoryFile creates a registry backed by the given file.
func NewCategoryFile(path string) *CategoryFile {
	return &CategoryFile{path: path}
}

// Categories returns the current vocabulary in insertion order,
// seeding the file with the default set on first use.
func (c *CategoryFile) Categories(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.seed(); err != nil {
		return nil, err
	}
	return c.load()
}

// AddCategory appends a name to the vocabulary. The write is durable
// immediately. Names already present are not re-added, so the persisted
// vocabulary stays duplicate-free.
func (c *CategoryFile) AddCategory(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "category name"); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.seed(); err != nil {
		return err
	}

	existing, err := c.load()
	if err != nil {
		return err
	}
	for _, cat := range existing {
		if strings.EqualFold(cat, name) {
			slog.Debug("category already known", "name", name)
			return nil
		}
	}

	if err := c.appendLine(name); err != nil {
		return err
	}

	slog.Info("added new category", "name", name)
	return nil
}

// HasCategory reports whether a name is already in the vocabulary,
// compared case-insensitively.
func (c *CategoryFile) HasCategory(ctx context.Context, name string) (bool, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return false, err
	}
	for _, cat := range categories {
		if strings.EqualFold(cat, name) {
			return true, nil
		}
	}
	return false, nil
}

// seed writes the default vocabulary if nothing is persisted yet.
// Callers must hold c.mu.
func (c *CategoryFile) seed() error {
	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat category file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var b strings.Builder
	for _, cat := range DefaultCategories {
		b.WriteString(cat)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(c.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	slog.Debug("seeded default categories", "count", len(DefaultCategories))
	return nil
}

// load reads the vocabulary, dropping blank lines and duplicates that
// may exist in stores written by earlier tooling. Callers must hold c.mu.
func (c *CategoryFile) load() ([]string, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open category file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close category file", "error", closeErr)
		}
	}()

	var categories []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	return categories, nil
}

func (c *CategoryFile) appendLine(name string) error {
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open category file: %w", err)
	}
	if _, err := fmt.Fprintln(f, name); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append category: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close category file: %w", err)
	}
	return nil
}
