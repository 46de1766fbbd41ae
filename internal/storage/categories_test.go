package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *CategoryFile {
	t.Helper()
	return NewCategoryFile(filepath.Join(t.TempDir(), "categories.txt"))
}

func TestCategoryFile_SeedsDefaults(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(t)

	categories, err := registry.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories, categories)

	// The seed is persisted, not just returned.
	raw, err := os.ReadFile(registry.path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(DefaultCategories, "\n")+"\n", string(raw))
}

func TestCategoryFile_AddAppends(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(t)

	require.NoError(t, registry.AddCategory(ctx, "Pets"))

	categories, err := registry.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(DefaultCategories)+1)
	assert.Equal(t, "Pets", categories[len(categories)-1])
}

func TestCategoryFile_AddRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(t)

	require.NoError(t, registry.AddCategory(ctx, "Pets"))
	require.NoError(t, registry.AddCategory(ctx, "Pets"))
	require.NoError(t, registry.AddCategory(ctx, "pets"))
	require.NoError(t, registry.AddCategory(ctx, "FOOD"))

	categories, err := registry.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(DefaultCategories)+1)
}

func TestCategoryFile_AddEmptyName(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(t)

	err := registry.AddCategory(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestCategoryFile_HasCategory(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(t)

	ok, err := registry.HasCategory(ctx, "food")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = registry.HasCategory(ctx, "Rent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryFile_LoadSkipsBlankAndDuplicateLines(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(t)

	raw := "Food\n\nFood\n  Transport  \nfood\n"
	require.NoError(t, os.WriteFile(registry.path, []byte(raw), 0o600))

	categories, err := registry.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Transport"}, categories)
}
