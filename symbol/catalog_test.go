package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownSymbol(t *testing.T) {
	def, ok := Get("fire_exit")
	require.True(t, ok)

	assert.Equal(t, "fire_exit", def.ID)
	assert.Equal(t, "EXIT", def.ShortLabel)
	assert.Equal(t, CategoryEscape, def.Category)
	assert.Greater(t, def.DefaultWidth, 0.0)
	assert.Greater(t, def.DefaultHeight, 0.0)
}

func TestGet_UnknownSymbol(t *testing.T) {
	def, ok := Get("teleporter")
	assert.False(t, ok)
	assert.Empty(t, def.ID)
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range All() {
		assert.False(t, seen[def.ID], "duplicate symbol ID %q", def.ID)
		seen[def.ID] = true
	}
}

func TestCatalog_AllEntriesValid(t *testing.T) {
	for _, def := range All() {
		assert.NotEmpty(t, def.ID)
		assert.NotEmpty(t, def.Label)
		assert.NotEmpty(t, def.ShortLabel)
		assert.NotEmpty(t, def.Standard)
		assert.True(t, def.Category.IsValid(), "symbol %q has invalid category %q", def.ID, def.Category)
	}
}

func TestListByCategory(t *testing.T) {
	detection := ListByCategory(CategoryDetection)
	require.NotEmpty(t, detection)
	for _, def := range detection {
		assert.Equal(t, CategoryDetection, def.Category)
	}

	// Every catalog entry is reachable through its category.
	total := 0
	for _, cat := range Categories() {
		total += len(ListByCategory(cat))
	}
	assert.Equal(t, len(All()), total)
}

func TestListByCategory_Unknown(t *testing.T) {
	assert.Empty(t, ListByCategory(Category("plumbing")))
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryEscape.IsValid())
	assert.False(t, Category("").IsValid())
	assert.False(t, Category("plumbing").IsValid())
}
