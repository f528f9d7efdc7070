package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFindCSV(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		_, err := FindCSV(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, ErrNoCatalog)
	})

	t.Run("no csv", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "notes.txt", "x")
		_, err := FindCSV(dir)
		assert.ErrorIs(t, err, ErrNoCatalog)
	})

	t.Run("explicit name wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.csv", "Handle\n")
		writeFile(t, dir, "shopify_products.csv", "Handle\n")
		got, err := FindCSV(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "shopify_products.csv"), got)
	})

	t.Run("ranking", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.csv", "Handle\n")
		writeFile(t, dir, "products_export.csv", "Handle\n")
		writeFile(t, dir, "Shopify-export-long-name.CSV", "Handle\n")
		got, err := FindCSV(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Shopify-export-long-name.CSV"), got)
	})
}

func TestLoadRowsFromDataDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shopify_products.csv", "Handle,Title\nh1,One\nh2,Two\n")

	rows, err := LoadRowsFromDataDir(dir)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Two", rows[1].Get(FieldTitle))
}

func TestFilter(t *testing.T) {
	entries := []ArtworkEntry{
		{ID: "a", Title: "Blue Wave", Ratio: 1.5, Price: 100},
		{ID: "b", Title: "Red Tower", Ratio: 0.5, Price: 300},
		{ID: "c", Title: "Blue Square", Ratio: 1.0, Price: 50},
	}

	ids := func(es []ArtworkEntry) []string {
		var out []string
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(Filter(entries, FilterOptions{})))
	assert.Equal(t, []string{"a", "c"}, ids(Filter(entries, FilterOptions{FreeWords: "blue"})))
	assert.Equal(t, []string{"b"}, ids(Filter(entries, FilterOptions{Orientation: "Portrait"})))
	assert.Equal(t, []string{"c"}, ids(Filter(entries, FilterOptions{Orientation: OrientationSquare})))
	assert.Equal(t, []string{"a", "b"}, ids(Filter(entries, FilterOptions{MinPrice: 60})))
	assert.Equal(t, []string{"a", "c"}, ids(Filter(entries, FilterOptions{MaxPrice: 100})))
	assert.Equal(t, []string{"a"}, ids(Filter(entries, FilterOptions{Limit: 1})))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, 1, ClampLimit(-4))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
	assert.Equal(t, 12, ClampLimit(12))
}

func TestPlaceholderIsValid(t *testing.T) {
	for _, e := range Placeholder() {
		assert.Positive(t, e.Ratio)
		assert.GreaterOrEqual(t, e.Price, 0.0)
		assert.NotEmpty(t, e.ImageURL)
	}
}
