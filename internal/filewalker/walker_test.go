package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkFiltersAndTags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "text")
	require.NoError(t, os.MkdirAll(sub, 0755))

	files := map[string]string{
		"units.loc":                "binary-ish",
		"!!!!!!!!!!_FR_units.tsv":  "unit_title\tvalue\n",
		"readme.md":                "ignored",
		"text/!!_DE_buildings.txt": "b_key\tvalue\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	entries, err := Walk(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byBase := make(map[string]FileEntry)
	for _, e := range entries {
		byBase[filepath.Base(e.Path)] = e
	}

	assert.Equal(t, "", byBase["units.loc"].LanguageCode)
	assert.Equal(t, "fr", byBase["!!!!!!!!!!_FR_units.tsv"].LanguageCode)
	assert.Equal(t, "de", byBase["!!_DE_buildings.txt"].LanguageCode)
	assert.NotContains(t, byBase, "readme.md")
}

func TestWalkSingleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "units.loc")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	entries, err := Walk(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".loc", entries[0].Ext)
}

func TestWalkMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Walk(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
