package changedetect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectorStalenessTransitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "!!!!!!!!!!_FR_units.tsv")
	require.NoError(t, os.WriteFile(path, []byte("unit_title\tvalue\n"), 0644))

	d := New(NewMemStore())

	// No recorded hash: stale by definition.
	stale, err := d.IsStale(ctx, path)
	require.NoError(t, err)
	assert.True(t, stale)

	require.NoError(t, d.MarkFresh(ctx, path))

	stale, err = d.IsStale(ctx, path)
	require.NoError(t, err)
	assert.False(t, stale)

	// Content change flips it back to stale.
	require.NoError(t, os.WriteFile(path, []byte("unit_title\tedited\n"), 0644))
	stale, err = d.IsStale(ctx, path)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestDetectorMissingFile(t *testing.T) {
	t.Parallel()

	d := New(NewMemStore())
	_, err := d.IsStale(context.Background(), filepath.Join(t.TempDir(), "missing.loc"))
	assert.Error(t, err)
}

func TestMemStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemStore()

	_, ok, err := s.Recorded(ctx, "p")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Record(ctx, "p", "h1"))
	h, ok, err := s.Recorded(ctx, "p")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "h1", h)

	// Re-recording replaces.
	require.NoError(t, s.Record(ctx, "p", "h2"))
	h, _, _ = s.Recorded(ctx, "p")
	assert.Equal(t, "h2", h)
}
