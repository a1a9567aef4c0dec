package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"unit_title", true},
		{"unit_description_id", true},
		{"The Glittering Host", false},
		{"Commanders of Ulthuan", false},
		{"nounderscore", false},
		{"under_score with space", false},
		{"", false},
		{"_", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LooksLikeKey(tt.in), "LooksLikeKey(%q)", tt.in)
	}
}

func TestHashStable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Hash([]byte("abc")), Hash([]byte("abc")))
	assert.NotEqual(t, Hash([]byte("abc")), Hash([]byte("abd")))
	assert.Len(t, Hash(nil), 64)
	assert.Equal(t, Hash([]byte("abc")), HashString("abc"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "lon...", Truncate("longer text", 3))
}

func TestSuspectedMojibake(t *testing.T) {
	t.Parallel()

	assert.True(t, SuspectedMojibake("CaractÃ¨re errant"))
	assert.True(t, SuspectedMojibake("itâ€™s broken"))
	assert.False(t, SuspectedMojibake("Caractère sain"))
	assert.False(t, SuspectedMojibake("plain ascii"))
}

func TestHasRawControl(t *testing.T) {
	t.Parallel()

	assert.True(t, HasRawControl("a\tb"))
	assert.True(t, HasRawControl("a\nb"))
	assert.True(t, HasRawControl("a\rb"))
	assert.False(t, HasRawControl("a b"))
}
