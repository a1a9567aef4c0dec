package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modloc/internal/locfile"
)

func TestEntryScanner(t *testing.T) {
	t.Parallel()

	input := "# banner\n" +
		"key_one\tfirst\n" +
		"\n" +
		"key_two\tsecond\\nline\n"

	sc := NewEntryScanner(strings.NewReader(input), Options{})

	var entries []locfile.Entry
	for sc.Scan() {
		require.NoError(t, sc.LineErr())
		entries = append(entries, sc.Entry())
	}
	require.NoError(t, sc.Err())

	require.Len(t, entries, 2)
	assert.Equal(t, "key_one", entries[0].Key)
	assert.Equal(t, "second\nline", entries[1].Value)
	assert.Equal(t, []string{"banner"}, sc.Comments())
}

func TestEntryScannerContinuesPastBadLine(t *testing.T) {
	t.Parallel()

	input := "key_one\tfirst\nbroken line\nkey_two\tsecond\n"

	sc := NewEntryScanner(strings.NewReader(input), Options{Strict: true})

	var keys []string
	var lineErrs []error
	for sc.Scan() {
		if err := sc.LineErr(); err != nil {
			lineErrs = append(lineErrs, err)
			continue
		}
		keys = append(keys, sc.Entry().Key)
	}
	require.NoError(t, sc.Err())

	assert.Equal(t, []string{"key_one", "key_two"}, keys)
	require.Len(t, lineErrs, 1)
	assert.Contains(t, lineErrs[0].Error(), "line 2")
}

func TestEntryScannerEmptyInput(t *testing.T) {
	t.Parallel()

	sc := NewEntryScanner(strings.NewReader(""), Options{})
	assert.False(t, sc.Scan())
	assert.NoError(t, sc.Err())
	assert.Empty(t, sc.Comments())
}
