package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modloc/internal/locfile"
)

func TestParseTextBasic(t *testing.T) {
	t.Parallel()

	input := "# generated by the export pipeline\n" +
		"\n" +
		"unit_title\tThe Glittering Host\n" +
		"unit_flavour\tLine one\\nLine two\n"

	result := ParseText(input, Options{})
	f := result.File

	require.Len(t, f.Entries, 2)
	assert.Equal(t, []string{"generated by the export pipeline"}, f.Comments)
	assert.Empty(t, result.Errors)

	assert.Equal(t, "unit_title", f.Entries[0].Key)
	assert.Equal(t, "The Glittering Host", f.Entries[0].Value)
	assert.Equal(t, 3, f.Entries[0].LineNumber)

	assert.Equal(t, "Line one\nLine two", f.Entries[1].Value)
	assert.Equal(t, `Line one\nLine two`, f.Entries[1].RawValue)
}

func TestParseTextCRLF(t *testing.T) {
	t.Parallel()

	unix := ParseText("a\tone\nb\ttwo\n", Options{})
	dos := ParseText("a\tone\r\nb\ttwo\r\n", Options{})

	assert.Equal(t, unix.File.Entries, dos.File.Entries)
}

func TestParseTextEmptyInput(t *testing.T) {
	t.Parallel()

	result := ParseText("", Options{})
	assert.Empty(t, result.File.Entries)
	assert.Empty(t, result.File.Comments)
	assert.Empty(t, result.Errors)
}

func TestParseTextTablessLine(t *testing.T) {
	t.Parallel()

	input := "good_key\tvalue\nno tab here\n"

	lenient := ParseText(input, Options{})
	require.Len(t, lenient.File.Entries, 1)
	assert.Empty(t, lenient.Errors)

	strict := ParseText(input, Options{Strict: true})
	require.Len(t, strict.File.Entries, 1)
	require.Len(t, strict.Errors, 1)
	assert.Equal(t, 2, strict.Errors[0].Line)
}

func TestParseTextMultipleTabs(t *testing.T) {
	t.Parallel()

	// Everything after the first tab belongs to the value.
	result := ParseText("key_a\tcol1\tcol2\n", Options{})
	require.Len(t, result.File.Entries, 1)
	assert.Equal(t, "col1\tcol2", result.File.Entries[0].Value)
}

func TestEscapeSymmetry(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		"tab\there",
		"newline\nhere",
		"cr\rhere",
		`backslash \ alone`,
		`tricky \n literal`,  // backslash adjacent to n
		`tricky \\t doubled`, // doubled backslash adjacent to t
		"\\",
		"\\\\",
		"\t\n\r\\",
		"mixed \\n and real\nnewline",
	}

	for _, in := range inputs {
		assert.Equal(t, in, Unescape(Escape(in)), "round trip of %q", in)
	}
}

func TestUnescapeSinglePass(t *testing.T) {
	t.Parallel()

	// `\\n` is a literal backslash followed by the letter n, never a
	// newline: the backslash produced by `\\` must not be re-read.
	assert.Equal(t, `\n`, Unescape(`\\n`))
	assert.Equal(t, `\t`, Unescape(`\\t`))
	assert.Equal(t, "\\\n", Unescape(`\\\n`))

	// Unknown escapes and a trailing backslash pass through untouched.
	assert.Equal(t, `\x`, Unescape(`\x`))
	assert.Equal(t, `end\`, Unescape(`end\`))
}

func TestGenerateParseRoundTrip(t *testing.T) {
	t.Parallel()

	f := &locfile.File{
		Encoding: "utf-8",
		Comments: []string{"header comment", "second comment"},
		Entries: []locfile.Entry{
			{Key: "unit_title", Value: "The Glittering Host"},
			{Key: "unit_flavour", Value: "Line one\nLine two\twith tab"},
			{Key: "unit_notes", Value: `literal \n stays literal`},
			{Key: "unit_empty", Value: ""},
		},
	}

	text := GenerateText(f, true)
	reparsed := ParseText(text, Options{Strict: true})

	require.Empty(t, reparsed.Errors)
	assert.Equal(t, f.Comments, reparsed.File.Comments)
	require.Len(t, reparsed.File.Entries, len(f.Entries))
	for i, e := range f.Entries {
		assert.Equal(t, e.Key, reparsed.File.Entries[i].Key)
		assert.Equal(t, e.Value, reparsed.File.Entries[i].Value)
	}

	// Regenerating the reparsed model reproduces the text byte for byte.
	assert.Equal(t, text, GenerateText(reparsed.File, true))
}
