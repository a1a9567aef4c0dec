package parser

import (
	"fmt"
	"strings"

	"modloc/internal/locfile"
)

// ParseText decodes the tab-separated text format. The input must already
// be UTF-8 (the engine facade handles encoding detection and decoding).
// Lenient mode skips tabless data lines; strict mode records them as
// parse errors. Neither aborts the parse.
func ParseText(text string, opts Options) *Result {
	result := &Result{
		File: &locfile.File{Encoding: "utf-8"},
	}

	lines := splitLines(text)
	for i, line := range lines {
		lineNum := i + 1
		entry, comment, perr := parseLine(line, lineNum, opts)
		switch {
		case perr != nil:
			result.Errors = append(result.Errors, *perr)
		case comment != nil:
			result.File.Comments = append(result.File.Comments, *comment)
		case entry != nil:
			result.File.Entries = append(result.File.Entries, *entry)
		}
	}

	return result
}

// parseLine classifies one line as blank, comment, entry, or error.
// At most one of the three returns is non-nil.
func parseLine(line string, lineNum int, opts Options) (*locfile.Entry, *string, *ParseError) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil, nil
	}

	if strings.HasPrefix(trimmed, "#") {
		c := strings.TrimSpace(trimmed[1:])
		return nil, &c, nil
	}

	tab := strings.IndexByte(line, '\t')
	if tab < 0 {
		if opts.Strict {
			return nil, nil, &ParseError{
				Line:   lineNum,
				Offset: -1,
				Record: -1,
				Msg:    "data line contains no tab separator",
			}
		}
		return nil, nil, nil
	}

	raw := line[tab+1:]
	return &locfile.Entry{
		Key:        strings.TrimSpace(line[:tab]),
		Value:      Unescape(raw),
		RawValue:   raw,
		LineNumber: lineNum,
	}, nil, nil
}

// GenerateText serializes a file to the text format: comments first as
// "# text" lines, then one "key<TAB>escaped_value" line per entry.
func GenerateText(f *locfile.File, includeComments bool) string {
	var b strings.Builder

	if includeComments {
		for _, c := range f.Comments {
			fmt.Fprintf(&b, "# %s\n", c)
		}
	}
	for _, e := range f.Entries {
		b.WriteString(e.Key)
		b.WriteByte('\t')
		b.WriteString(Escape(e.Value))
		b.WriteByte('\n')
	}

	return b.String()
}

// Escape replaces backslash, newline, tab, and carriage return with their
// two-character escape sequences. Backslash goes first so the backslashes
// introduced by the later replacements survive untouched.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	return s
}

// Unescape is the single-pass inverse of Escape. A literal backslash
// produced from `\\` is emitted directly and never re-read as the start
// of another escape.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			// Unknown escape: keep both bytes as-is.
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
		}
		i++
	}
	return b.String()
}

// splitLines splits on "\n" with any trailing "\r" trimmed, so "\n" and
// "\r\n" inputs parse identically. A trailing newline does not produce a
// phantom empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
