// Package parser decodes and encodes the two wire formats used by the game
// engine: the proprietary binary LOC record stream and the tab-separated
// text format.
package parser

import (
	"errors"
	"fmt"

	"modloc/internal/locfile"
)

// ErrNotBinary rejects inputs too small to be a valid binary LOC file.
var ErrNotBinary = errors.New("not a binary localization file")

// ErrHeaderTruncated signals a LOC header cut off mid-way, which unlike a
// truncated record tail is treated as corruption.
var ErrHeaderTruncated = errors.New("truncated LOC header")

// ParseError records a localized failure at a specific line or byte
// offset. These accumulate in a Result; they do not abort the parse.
type ParseError struct {
	// Line is the 1-based line number for text input (0 for binary).
	Line int
	// Offset is the byte offset for binary input (-1 for text).
	Offset int
	// Record is the entry-sequence number for binary input (-1 for text).
	Record int
	Msg    string
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("offset %d (record %d): %s", e.Offset, e.Record, e.Msg)
}

// Options controls text-format parsing strictness.
type Options struct {
	// Strict turns a data line with no tab into a ParseError instead of
	// silently skipping it.
	Strict bool
}

// Result is the outcome of parsing one file: the model plus every
// non-fatal problem encountered on the way.
type Result struct {
	File   *locfile.File
	Errors []ParseError
	// Records holds the raw binary records with their chosen
	// interpretation; nil for text input.
	Records []RawRecord
}

// RecordKind tags how the binary classifier interpreted a raw record.
type RecordKind int

const (
	// KindTitle: the key field is the identifier, the text field the value.
	KindTitle RecordKind = iota
	// KindDescription: the text field is the identifier, the tooltip the value.
	KindDescription
	// KindAmbiguous: neither shape matched; key/text used as a fallback.
	KindAmbiguous
)

func (k RecordKind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindDescription:
		return "description"
	default:
		return "ambiguous"
	}
}

// RawRecord keeps the three decoded field strings of one binary record
// together with the interpretation chosen for it, for diagnostics.
type RawRecord struct {
	Key     string
	Text    string
	Tooltip string
	Kind    RecordKind
}
