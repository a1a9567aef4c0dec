// Package locfile defines the in-memory localization file model shared by
// the binary and text parsers, plus its validation rules.
package locfile

import "time"

// Entry is one translatable key/value unit, regardless of source format.
type Entry struct {
	// Key is the engine's internal reference name. Must be non-empty and
	// free of tab, newline, and carriage-return bytes.
	Key string
	// Value is the localized text; may contain embedded newlines, tabs,
	// and backslashes.
	Value string
	// LineNumber is the 1-based source position, for diagnostics only.
	LineNumber int
	// RawValue is the pre-unescape text, retained for round-trip checks.
	RawValue string
	// IsModified is set by downstream editing, never by a parser.
	IsModified bool
}

// Meta carries advisory file statistics. Nothing depends on it for
// correctness.
type Meta struct {
	SizeBytes    int64
	LineCount    int
	CommentCount int
	BlankCount   int
	ContentHash  string
	ModTime      time.Time
}

// File is an ordered collection of entries plus file-level metadata.
// Entry order is significant for stable regeneration.
type File struct {
	FileName     string
	FilePath     string
	LanguageCode string
	// Encoding is "utf-8" or "utf-16".
	Encoding string
	Entries  []Entry
	Comments []string
	Meta     Meta
}

// Clone returns a deep copy. Transformations never mutate a File in place.
func (f *File) Clone() *File {
	out := *f
	out.Entries = make([]Entry, len(f.Entries))
	copy(out.Entries, f.Entries)
	out.Comments = make([]string, len(f.Comments))
	copy(out.Comments, f.Comments)
	return &out
}

// WithEntries returns a copy of f carrying the given entries.
func (f *File) WithEntries(entries []Entry) *File {
	out := f.Clone()
	out.Entries = entries
	return out
}

// KeyIndex returns a map from key to the index of its first occurrence.
func (f *File) KeyIndex() map[string]int {
	idx := make(map[string]int, len(f.Entries))
	for i, e := range f.Entries {
		if _, seen := idx[e.Key]; !seen {
			idx[e.Key] = i
		}
	}
	return idx
}
