package locfile

import (
	"fmt"
	"unicode/utf8"

	"modloc/internal/textutil"
)

// ValidateOptions toggles the optional heuristic checks. The zero value
// runs only the hard invariants.
type ValidateOptions struct {
	// MinValueLen warns on values shorter than this many runes (0 = off).
	MinValueLen int
	// MaxValueLen warns on values longer than this many runes (0 = off).
	MaxValueLen int
	// CheckMojibake warns on values matching known garbled-UTF-8 patterns.
	CheckMojibake bool
	// CheckRawControl warns on values containing literal tab/newline/CR,
	// which suggests an escaping bug upstream.
	CheckRawControl bool
}

// Report is the outcome of validating one file. Validation collects every
// problem; it never stops at the first.
type Report struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Validate checks the hard model invariants and the enabled heuristics.
// It never mutates the file.
func Validate(f *File, opts ValidateOptions) Report {
	var r Report

	if f.Encoding != "utf-8" && f.Encoding != "utf-16" {
		r.Errors = append(r.Errors, fmt.Sprintf("unsupported encoding %q", f.Encoding))
	}

	seen := make(map[string]int, len(f.Entries))
	reported := make(map[string]bool)

	for i, e := range f.Entries {
		if e.Key == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("entry %d: empty key", i))
		} else if textutil.HasRawControl(e.Key) {
			r.Errors = append(r.Errors, fmt.Sprintf("entry %d: key %q contains a structural delimiter", i, textutil.Truncate(e.Key, 40)))
		}

		if _, dup := seen[e.Key]; dup && !reported[e.Key] {
			// Duplicates are reported once per key, however many times
			// the key repeats.
			r.Errors = append(r.Errors, fmt.Sprintf("duplicate key %q", e.Key))
			reported[e.Key] = true
		}
		seen[e.Key] = i

		n := utf8.RuneCountInString(e.Value)
		if opts.MinValueLen > 0 && n < opts.MinValueLen {
			r.Warnings = append(r.Warnings, fmt.Sprintf("key %q: value shorter than %d runes", e.Key, opts.MinValueLen))
		}
		if opts.MaxValueLen > 0 && n > opts.MaxValueLen {
			r.Warnings = append(r.Warnings, fmt.Sprintf("key %q: value longer than %d runes", e.Key, opts.MaxValueLen))
		}
		if opts.CheckMojibake && textutil.SuspectedMojibake(e.Value) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("key %q: suspected mojibake", e.Key))
		}
		if opts.CheckRawControl && textutil.HasRawControl(e.Value) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("key %q: value contains unescaped control characters", e.Key))
		}
	}

	r.IsValid = len(r.Errors) == 0
	return r
}
