package engine

import (
	"errors"
	"fmt"

	"modloc/internal/locfile"
)

// ConflictPolicy decides what happens when the same key appears in more
// than one input file during a merge.
type ConflictPolicy string

const (
	// PolicyFirst keeps the value from the earliest file containing the key.
	PolicyFirst ConflictPolicy = "first"
	// PolicyLast keeps the value from the latest file containing the key.
	PolicyLast ConflictPolicy = "last"
	// PolicyError aborts the merge on the first collision.
	PolicyError ConflictPolicy = "error"
)

// ErrMergeConflict is returned under PolicyError when a key collides.
var ErrMergeConflict = errors.New("merge conflict")

// ParsePolicy validates a policy name from user input.
func ParsePolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case PolicyFirst, PolicyLast, PolicyError:
		return ConflictPolicy(s), nil
	}
	return "", fmt.Errorf("unknown conflict policy %q (want first, last, or error)", s)
}

// Merge folds the input files into one: comments concatenate in file
// order, entries fold by key under the given policy. Inputs are never
// mutated; the result is a fresh model.
func Merge(files []*locfile.File, policy ConflictPolicy) (*locfile.File, error) {
	out := &locfile.File{Encoding: "utf-8"}
	if len(files) > 0 {
		out.Encoding = files[0].Encoding
		out.LanguageCode = files[0].LanguageCode
	}

	index := make(map[string]int)
	for _, f := range files {
		out.Comments = append(out.Comments, f.Comments...)
		for _, e := range f.Entries {
			at, seen := index[e.Key]
			if !seen {
				index[e.Key] = len(out.Entries)
				out.Entries = append(out.Entries, e)
				continue
			}
			switch policy {
			case PolicyError:
				return nil, fmt.Errorf("%w: key %q appears in multiple files", ErrMergeConflict, e.Key)
			case PolicyLast:
				out.Entries[at] = e
			case PolicyFirst:
				// Keep the existing entry.
			}
		}
	}

	return out, nil
}

// Split partitions a file's entries into contiguous chunks of at most
// maxEntries, in order, with no entry duplicated or dropped. Comments are
// distributed proportionally over the chunks; the distribution is
// deterministic for a given input.
func Split(f *locfile.File, maxEntries int) []*locfile.File {
	if maxEntries < 1 {
		maxEntries = 1
	}
	if len(f.Entries) == 0 {
		return []*locfile.File{f.Clone()}
	}

	chunkCount := (len(f.Entries) + maxEntries - 1) / maxEntries
	chunks := make([]*locfile.File, 0, chunkCount)

	for i := 0; i < chunkCount; i++ {
		lo := i * maxEntries
		hi := min(lo+maxEntries, len(f.Entries))

		entries := make([]locfile.Entry, hi-lo)
		copy(entries, f.Entries[lo:hi])

		// Comment slice [i*C/n, (i+1)*C/n): contiguous, covers all
		// comments exactly once.
		cLo := i * len(f.Comments) / chunkCount
		cHi := (i + 1) * len(f.Comments) / chunkCount
		comments := make([]string, cHi-cLo)
		copy(comments, f.Comments[cLo:cHi])

		chunk := f.WithEntries(entries)
		chunk.Comments = comments
		chunks = append(chunks, chunk)
	}

	return chunks
}
