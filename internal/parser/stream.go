package parser

import (
	"bufio"
	"io"

	"modloc/internal/locfile"
)

// EntryScanner streams entries from a text-format reader without loading
// the whole file, in the bufio.Scanner style:
//
//	sc := parser.NewEntryScanner(r, opts)
//	for sc.Scan() {
//		if err := sc.LineErr(); err != nil { ... continue ... }
//		entry := sc.Entry()
//	}
//	if err := sc.Err(); err != nil { ... }
//
// A malformed line surfaces through LineErr for that iteration only;
// scanning continues with the next line. Err reports I/O failure.
type EntryScanner struct {
	sc       *bufio.Scanner
	opts     Options
	lineNum  int
	entry    locfile.Entry
	lineErr  *ParseError
	comments []string
}

// NewEntryScanner wraps r for incremental entry reads. The reader must
// yield UTF-8 text.
func NewEntryScanner(r io.Reader, opts Options) *EntryScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), 4*1024*1024)
	return &EntryScanner{sc: sc, opts: opts}
}

// Scan advances to the next entry or per-line error. It returns false at
// end of input or on an I/O error.
func (s *EntryScanner) Scan() bool {
	for s.sc.Scan() {
		s.lineNum++
		s.lineErr = nil

		entry, comment, perr := parseLine(s.sc.Text(), s.lineNum, s.opts)
		switch {
		case perr != nil:
			s.lineErr = perr
			return true
		case comment != nil:
			s.comments = append(s.comments, *comment)
		case entry != nil:
			s.entry = *entry
			return true
		}
		// Blank or skipped line: keep scanning.
	}
	return false
}

// Entry returns the entry produced by the last successful Scan. Valid
// only when LineErr is nil.
func (s *EntryScanner) Entry() locfile.Entry { return s.entry }

// LineErr returns the malformed-line error for the current iteration, if
// any. The scanner remains usable.
func (s *EntryScanner) LineErr() error {
	if s.lineErr == nil {
		return nil
	}
	return *s.lineErr
}

// Comments returns the comment lines seen so far, in input order.
func (s *EntryScanner) Comments() []string { return s.comments }

// Err returns the first I/O error encountered, if any.
func (s *EntryScanner) Err() error { return s.sc.Err() }
