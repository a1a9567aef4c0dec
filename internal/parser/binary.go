package parser

import (
	"encoding/binary"
	"fmt"

	"modloc/internal/locfile"
	"modloc/internal/textenc"
	"modloc/internal/textutil"
)

const (
	// minBinarySize is the smallest byte count a binary LOC file can have.
	// Anything shorter is rejected as not-binary rather than parsed.
	minBinarySize = 10
	// locHeaderSize covers the 4-byte magic, 4-byte version, and 4-byte
	// count field. Only the magic carries meaning for parsing.
	locHeaderSize = 12
)

// ParseBinary decodes the proprietary binary LOC record stream. The layout
// is: optional FF FE BOM, optional 12-byte "LOC" header, then records of
// three length-prefixed UTF-16LE fields (key, text, tooltip). Lengths are
// counted in UTF-16 code units, not bytes.
//
// Truncated records are recorded as errors and end the parse cleanly; a
// truncated tail is a normal end-of-stream condition for this format.
func ParseBinary(data []byte) (*Result, error) {
	if len(data) < minBinarySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotBinary, len(data))
	}

	pos := 0
	if data[0] == 0xFF && data[1] == 0xFE {
		pos = 2
	}

	if len(data)-pos >= 3 && data[pos] == 'L' && data[pos+1] == 'O' && data[pos+2] == 'C' {
		if len(data)-pos < locHeaderSize {
			return nil, fmt.Errorf("%w: %d bytes after magic", ErrHeaderTruncated, len(data)-pos)
		}
		pos += locHeaderSize
	}

	result := &Result{
		File: &locfile.File{Encoding: "utf-16"},
	}

	recordNum := 0
	for len(data)-pos >= 4 {
		fields := make([]string, 0, 3)
		recordStart := pos
		truncated := false

		for f := 0; f < 3; f++ {
			pos = skipStrayNull(data, pos)

			if len(data)-pos < 2 {
				result.Errors = append(result.Errors, ParseError{
					Offset: pos,
					Record: recordNum,
					Msg:    fmt.Sprintf("truncated field %d: missing length prefix", f),
				})
				truncated = true
				break
			}
			units := int(binary.LittleEndian.Uint16(data[pos:]))
			pos += 2

			if units == 0 {
				fields = append(fields, "")
				continue
			}
			if len(data)-pos < 2*units {
				result.Errors = append(result.Errors, ParseError{
					Offset: recordStart,
					Record: recordNum,
					Msg:    fmt.Sprintf("truncated field %d: declared %d code units, %d bytes remain", f, units, len(data)-pos),
				})
				truncated = true
				break
			}
			s, err := textenc.DecodeUTF16(data[pos:pos+2*units], textenc.UTF16LE)
			if err != nil {
				result.Errors = append(result.Errors, ParseError{
					Offset: pos,
					Record: recordNum,
					Msg:    fmt.Sprintf("field %d: %v", f, err),
				})
				truncated = true
				break
			}
			fields = append(fields, s)
			pos += 2 * units
		}

		if truncated {
			// A cut-off tail is how these files commonly end; stop
			// emitting entries without failing the whole parse.
			break
		}

		rec := classifyRecord(fields[0], fields[1], fields[2])
		result.Records = append(result.Records, rec)

		key, value := rec.Interpret()
		result.File.Entries = append(result.File.Entries, locfile.Entry{
			Key:      key,
			Value:    value,
			RawValue: value,
		})
		recordNum++
	}

	return result, nil
}

// skipStrayNull advances past a single separator artifact: exactly one
// 0x00 byte, and only when the byte after it is non-zero. A null followed
// by another null is a legitimate little-endian length byte and must not
// be consumed. Reverse-engineered from observed files; do not generalize.
func skipStrayNull(data []byte, pos int) int {
	if pos < len(data) && data[pos] == 0x00 && pos+1 < len(data) && data[pos+1] != 0x00 {
		return pos + 1
	}
	return pos
}

// classifyRecord decides which of the two known record shapes the three
// decoded strings form. A string "looks like an identifier" when it
// contains an underscore and no space. The check order matters: title
// shape first, then description shape, then the key/text fallback.
func classifyRecord(key, text, tooltip string) RawRecord {
	rec := RawRecord{Key: key, Text: text, Tooltip: tooltip}

	keyID := textutil.LooksLikeKey(key)
	textID := textutil.LooksLikeKey(text)
	tooltipID := textutil.LooksLikeKey(tooltip)

	switch {
	case keyID && !textID:
		rec.Kind = KindTitle
	case !keyID && textID && !tooltipID:
		rec.Kind = KindDescription
	default:
		rec.Kind = KindAmbiguous
	}
	return rec
}

// Interpret maps the raw record to the model's key/value pair according to
// its classified kind.
func (r RawRecord) Interpret() (key, value string) {
	if r.Kind == KindDescription {
		return r.Text, r.Tooltip
	}
	return r.Key, r.Text
}
