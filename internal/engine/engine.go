// Package engine is the facade over both localization wire formats. It
// sniffs binary vs. text per file, dispatches to the right parser, and
// exposes merge, split, naming, and hashing over the unified model.
package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"modloc/internal/locfile"
	"modloc/internal/parser"
	"modloc/internal/textenc"
	"modloc/internal/textutil"
)

// Format tags the parsing strategy chosen for a file.
type Format int

const (
	FormatText Format = iota
	FormatBinary
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "text"
}

// Sniff decides the parsing strategy: binary when the data begins with the
// UTF-16LE BOM or the "LOC" magic, text otherwise.
func Sniff(data []byte) Format {
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte("LOC")) {
		return FormatBinary
	}
	return FormatText
}

// Parse reads the file at path, picks the binary or text parser, and
// returns the parsed model with any accumulated per-unit errors.
func Parse(path string, opts parser.Options) (*parser.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", textenc.ErrUnreadable, path, err)
	}
	result, format, err := ParseBytes(data, opts)
	if err != nil {
		return nil, err
	}

	f := result.File
	f.FilePath = path
	f.FileName = filepath.Base(path)
	if code, ok := ExtractLanguageCode(f.FileName); ok {
		f.LanguageCode = code
	}
	fillMeta(f, data)

	log.Debug().
		Str("path", path).
		Str("format", format.String()).
		Int("entries", len(f.Entries)).
		Int("problems", len(result.Errors)).
		Msg("Parsed localization file")

	return result, nil
}

// ParseBytes parses in-memory data, returning the result and the format
// the sniffer chose.
func ParseBytes(data []byte, opts parser.Options) (*parser.Result, Format, error) {
	if Sniff(data) == FormatBinary {
		result, err := parser.ParseBinary(data)
		if err != nil {
			return nil, FormatBinary, err
		}
		return result, FormatBinary, nil
	}

	text, enc, err := textenc.DecodeBytes(data)
	if err != nil {
		return nil, FormatText, err
	}
	result := parser.ParseText(text, opts)
	result.File.Encoding = enc.Family()
	return result, FormatText, nil
}

// Generate serializes a file through the text path. A utf-16 model is
// re-encoded as UTF-16LE with a BOM; everything else is plain UTF-8.
// Binary re-encoding is deliberately not offered: downstream packaging
// consumes the text form.
func Generate(f *locfile.File) []byte {
	text := parser.GenerateText(f, true)
	if f.Encoding == "utf-16" {
		return textenc.EncodeUTF16LE(text, true)
	}
	return []byte(text)
}

// WriteFile serializes f and writes it to path.
func WriteFile(f *locfile.File, path string) error {
	data := Generate(f)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write localization file: %w", err)
	}
	log.Info().Str("path", path).Int("entries", len(f.Entries)).Msg("Wrote localization file")
	return nil
}

// Hash returns the content fingerprint used for change detection.
func Hash(data []byte) string {
	return textutil.Hash(data)
}

// fillMeta computes the advisory statistics for a freshly parsed file.
func fillMeta(f *locfile.File, data []byte) {
	f.Meta.SizeBytes = int64(len(data))
	f.Meta.ContentHash = textutil.Hash(data)
	f.Meta.CommentCount = len(f.Comments)
	f.Meta.LineCount = len(f.Entries) + len(f.Comments)
	if info, err := os.Stat(f.FilePath); err == nil {
		f.Meta.ModTime = info.ModTime()
	}
}
