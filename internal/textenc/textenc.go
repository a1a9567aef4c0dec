// Package textenc detects the encoding of localization files from their
// byte-order mark and provides UTF-16 codecs, which the game engine's text
// files need and the standard library does not expose directly.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies a supported file encoding.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
)

// Family collapses the byte-order variants into the two encodings the
// localization model distinguishes: "utf-8" or "utf-16".
func (e Encoding) Family() string {
	if e == UTF16LE || e == UTF16BE {
		return "utf-16"
	}
	return "utf-8"
}

// ErrUnreadable wraps file access failures (missing file, permissions).
var ErrUnreadable = errors.New("unreadable source file")

// ErrEncoding signals a decode failure for the detected encoding.
var ErrEncoding = errors.New("encoding error")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect classifies data by its byte-order mark. Absence of any BOM
// defaults to UTF-8.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	default:
		return UTF8
	}
}

// DetectFile reads a bounded prefix of the file (up to 4 bytes) and
// classifies its encoding. An unreadable file yields ErrUnreadable.
func DetectFile(path string) (Encoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	prefix := make([]byte, 4)
	n, err := io.ReadFull(f, prefix)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return Detect(prefix[:n]), nil
}

// DecodeUTF16 decodes UTF-16 bytes in the given byte order to a UTF-8
// string. The input must not carry a BOM; callers holding a whole file
// should go through DecodeBytes, which strips it.
func DecodeUTF16(data []byte, e Encoding) (string, error) {
	endian := unicode.LittleEndian
	if e == UTF16BE {
		endian = unicode.BigEndian
	}
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decode utf-16: %v", ErrEncoding, err)
	}
	return string(out), nil
}

// EncodeUTF16LE encodes a UTF-8 string as UTF-16LE bytes, optionally
// prefixed with the FF FE byte-order mark.
func EncodeUTF16LE(s string, withBOM bool) []byte {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		// The UTF-16 encoder replaces unpaired surrogates rather than
		// failing; err stays nil for any valid Go string.
		out = []byte{}
	}
	if withBOM {
		return append(append(make([]byte, 0, len(out)+2), bomUTF16LE...), out...)
	}
	return out
}

// DecodeBytes detects the encoding of data and returns its UTF-8 text with
// any BOM stripped, plus the detected encoding.
func DecodeBytes(data []byte) (string, Encoding, error) {
	enc := Detect(data)
	switch enc {
	case UTF16LE, UTF16BE:
		s, err := DecodeUTF16(bytes.TrimPrefix(data, bomFor(enc)), enc)
		return s, enc, err
	default:
		return string(bytes.TrimPrefix(data, bomUTF8)), UTF8, nil
	}
}

func bomFor(e Encoding) []byte {
	switch e {
	case UTF16LE:
		return bomUTF16LE
	case UTF16BE:
		return bomUTF16BE
	default:
		return bomUTF8
	}
}
