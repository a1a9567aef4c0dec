package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes a SHA-256 hex hash of a byte slice for change detection
// and content fingerprints.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashString computes a SHA-256 hex hash of a string.
func HashString(s string) string {
	return Hash([]byte(s))
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// LooksLikeKey reports whether a string looks like an internal reference
// name rather than natural-language text: it contains an underscore and
// no space. The binary record classifier depends on this exact test.
func LooksLikeKey(s string) bool {
	return strings.Contains(s, "_") && !strings.Contains(s, " ")
}

// mojibakePatterns are byte sequences that appear when UTF-8 text has been
// decoded as Latin-1 and re-encoded. The list is small and fixed; a match
// is a warning signal, not proof of corruption.
var mojibakePatterns = []string{
	"Ã©",  // é
	"Ã¨",  // è
	"Ã¤",  // ä
	"Ã¶",  // ö
	"Ã¼",  // ü
	"ÃŸ",  // ß
	"â€™", // right single quote
	"â€œ", // left double quote
	"Â ",  // non-breaking space artifact
}

// SuspectedMojibake reports whether s contains any of the known
// garbled-UTF-8-as-Latin-1 byte patterns.
func SuspectedMojibake(s string) bool {
	for _, p := range mojibakePatterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// HasRawControl reports whether s contains a literal tab, newline, or
// carriage return.
func HasRawControl(s string) bool {
	return strings.ContainsAny(s, "\t\n\r")
}
