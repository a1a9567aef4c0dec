package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// langPrefixPattern matches the engine's language-tagged file names:
// one or more exclamation marks, an underscore, exactly two uppercase
// letters, a trailing underscore.
var langPrefixPattern = regexp.MustCompile(`^!+_([A-Z]{2})_`)

// defaultPrefixWidth is the number of exclamation marks applied on
// generation. The run length also sets the file's load priority in the
// game engine, so it stays fixed rather than minimal.
const defaultPrefixWidth = 10

// ExtractLanguageCode pulls the lowercase two-letter language code out of
// a prefixed file name. The second return is false when the name carries
// no language prefix.
func ExtractLanguageCode(filename string) (string, bool) {
	m := langPrefixPattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// BuildPrefixedName applies the language prefix convention to a base file
// name, upper-casing the code.
func BuildPrefixedName(base, code string) string {
	return fmt.Sprintf("%s_%s_%s", strings.Repeat("!", defaultPrefixWidth), strings.ToUpper(code), base)
}

// StripLanguagePrefix returns the base name with any language prefix
// removed, for recovering the original file identity.
func StripLanguagePrefix(filename string) string {
	return langPrefixPattern.ReplaceAllString(filename, "")
}
