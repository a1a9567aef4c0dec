// Package filewalker discovers localization files under a directory tree
// and tags each with the language code carried in its name, when present.
package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"modloc/internal/engine"
)

// SupportedExtensions lists the file types handled by the toolkit.
var SupportedExtensions = map[string]bool{
	".loc": true,
	".tsv": true,
	".txt": true,
}

// FileEntry is a discovered file ready for processing.
type FileEntry struct {
	Path string
	Ext  string
	// LanguageCode is the lowercase code from the file-name prefix, or
	// empty when the name carries none.
	LanguageCode string
}

// Walk discovers all supported files under root, in walk order. A root
// that is itself a file yields a single entry.
func Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return []FileEntry{newEntry(root)}, nil
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !SupportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		entries = append(entries, newEntry(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered localization files")
	return entries, nil
}

func newEntry(path string) FileEntry {
	e := FileEntry{
		Path: path,
		Ext:  strings.ToLower(filepath.Ext(path)),
	}
	if code, ok := engine.ExtractLanguageCode(filepath.Base(path)); ok {
		e.LanguageCode = code
	}
	return e
}
