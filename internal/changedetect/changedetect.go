// Package changedetect flags stale localization files by comparing their
// current content hash against a previously recorded one. It consumes the
// engine's hashing but none of its parsing.
package changedetect

import (
	"context"
	"fmt"
	"os"

	"modloc/internal/textutil"
)

// Store persists recorded content hashes keyed by file path.
type Store interface {
	// Recorded returns the hash last recorded for path, and whether one
	// exists.
	Recorded(ctx context.Context, path string) (string, bool, error)
	// Record saves the current hash for path, replacing any previous one.
	Record(ctx context.Context, path, hash string) error
}

// Detector compares files against a Store.
type Detector struct {
	store Store
}

// New creates a detector over the given store.
func New(store Store) *Detector {
	return &Detector{store: store}
}

// IsStale reports whether the file's content no longer matches its
// recorded hash. A file with no recorded hash is stale by definition.
func (d *Detector) IsStale(ctx context.Context, path string) (bool, error) {
	current, err := hashFile(path)
	if err != nil {
		return false, err
	}

	recorded, ok, err := d.store.Recorded(ctx, path)
	if err != nil {
		return false, fmt.Errorf("read recorded hash: %w", err)
	}
	if !ok {
		return true, nil
	}
	return recorded != current, nil
}

// MarkFresh records the file's current content hash.
func (d *Detector) MarkFresh(ctx context.Context, path string) error {
	current, err := hashFile(path)
	if err != nil {
		return err
	}
	if err := d.store.Record(ctx, path, current); err != nil {
		return fmt.Errorf("record hash: %w", err)
	}
	return nil
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file for hashing: %w", err)
	}
	return textutil.Hash(data), nil
}
