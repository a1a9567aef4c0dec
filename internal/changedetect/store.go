package changedetect

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// MemStore keeps recorded hashes in memory only. Used in tests and when
// no database is configured.
type MemStore struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{hashes: make(map[string]string)}
}

func (s *MemStore) Recorded(_ context.Context, path string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hashes[path]
	return h, ok, nil
}

func (s *MemStore) Record(_ context.Context, path, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[path] = hash
	return nil
}

// PGStore persists recorded hashes in PostgreSQL with an in-memory
// write-through layer in front, so repeated staleness checks within one
// run avoid the round trip.
type PGStore struct {
	pool   *pgxpool.Pool
	mu     sync.RWMutex
	memory map[string]string
}

// NewPGStore creates a store backed by the given pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{
		pool:   pool,
		memory: make(map[string]string),
	}
}

// EnsureSchema creates the recorded-hash table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS recorded_hashes (
			file_path   TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure recorded_hashes schema: %w", err)
	}
	return nil
}

func (s *PGStore) Recorded(ctx context.Context, path string) (string, bool, error) {
	s.mu.RLock()
	if h, ok := s.memory[path]; ok {
		s.mu.RUnlock()
		return h, true, nil
	}
	s.mu.RUnlock()

	var hash string
	err := s.pool.QueryRow(ctx,
		`SELECT content_hash FROM recorded_hashes WHERE file_path = $1`, path).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query recorded hash: %w", err)
	}

	s.mu.Lock()
	s.memory[path] = hash
	s.mu.Unlock()

	return hash, true, nil
}

func (s *PGStore) Record(ctx context.Context, path, hash string) error {
	s.mu.Lock()
	s.memory[path] = hash
	s.mu.Unlock()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO recorded_hashes (file_path, content_hash, recorded_at)
		VALUES ($1, $2, now())
		ON CONFLICT (file_path)
		DO UPDATE SET content_hash = EXCLUDED.content_hash, recorded_at = now()`,
		path, hash)
	if err != nil {
		return fmt.Errorf("upsert recorded hash: %w", err)
	}
	return nil
}

// Preload loads every recorded hash into memory.
func (s *PGStore) Preload(ctx context.Context) error {
	rows, err := s.pool.Query(ctx, `SELECT file_path, content_hash FROM recorded_hashes`)
	if err != nil {
		return fmt.Errorf("preload recorded hashes: %w", err)
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return fmt.Errorf("scan recorded hash: %w", err)
		}
		s.memory[path] = hash
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate recorded hashes: %w", err)
	}

	log.Info().Int("count", count).Msg("Preloaded recorded hashes")
	return nil
}
