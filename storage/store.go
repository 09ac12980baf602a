// Package storage persists background-removal results across process
// restarts. Processed images are keyed by the sha256 of the source image, so
// re-uploading the same photo never pays for the same provider call twice.
package storage

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// RemovalCacheStore is a SQLite-backed removal.Cache.
type RemovalCacheStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewRemovalCacheStore opens (or creates) the cache database at dbPath.
func NewRemovalCacheStore(dbPath string) (*RemovalCacheStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &RemovalCacheStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *RemovalCacheStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS removal_cache (
		hash TEXT PRIMARY KEY,
		image BLOB NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create removal_cache table: %w", err)
	}

	return nil
}

// Get retrieves a cached result by content hash.
// Returns nil, nil if no entry exists.
func (s *RemovalCacheStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var image []byte
	err := s.db.QueryRow(
		"SELECT image FROM removal_cache WHERE hash = ?",
		key,
	).Scan(&image)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query removal cache: %w", err)
	}

	return image, nil
}

// Set stores or replaces a cached result. Entries are write-once per key in
// practice; REPLACE keeps re-processing idempotent.
func (s *RemovalCacheStore) Set(key string, image []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO removal_cache (hash, image, created_at) VALUES (?, ?, ?)",
		key, image, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save removal cache entry: %w", err)
	}

	return nil
}

// Delete removes a cached result.
func (s *RemovalCacheStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM removal_cache WHERE hash = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete removal cache entry: %w", err)
	}

	return nil
}

// PruneOlderThan deletes entries created before the cutoff and reports how
// many were removed.
func (s *RemovalCacheStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM removal_cache WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune removal cache: %w", err)
	}

	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *RemovalCacheStore) Close() error {
	return s.db.Close()
}
