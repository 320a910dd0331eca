// Package clientdata provides persistent caching for external API client
// responses. Values are stored as msgpack blobs with expiration timestamps
// for cache-first behavior.
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Repository provides cache operations over cache.db.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the cache table when missing.
func (r *Repository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS report_cache (
			key TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create report_cache table: %w", err)
	}
	return nil
}

// Store saves data with expiration = now + ttl, upserting on key.
func (r *Repository) Store(key string, data interface{}, ttl time.Duration) error {
	blob, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()
	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO report_cache (key, data, expires_at) VALUES (?, ?, ?)`,
		key, blob, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store cache value: %w", err)
	}
	return nil
}

// GetIfFresh decodes the cached value into dest when present and not
// expired. Returns false on a miss; expired entries count as misses.
func (r *Repository) GetIfFresh(key string, dest interface{}) (bool, error) {
	var blob []byte
	err := r.db.QueryRow(
		`SELECT data FROM report_cache WHERE key = ? AND expires_at > ?`,
		key, time.Now().Unix(),
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache value: %w", err)
	}

	if err := msgpack.Unmarshal(blob, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Delete removes a single entry.
func (r *Repository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM report_cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache value: %w", err)
	}
	return nil
}

// DeleteExpired removes all expired entries and reports how many went.
func (r *Repository) DeleteExpired() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM report_cache WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted cache entries: %w", err)
	}
	return n, nil
}
