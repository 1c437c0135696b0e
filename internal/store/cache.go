package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/tube/internal/config"
	"github.com/mmcdole/tube/internal/domain"
)

// DefaultCacheTTL is the entry lifetime used when the caller passes no TTL
const DefaultCacheTTL = 3600 * time.Second

// cacheEntry is the on-disk envelope for one cached value
type cacheEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TTL       int64           `json:"ttl"`
}

// Cache is a content-addressed TTL cache for scrape results. Each logical
// key hashes to one independent JSON file under the cache directory; there
// are no cross-key transactions. Entries expire lazily on read.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// NewCache creates a cache rooted at the configured cache directory.
func NewCache(paths config.Paths, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{dir: paths.CacheDir, logger: logger}
}

// Key returns the hex digest addressing a logical cache key.
func Key(logical string) string {
	sum := sha256.Sum256([]byte(logical))
	return hex.EncodeToString(sum[:])
}

// Get decodes the entry stored under the logical key into dest and reports
// whether a live entry was found. Missing, unreadable, and expired entries
// all read as a miss; an expired entry's file is removed on the way out.
func (c *Cache) Get(logical string, dest any) bool {
	path := c.entryPath(logical)

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("discarding unreadable cache entry", "path", path, "error", err)
		os.Remove(path)
		return false
	}

	if time.Now().Unix()-entry.Timestamp > entry.TTL {
		os.Remove(path)
		return false
	}

	return json.Unmarshal(entry.Data, dest) == nil
}

// Set stores value under the logical key with the given TTL, overwriting
// any existing entry. A non-positive ttl falls back to DefaultCacheTTL.
func (c *Cache) Set(logical string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	path := c.entryPath(logical)

	data, err := json.Marshal(value)
	if err != nil {
		return &domain.StorageError{Op: "save", Path: path, Err: err}
	}

	raw, err := json.Marshal(cacheEntry{
		Data:      data,
		Timestamp: time.Now().Unix(),
		TTL:       int64(ttl.Seconds()),
	})
	if err != nil {
		return &domain.StorageError{Op: "save", Path: path, Err: err}
	}

	if err := writeFileAtomic(path, raw, 0644); err != nil {
		return &domain.StorageError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Clear removes the entire cache directory.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil && !os.IsNotExist(err) {
		return &domain.StorageError{Op: "clear", Path: c.dir, Err: err}
	}
	return nil
}

func (c *Cache) entryPath(logical string) string {
	return filepath.Join(c.dir, Key(logical)+".json")
}
