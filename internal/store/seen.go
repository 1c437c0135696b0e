package store

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/tube/internal/config"
	bolt "go.etcd.io/bbolt"
)

// bucketSeen holds one key per video id ever surfaced in the feed
var bucketSeen = []byte("seen")

// SeenStore tracks which feed videos have been shown before, so newly
// uploaded ones can be badged. Backed by BoltDB with an in-memory
// promotion cache for repeat lookups within a run; an empty data dir
// selects memory-only mode (no persistence).
type SeenStore struct {
	db     *bolt.DB
	logger *slog.Logger

	mu    sync.RWMutex // Protects memory cache
	cache map[string]bool
}

// NewSeenStore opens or creates the seen database under the data dir.
func NewSeenStore(paths config.Paths, logger *slog.Logger) (*SeenStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if paths.DataDir == "" {
		return &SeenStore{logger: logger, cache: make(map[string]bool)}, nil
	}

	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(paths.SeenDBFile(), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open seen db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSeen)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SeenStore{db: db, logger: logger, cache: make(map[string]bool)}, nil
}

// Close releases the database.
func (s *SeenStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Seen reports whether the video id has been observed before.
func (s *SeenStore) Seen(id string) bool {
	s.mu.RLock()
	if s.cache[id] {
		s.mu.RUnlock()
		return true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var found bool
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeen)
		if b == nil {
			return nil
		}
		found = b.Get([]byte(id)) != nil
		return nil
	})

	if found {
		// Promote to memory cache
		s.mu.Lock()
		s.cache[id] = true
		s.mu.Unlock()
	}

	return found
}

// MarkSeen records the ids as observed. Ids already present keep their
// original first-observed time.
func (s *SeenStore) MarkSeen(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	for _, id := range ids {
		s.cache[id] = true
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	now := []byte(strconv.FormatInt(time.Now().Unix(), 10))
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeen)
		for _, id := range ids {
			if b.Get([]byte(id)) != nil {
				continue
			}
			if err := b.Put([]byte(id), now); err != nil {
				return err
			}
		}
		return nil
	})
}
