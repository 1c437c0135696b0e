package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/mmcdole/tube/internal/config"
	"github.com/mmcdole/tube/internal/domain"
)

// DefaultMaxHistory bounds the history when the configured maximum is invalid
const DefaultMaxHistory = 100

// History is the bounded, deduplicated, most-recent-first watch log.
// Entries live in memory after Load; every Add rewrites the backing file
// synchronously, so a successful Add is durable.
type History struct {
	path    string
	max     int
	logger  *slog.Logger
	entries []domain.HistoryEntry
}

// NewHistory creates a history store bounded to max entries.
func NewHistory(paths config.Paths, max int, logger *slog.Logger) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &History{path: paths.HistoryFile(), max: max, logger: logger}
}

// Load populates memory from the backing store. A missing store is an
// empty history, and a corrupt store degrades to an empty history rather
// than aborting startup.
func (h *History) Load() error {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			h.entries = nil
			return nil
		}
		return &domain.StorageError{Op: "load", Path: h.path, Err: err}
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		h.logger.Warn("history store corrupt, starting empty", "path", h.path, "error", err)
		h.entries = nil
		return nil
	}

	h.entries = entries
	return nil
}

// Add records a watch: any existing entry with the same id is removed, the
// new entry goes to the front with the current timestamp, the list is
// truncated to the maximum, and the whole list is persisted before
// returning. Memory is only updated once the write succeeds.
func (h *History) Add(video domain.Video) error {
	entries := make([]domain.HistoryEntry, 0, len(h.entries)+1)
	entries = append(entries, domain.HistoryEntry{
		Video:     video,
		Timestamp: time.Now().Unix(),
	})
	for _, e := range h.entries {
		if e.ID != video.ID {
			entries = append(entries, e)
		}
	}
	if len(entries) > h.max {
		entries = entries[:h.max]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return &domain.StorageError{Op: "save", Path: h.path, Err: err}
	}
	if err := writeFileAtomic(h.path, data, 0644); err != nil {
		return &domain.StorageError{Op: "save", Path: h.path, Err: err}
	}

	h.entries = entries
	return nil
}

// GetAll returns the in-memory entries, most recent first, without
// touching storage.
func (h *History) GetAll() []domain.HistoryEntry {
	return h.entries
}

// Clear empties memory and deletes the backing store.
func (h *History) Clear() error {
	h.entries = nil
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return &domain.StorageError{Op: "clear", Path: h.path, Err: err}
	}
	return nil
}
