package store

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mmcdole/tube/internal/config"
	"github.com/mmcdole/tube/internal/domain"
)

// Subscriptions is the flat subscription store: one channel per line, name
// and handle separated by a tab. Every operation re-reads or rewrites the
// whole file; the list is sized for personal use, not fleet scale.
type Subscriptions struct {
	path   string
	logger *slog.Logger
}

// NewSubscriptions creates a subscription store.
func NewSubscriptions(paths config.Paths, logger *slog.Logger) *Subscriptions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscriptions{path: paths.SubscriptionsFile(), logger: logger}
}

// Load parses the backing store. A missing store is an empty list, and
// malformed lines are skipped, not errors.
func (s *Subscriptions) Load() ([]domain.Subscription, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "load", Path: s.path, Err: err}
	}

	var subs []domain.Subscription
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		name, handle, ok := strings.Cut(line, "\t")
		if !ok || name == "" || handle == "" {
			s.logger.Debug("skipping malformed subscription line", "line", line)
			continue
		}
		subs = append(subs, domain.Subscription{Name: name, Handle: handle})
	}
	return subs, nil
}

// Add upserts by handle and rewrites the store. A handle that already
// exists has its name replaced in place; the store never grows a duplicate.
func (s *Subscriptions) Add(sub domain.Subscription) error {
	subs, err := s.Load()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range subs {
		if existing.Handle == sub.Handle {
			subs[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		subs = append(subs, sub)
	}

	return s.save(subs)
}

// Remove drops the subscription with the given handle and rewrites the
// store. Removing an absent handle is not an error.
func (s *Subscriptions) Remove(handle string) error {
	subs, err := s.Load()
	if err != nil {
		return err
	}

	kept := make([]domain.Subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.Handle != handle {
			kept = append(kept, sub)
		}
	}

	return s.save(kept)
}

func (s *Subscriptions) save(subs []domain.Subscription) error {
	var b strings.Builder
	for _, sub := range subs {
		b.WriteString(sub.Name)
		b.WriteByte('\t')
		b.WriteString(sub.Handle)
		b.WriteByte('\n')
	}

	if err := writeFileAtomic(s.path, []byte(b.String()), 0644); err != nil {
		return &domain.StorageError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}
