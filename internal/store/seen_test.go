package store

import (
	"os"
	"testing"

	"github.com/mmcdole/tube/internal/config"
	"github.com/mmcdole/tube/internal/log"
)

func TestSeenStoreRoundTrip(t *testing.T) {
	paths := config.Paths{DataDir: t.TempDir()}
	s, err := NewSeenStore(paths, log.NullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if s.Seen("abc") {
		t.Error("expected unknown id to be unseen")
	}

	if err := s.MarkSeen([]string{"abc", "def"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.Seen("abc") || !s.Seen("def") {
		t.Error("expected marked ids to read as seen")
	}
	if s.Seen("other") {
		t.Error("expected unmarked id to stay unseen")
	}
}

func TestSeenStorePersists(t *testing.T) {
	paths := config.Paths{DataDir: t.TempDir()}

	s, err := NewSeenStore(paths, log.NullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.MarkSeen([]string{"persisted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := NewSeenStore(paths, log.NullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reopened.Close()

	if !reopened.Seen("persisted") {
		t.Error("expected seen state to survive reopen")
	}
}

func TestSeenStoreMemoryOnly(t *testing.T) {
	s, err := NewSeenStore(config.Paths{}, log.NullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if err := s.MarkSeen([]string{"x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Seen("x") {
		t.Error("expected memory-only store to track ids")
	}
}

func TestSeenStoreMarkNothing(t *testing.T) {
	paths := config.Paths{DataDir: t.TempDir()}
	s, err := NewSeenStore(paths, log.NullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if err := s.MarkSeen(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The database file exists even with nothing marked
	if _, err := os.Stat(paths.SeenDBFile()); err != nil {
		t.Errorf("expected database file to exist: %v", err)
	}
}
