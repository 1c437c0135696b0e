package selector

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/mmcdole/tube/internal/domain"
	"github.com/mmcdole/tube/internal/log"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestFZFParsesSelectedIndex(t *testing.T) {
	// head -n2 | tail -n1 echoes the second input line back, which is how
	// an fzf-compatible child reports a pick of the second item.
	requireCommand(t, "sh")
	f := NewFZF("sh", []string{"-c", "head -n2 | tail -n1"}, log.NullLogger())

	// The shell ignores the fzf flags Select prepends; sh -c runs the
	// script regardless of trailing arguments.
	idx, err := f.Select([]string{"first", "second", "third"}, "Test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
}

func TestFZFCancelExitCode(t *testing.T) {
	requireCommand(t, "sh")
	// Exit 130 is what fzf reports for ctrl-c.
	f := NewFZF("sh", []string{"-c", "cat >/dev/null; exit 130"}, log.NullLogger())

	_, err := f.Select([]string{"only"}, "Test")
	if !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestFZFNoMatchExitCode(t *testing.T) {
	requireCommand(t, "sh")
	f := NewFZF("sh", []string{"-c", "cat >/dev/null; exit 1"}, log.NullLogger())

	_, err := f.Select([]string{"only"}, "Test")
	if !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestFZFGarbageOutput(t *testing.T) {
	requireCommand(t, "sh")
	f := NewFZF("sh", []string{"-c", "cat >/dev/null; echo not-a-number"}, log.NullLogger())

	if _, err := f.Select([]string{"only"}, "Test"); err == nil {
		t.Fatal("expected error for unparseable selector output")
	}
}

func TestFZFEmptyItems(t *testing.T) {
	f := NewFZF("fzf", nil, log.NullLogger())

	_, err := f.Select(nil, "Test")
	if !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("expected ErrCancelled for empty items, got %v", err)
	}
}
