package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNetworkErrorMessage(t *testing.T) {
	withStatus := &NetworkError{URL: "https://example.com/results", Status: 429}
	if !strings.Contains(withStatus.Error(), "429") {
		t.Errorf("expected status in message, got %q", withStatus.Error())
	}

	cause := errors.New("connection refused")
	withErr := &NetworkError{URL: "https://example.com/results", Err: cause}
	if !strings.Contains(withErr.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", withErr.Error())
	}
	if !errors.Is(withErr, cause) {
		t.Error("expected NetworkError to unwrap to its cause")
	}
}

func TestParseErrorMessage(t *testing.T) {
	bare := &ParseError{Cause: "initial data marker not found"}
	if !strings.Contains(bare.Error(), "marker not found") {
		t.Errorf("unexpected message: %q", bare.Error())
	}

	cause := errors.New("unexpected end of JSON input")
	wrapped := &ParseError{Cause: "initial data is not valid JSON", Err: cause}
	if !strings.Contains(wrapped.Error(), "unexpected end of JSON input") {
		t.Errorf("expected cause in message, got %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected ParseError to unwrap to its cause")
	}
}

func TestStorageErrorMessage(t *testing.T) {
	cause := errors.New("permission denied")
	err := &StorageError{Op: "save", Path: "/tmp/history.json", Err: cause}

	msg := err.Error()
	if !strings.Contains(msg, "save") || !strings.Contains(msg, "/tmp/history.json") {
		t.Errorf("expected op and path in message, got %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("expected StorageError to unwrap to its cause")
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("search failed: %w", ErrNoResults)
	if !errors.Is(wrapped, ErrNoResults) {
		t.Error("expected ErrNoResults to survive wrapping")
	}

	wrapped = fmt.Errorf("pick failed: %w", ErrCancelled)
	if !errors.Is(wrapped, ErrCancelled) {
		t.Error("expected ErrCancelled to survive wrapping")
	}
}
