package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNoResults indicates a search completed but matched nothing
	ErrNoResults = errors.New("no results found")

	// ErrCancelled indicates the user dismissed the picker without choosing
	ErrCancelled = errors.New("selection cancelled")
)

// NetworkError reports a failed page fetch: either the transport failed or
// the server answered with a non-2xx status.
type NetworkError struct {
	URL    string
	Status int // HTTP status, 0 when the transport itself failed
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a failure to locate or decode the embedded result data.
// Cause distinguishes the marker-not-found case from malformed JSON.
type ParseError struct {
	Cause string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse results: %s: %v", e.Cause, e.Err)
	}
	return "parse results: " + e.Cause
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError reports a failed read or write of a local store file.
type StorageError struct {
	Op   string // "load", "save", "clear"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
