package fingerprint

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotFound is returned when the root path does not exist.
	ErrRootNotFound = errors.New("root path not found")
	// ErrRootNotDirectory is returned when the root path is not a directory.
	ErrRootNotDirectory = errors.New("root path is not a directory")
	// ErrInvalidWindow is returned for non-positive window sizes.
	ErrInvalidWindow = errors.New("window size must be positive")
	// ErrUnknownAlgorithm is returned for digest algorithms that are not registered.
	ErrUnknownAlgorithm = errors.New("unknown digest algorithm")
	// ErrShortRead marks a file that returned fewer bytes than its size promised.
	ErrShortRead = errors.New("short read")
)

// FailureKind classifies a per-entry failure.
type FailureKind string

const (
	// FailureWalk is a walker-level failure such as an unreadable directory.
	FailureWalk FailureKind = "walk"
	// FailureRead is an open, stat, or read failure on a regular file.
	FailureRead FailureKind = "read"
	// FailureFilter is an error evaluating the entry filter.
	FailureFilter FailureKind = "filter"
)

// EntryFailure records one entry that contributed nothing to the fingerprint.
type EntryFailure struct {
	Path string
	Kind FailureKind
	Err  error
}

func (f EntryFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Kind, f.Path, f.Err)
}

func (f EntryFailure) Unwrap() error {
	return f.Err
}
