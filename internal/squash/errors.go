package squash

import (
	"errors"
	"fmt"
)

// ErrAuth marks a failure to establish an authenticated session with the
// directory. Nothing has been read or written when it is returned.
var ErrAuth = errors.New("authentication failed")

// DirectoryError wraps a failed directory call with the operation that
// failed, so callers can tell a read failure from an interrupted merge.
type DirectoryError struct {
	Op  string // "list", "create" or "delete"
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// PreconditionError marks malformed input from the directory listing,
// caught before any mutation is attempted.
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("malformed filter listing: %v", e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }
