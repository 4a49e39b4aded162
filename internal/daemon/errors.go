package daemon

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers branch on.
// Daemon RPC failures are wrapped in *Error; everything else stays a
// plain wrapped error.
var (
	// ErrNotFound marks lookups with no matching daemon object, e.g.
	// resolving an empty checkpoint handle against an empty list.
	ErrNotFound = errors.New("not found")

	// ErrTimeout marks bounded waits that ran out of budget.
	ErrTimeout = errors.New("timeout")
)

// Error wraps a failure surfaced by the daemon client with the
// operation that failed. Checkpoint lifecycle errors are never retried,
// so the wrap carries context rather than retry hints.
type Error struct {
	Op  string
	Err error
}

// NewError wraps err with the failing operation's name.
func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("daemon %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
