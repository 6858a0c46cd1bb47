package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist in the store. Absence is a valid empty result for
// lookups; only writes against a missing id surface it as a failure.
var ErrNotFound = errors.New("not found")

// ErrValidation is the sentinel wrapped by every validation failure.
// The wrapped message is human-readable and safe to show to the user as-is.
var ErrValidation = errors.New("validation error")

// StoreError wraps any failure of the underlying SQLite store (kind DB_ERROR).
// The original cause is preserved for diagnostics via Unwrap; callers that own
// UI state should log the cause and show a generic failure message.
type StoreError struct {
	// Op identifies the failing operation, e.g. "repo.TravelEventRepo.Create".
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: database error: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// DeleteBlockedError is returned by TravelEventService.Delete when the event
// still has linked charging sessions. The count lets the caller render a
// meaningful message ("remove 3 sessions first").
type DeleteBlockedError struct {
	SessionCount int
}

func (e *DeleteBlockedError) Error() string {
	return fmt.Sprintf("travel event has %d linked charging sessions", e.SessionCount)
}
