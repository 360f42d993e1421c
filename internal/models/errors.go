package models

import "errors"

// Shared error kinds. Services wrap these with context so callers can
// classify failures with errors.Is across layers without depending on
// the originating package.
var (
	// ErrNotFound indicates a referenced project, scope, issue, or user
	// does not exist. Never retried automatically.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an operation lost to a competing state change,
	// such as starting a standup that is already active.
	ErrConflict = errors.New("conflict")

	// ErrNotActive indicates an end-style operation found nothing to end.
	// Safe to retry; the retry observes the same error.
	ErrNotActive = errors.New("not active")

	// ErrInvalidState indicates a record violates a model invariant, such as
	// a resolved issue missing its resolution timestamp.
	ErrInvalidState = errors.New("invalid state")

	// ErrStoreUnavailable indicates the backing store failed or timed out.
	// Callers may choose to retry; the engine never retries implicitly.
	ErrStoreUnavailable = errors.New("store unavailable")
)
