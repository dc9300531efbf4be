package store

import "errors"

var (
	// ErrInvalidSpec is returned by Insert when the job spec is missing a
	// required field or otherwise malformed.
	ErrInvalidSpec = errors.New("invalid job spec")

	// ErrDuplicate is returned by Insert when a job with the same id
	// already exists.
	ErrDuplicate = errors.New("duplicate job id")

	// ErrNotFound is returned when an operation targets an id that does
	// not exist.
	ErrNotFound = errors.New("job not found")

	// ErrStateMismatch is returned when an operation requires the row to
	// be in a specific pre-state and it is not. A second delivery of the
	// same outcome hitting this error is expected and should be treated
	// by the caller as a no-op, not a fatal condition.
	ErrStateMismatch = errors.New("job not in expected state")

	// ErrBusy is a transient error surfaced when the store's exclusive
	// write lock could not be acquired within the configured lock-wait
	// timeout. Callers may retry.
	ErrBusy = errors.New("store busy")
)
