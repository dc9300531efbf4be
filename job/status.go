package job

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned by ParseStatus for any string that isn't
// one of the canonical lowercase status names or the empty string.
var ErrInvalidStatus = errors.New("invalid job status")

// Status represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	scheduled  -> pending     (run_at <= now, via lease)
//	pending    -> processing  (lease)
//	processing -> completed   (success)
//	processing -> failed      (failure, attempts <= max_retries)
//	processing -> dead        (failure, attempts > max_retries)
//	failed     -> processing  (run_at <= now, via lease)
//	dead       -> pending     (admin retry)
//
// Unknown is reserved as the zero value and is used by store.ListFilter to
// mean "no status filter".
type Status uint8

const (
	// Unknown represents an unspecified status. It is the zero value.
	Unknown Status = iota

	// Scheduled indicates the job has a future run_at and is not yet
	// eligible for leasing.
	Scheduled

	// Pending indicates the job is eligible for leasing.
	Pending

	// Processing indicates a worker currently holds the job's lease.
	// worker_id and leased_at are set.
	Processing

	// Completed indicates the job's last attempt succeeded. Terminal.
	Completed

	// Failed indicates the job's last attempt failed but attempts have
	// not exceeded max_retries; run_at holds the next eligible time.
	Failed

	// Dead indicates the job permanently failed (attempts > max_retries).
	// Terminal until an admin retry resets it to Pending.
	Dead
)

func statusToString(s Status) string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func statusFromString(s string) (Status, error) {
	switch s {
	case "scheduled":
		return Scheduled, nil
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "dead":
		return Dead, nil
	case "unknown", "":
		return Unknown, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidStatus, s)
	}
}

// ParseStatus converts a string representation of a status into a Status
// value. Recognized values are the canonical lowercase names (including
// "unknown") and the empty string, which maps to Unknown; an error is
// returned for anything else.
func ParseStatus(s string) (Status, error) {
	return statusFromString(s)
}

// Terminal reports whether s is a terminal state (completed or dead).
func (s Status) Terminal() bool {
	return s == Completed || s == Dead
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(statusToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := statusFromString(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// String returns the canonical string representation of the status.
func (s Status) String() string {
	return statusToString(s)
}
