// Package jobspec defines the enqueue-time input record accepted by
// Store.Insert: the closed set of fields the queue engine understands
// about a job before it has ever run.
package jobspec

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSpec is returned by Validate when a required field is missing
// or malformed.
var ErrInvalidSpec = errors.New("invalid job spec")

// JobSpec is a key/value record describing a job to enqueue.
type JobSpec struct {
	ID      string
	Command string

	// Priority defaults to 0; higher values run earlier.
	Priority int

	// Timeout is the optional per-attempt wall-clock limit.
	Timeout *time.Duration

	// RunAt is the optional earliest eligible execution time. Nil means
	// immediately eligible.
	RunAt *time.Time

	// MaxRetries overrides the store's configured default for this job
	// only, if set.
	MaxRetries *uint32

	// Env holds environment variables injected into the spawned shell.
	// It is lazily initialized.
	Env map[string]string
}

// Get returns the environment variable value associated with key, or ""
// with ok=false if it is not set.
func (s *JobSpec) Get(key string) (string, bool) {
	v, ok := s.Env[key]
	return v, ok
}

// Set stores an environment variable on the spec, initializing Env if
// necessary.
func (s *JobSpec) Set(key, value string) {
	if s.Env == nil {
		s.Env = make(map[string]string)
	}
	s.Env[key] = value
}

// Validate checks the required-field and well-formedness rules Store.Insert
// enforces before accepting a job: non-empty id, non-empty command, a
// positive timeout if one is set.
func (s *JobSpec) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidSpec)
	}
	if strings.TrimSpace(s.Command) == "" {
		return fmt.Errorf("%w: command is required", ErrInvalidSpec)
	}
	if s.Timeout != nil && *s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidSpec)
	}
	return nil
}

// ParseRunAt parses an ISO-8601 timestamp as accepted by the run_at field
// of a job specification.
func ParseRunAt(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: run_at is not a valid ISO-8601 timestamp: %v", ErrInvalidSpec, err)
	}
	return t, nil
}
