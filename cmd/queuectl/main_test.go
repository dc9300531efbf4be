package main

import (
	"testing"

	"github.com/duskhq/queuectl/job"
	"github.com/duskhq/queuectl/store"
	"github.com/duskhq/queuectl/supervisor"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid spec", store.ErrInvalidSpec, exitUsage},
		{"duplicate", store.ErrDuplicate, exitUsage},
		{"invalid status", job.ErrInvalidStatus, exitUsage},
		{"not found", store.ErrNotFound, exitStateInvalid},
		{"state mismatch", store.ErrStateMismatch, exitStateInvalid},
		{"already running", supervisor.ErrAlreadyRunning, exitStateInvalid},
		{"busy", store.ErrBusy, exitRuntime},
	}
	for _, c := range cases {
		if got := exitCodeFor(c.err); got != c.want {
			t.Errorf("%s: exitCodeFor() = %d, want %d", c.name, got, c.want)
		}
	}
}
