// Command queuectl is the thin CLI front end over the job queue engine:
// it wires configuration, the store, the executor-backed worker loop and
// the supervisor into a set of cobra subcommands.
package main

import (
	"errors"
	"os"

	"github.com/duskhq/queuectl/job"
	"github.com/duskhq/queuectl/jobspec"
	"github.com/duskhq/queuectl/store"
	"github.com/duskhq/queuectl/supervisor"
)

// Exit codes per the admin operation surface.
const (
	exitUsage        = 1
	exitRuntime      = 2
	exitStateInvalid = 3
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidSpec), errors.Is(err, jobspec.ErrInvalidSpec), errors.Is(err, store.ErrDuplicate), errors.Is(err, job.ErrInvalidStatus):
		return exitUsage
	case errors.Is(err, store.ErrStateMismatch), errors.Is(err, store.ErrNotFound):
		return exitStateInvalid
	case errors.Is(err, supervisor.ErrAlreadyRunning):
		return exitStateInvalid
	case errors.Is(err, store.ErrBusy):
		return exitRuntime
	default:
		return exitRuntime
	}
}
