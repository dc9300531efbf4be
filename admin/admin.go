// Package admin exposes the logical operator surface over a store: enqueue,
// list, dead-letter management, configuration, fleet status and captured
// log retrieval. It performs no process management itself beyond reading
// the liveness file written by package supervisor.
package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/duskhq/queuectl/job"
	"github.com/duskhq/queuectl/jobspec"
	"github.com/duskhq/queuectl/store"
	"github.com/duskhq/queuectl/supervisor"
)

// Admin wraps a Store with the operator-facing operations.
type Admin struct {
	store  *store.Store
	logDir string
}

// New constructs an Admin over s, reading/writing job logs under logDir.
func New(s *store.Store, logDir string) *Admin {
	return &Admin{store: s, logDir: logDir}
}

// Enqueue validates and inserts a new job.
func (a *Admin) Enqueue(ctx context.Context, spec *jobspec.JobSpec) (*job.Job, error) {
	return a.store.Insert(ctx, spec)
}

// List returns jobs in the given state, most recent first.
func (a *Admin) List(ctx context.Context, state job.Status, limit int) ([]*job.Job, error) {
	return a.store.List(ctx, store.ListFilter{State: state, Limit: limit})
}

// DLQList returns jobs currently dead.
func (a *Admin) DLQList(ctx context.Context, limit int) ([]*job.Job, error) {
	return a.store.List(ctx, store.ListFilter{State: job.Dead, Limit: limit})
}

// DLQRetry moves a dead job back to pending with attempts and last_error
// reset. It fails with store.ErrStateMismatch if the job is not dead.
func (a *Admin) DLQRetry(ctx context.Context, id string) (*job.Job, error) {
	return a.store.Revive(ctx, id)
}

// DLQPurge permanently removes every dead job and returns how many were
// removed.
func (a *Admin) DLQPurge(ctx context.Context) (int, error) {
	return a.store.PurgeDead(ctx)
}

// ConfigGet reads a config value.
func (a *Admin) ConfigGet(ctx context.Context, key string) (string, error) {
	return a.store.ConfigGet(ctx, key)
}

// ConfigSet writes a config value.
func (a *Admin) ConfigSet(ctx context.Context, key, value string) error {
	return a.store.ConfigSet(ctx, key, value)
}

// StateCounts maps each job state to the number of rows currently in it.
type StateCounts map[job.Status]int

// Status summarizes the queue: counts by state and the live worker PIDs
// read from the liveness file (empty if no fleet is running).
type Status struct {
	Counts      StateCounts
	WorkerPIDs  []int
	FleetActive bool
}

// Status reports per-state counts and the fleet's liveness.
func (a *Admin) Status(ctx context.Context, livenessPath string) (*Status, error) {
	counts := make(StateCounts)
	for _, st := range []job.Status{job.Scheduled, job.Pending, job.Processing, job.Completed, job.Failed, job.Dead} {
		jobs, err := a.store.List(ctx, store.ListFilter{State: st})
		if err != nil {
			return nil, err
		}
		counts[st] = len(jobs)
	}

	pids, err := supervisor.ReadLiveness(livenessPath)
	active := err == nil && len(pids) > 0 && supervisor.AlreadyRunning(livenessPath)
	if !active {
		pids = nil
	}
	return &Status{Counts: counts, WorkerPIDs: pids, FleetActive: active}, nil
}

// Logs returns the captured output (stdout, or stderr if stderr is true)
// for a job's most recent attempt.
func (a *Admin) Logs(id string, stderr bool) ([]byte, error) {
	suffix := "out.log"
	if stderr {
		suffix = "err.log"
	}
	path := filepath.Join(a.logDir, fmt.Sprintf("%s.%s", id, suffix))
	return os.ReadFile(path)
}
