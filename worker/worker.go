// Package worker implements the per-process job loop: lease a job,
// execute it, apply the retry policy to the outcome, and commit the
// result, honoring cooperative cancellation between and during steps.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/duskhq/queuectl/executor"
	"github.com/duskhq/queuectl/internal/timerq"
	"github.com/duskhq/queuectl/job"
	"github.com/duskhq/queuectl/retry"
	"github.com/duskhq/queuectl/store"
)

// DefaultPollInterval is how long a worker sleeps between empty leases.
const DefaultPollInterval = 500 * time.Millisecond

// Config controls a Worker's runtime behavior.
type Config struct {
	// ID identifies this worker in the store's worker_id column. Must be
	// stable across restarts only if crash recovery needs to attribute a
	// dangling processing row to it; otherwise any unique string works.
	ID string

	// LogDir is where the executor writes <id>.out.log / <id>.err.log.
	LogDir string

	// PollInterval is how long to sleep after an empty lease. Defaults to
	// DefaultPollInterval if zero.
	PollInterval time.Duration
}

// Worker repeatedly leases, executes and settles one job at a time.
type Worker struct {
	store *store.Store
	cfg   Config
	log   *slog.Logger
}

// New constructs a Worker against store s.
func New(s *store.Store, cfg Config, log *slog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Worker{store: s, cfg: cfg, log: log.With("worker_id", cfg.ID)}
}

// Run blocks, processing jobs until ctx is cancelled. Cancellation is
// checked before each lease and honored by the poll-interval sleep. It
// also reaches an attempt in flight: the executor terminates the
// command's process tree and reports a Cancelled outcome, and the row is
// left in processing. An in-flight attempt is not run to completion.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		j, err := w.store.Lease(ctx, w.cfg.ID, time.Now().UTC())
		if err != nil {
			w.log.Error("lease failed", "err", err)
			if !timerq.Sleep(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}
		if j == nil {
			if !timerq.Sleep(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		w.attempt(ctx, j)
	}
}

func (w *Worker) attempt(ctx context.Context, j *job.Job) {
	timeout := time.Duration(0)
	if j.TimeoutSeconds != nil {
		timeout = time.Duration(*j.TimeoutSeconds) * time.Second
	}

	outcome := executor.Run(ctx, executor.Request{
		JobID:   j.ID,
		Command: j.Command,
		Timeout: timeout,
		Env:     j.Env,
		LogDir:  w.cfg.LogDir,
	})

	if outcome.Kind == executor.Cancelled {
		w.log.Warn("attempt cancelled, leaving job processing", "id", j.ID)
		return
	}

	update := w.settle(j, outcome)
	if _, err := w.store.UpdateOutcome(ctx, j.ID, job.Processing, update); err != nil {
		w.log.Error("update outcome failed", "id", j.ID, "err", err)
	}
}

func (w *Worker) settle(j *job.Job, outcome executor.Outcome) store.OutcomeUpdate {
	now := time.Now().UTC()
	if !outcome.Failed() {
		return store.OutcomeUpdate{NewState: job.Completed}
	}

	msg := outcome.Message()
	next := retry.NextState(j.Attempts, j.MaxRetries)
	update := store.OutcomeUpdate{NewState: next, LastError: &msg}
	if next == job.Failed {
		runAt := retry.NextRunAt(now, j.BackoffBase, j.Attempts)
		update.RunAt = &runAt
	}
	return update
}
