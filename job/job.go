package job

import "time"

// Job is the unit of work managed by the store.
//
// Job values returned by store and admin operations are snapshots;
// mutating them does not change underlying storage state. Transitions
// happen only through store operations (Lease, UpdateOutcome, admin
// retry/purge).
type Job struct {
	ID      string
	Command string
	State   Status

	Priority int
	Attempts uint32

	// MaxRetries and BackoffBase are snapshotted from config at enqueue
	// time; later config changes do not affect rows that already exist.
	MaxRetries  uint32
	BackoffBase uint32

	TimeoutSeconds *int
	RunAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	LastError *string
	WorkerID  *string
	LeasedAt  *time.Time

	// Env holds environment variables injected into the spawned shell.
	Env map[string]string
}

// ExceedsRetries reports whether Attempts has exceeded MaxRetries, the
// condition under which the next failure sends the job to Dead instead of
// Failed.
func (j *Job) ExceedsRetries() bool {
	return j.Attempts > j.MaxRetries
}
