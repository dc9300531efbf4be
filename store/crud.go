package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/duskhq/queuectl/job"
	"github.com/duskhq/queuectl/jobspec"
)

// Insert validates spec and stores a new job row. MaxRetries (unless the
// spec overrides it) and BackoffBase snapshot the current config values at
// insert time, so later config changes never retroactively
// alter an already-enqueued job's retry policy. The initial state is
// Scheduled if RunAt is in the future, Pending otherwise.
func (s *Store) Insert(ctx context.Context, spec *jobspec.JobSpec) (*job.Job, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidSpec, err)
	}

	maxRetries, err := s.resolveMaxRetries(ctx, spec)
	if err != nil {
		return nil, err
	}
	backoffBase, err := s.resolveBackoffBase(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	state := job.Pending
	var runAt *time.Time
	if spec.RunAt != nil {
		t := spec.RunAt.UTC()
		runAt = &t
		if t.After(now) {
			state = job.Scheduled
		}
	}

	var timeoutSeconds *int
	if spec.Timeout != nil {
		// Round up to whole seconds so a positive sub-second timeout is
		// stored as 1 rather than as 0, which would mean no timeout.
		secs := int((*spec.Timeout + time.Second - 1) / time.Second)
		timeoutSeconds = &secs
	}

	m := &jobModel{
		ID:             spec.ID,
		Command:        spec.Command,
		State:          state,
		Priority:       spec.Priority,
		MaxRetries:     maxRetries,
		BackoffBase:    backoffBase,
		TimeoutSeconds: timeoutSeconds,
		RunAt:          runAt,
		CreatedAt:      now,
		UpdatedAt:      now,
		Env:            spec.Env,
	}

	_, err = s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return m.toJob(), nil
}

func (s *Store) resolveMaxRetries(ctx context.Context, spec *jobspec.JobSpec) (uint32, error) {
	if spec.MaxRetries != nil {
		return *spec.MaxRetries, nil
	}
	return s.configGetUint32(ctx, ConfigMaxRetries)
}

func (s *Store) resolveBackoffBase(ctx context.Context) (uint32, error) {
	return s.configGetUint32(ctx, ConfigBackoffBase)
}

// Get fetches a single job by id.
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	var m jobModel
	err := s.db.NewSelect().Model(&m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m.toJob(), nil
}

// ListFilter narrows List to jobs in a given state, most recently
// created first, bounded by Limit (0 means unbounded).
type ListFilter struct {
	State job.Status
	Limit int
}

// List returns jobs matching filter, newest first. filter.State ==
// job.Unknown means no state filter: every job is returned.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*job.Job, error) {
	var models []jobModel
	q := s.db.NewSelect().Model(&models).Order("created_at DESC", "id DESC")
	if filter.State != job.Unknown {
		q = q.Where("state = ?", filter.State)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	jobs := make([]*job.Job, len(models))
	for i := range models {
		jobs[i] = models[i].toJob()
	}
	return jobs, nil
}

// OutcomeUpdate describes the post-execution transition applied by
// UpdateOutcome: the state a job moves to out of Processing, and the
// schedule/error metadata that comes with it.
type OutcomeUpdate struct {
	NewState  job.Status
	RunAt     *time.Time
	LastError *string
}

// UpdateOutcome transitions a job out of expected state into the state
// and schedule described by update, clearing its worker assignment. If
// the row is not currently in expected state, it returns ErrStateMismatch
// (duplicate delivery of the same outcome) or ErrNotFound (no such job).
func (s *Store) UpdateOutcome(ctx context.Context, id string, expected job.Status, update OutcomeUpdate) (*job.Job, error) {
	now := time.Now().UTC()
	var models []jobModel
	err := s.db.NewUpdate().
		Model(&models).
		Set("state = ?", update.NewState).
		Set("run_at = ?", update.RunAt).
		Set("last_error = ?", update.LastError).
		Set("worker_id = NULL").
		Set("leased_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ? AND state = ?", id, expected).
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 1 {
		return models[0].toJob(), nil
	}

	// Zero rows affected: disambiguate not-found from state mismatch. Get
	// itself returns ErrNotFound if the row is gone; if it succeeds, the
	// row exists but wasn't in expected state.
	if _, getErr := s.Get(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrStateMismatch
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLITE_CONSTRAINT")
}
