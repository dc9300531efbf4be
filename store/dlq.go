package store

import (
	"context"
	"time"

	"github.com/duskhq/queuectl/job"
)

// Revive moves a dead job back to pending, resetting attempts to 0 and
// clearing last_error. It returns ErrStateMismatch if the job is not
// currently dead.
func (s *Store) Revive(ctx context.Context, id string) (*job.Job, error) {
	now := time.Now().UTC()
	var models []jobModel
	err := s.db.NewUpdate().
		Model(&models).
		Set("state = ?", job.Pending).
		Set("attempts = 0").
		Set("last_error = NULL").
		Set("run_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ? AND state = ?", id, job.Dead).
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 1 {
		return models[0].toJob(), nil
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrStateMismatch
}

// PurgeDead permanently deletes every job currently in the dead state and
// returns how many rows were removed.
func (s *Store) PurgeDead(ctx context.Context) (int, error) {
	res, err := s.db.NewDelete().
		Model((*jobModel)(nil)).
		Where("state = ?", job.Dead).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return int(getAffected(res)), nil
}
