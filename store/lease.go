package store

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/duskhq/queuectl/internal/timerq"
	"github.com/duskhq/queuectl/job"
)

// leaseRetryInterval is how long Lease backs off between contention
// retries.
const leaseRetryInterval = 25 * time.Millisecond

// Lease atomically selects the single highest-priority eligible job —
// pending, or scheduled/failed with run_at due — marks it processing,
// stamps it with workerID and now, and increments its attempt counter.
// It returns (nil, nil) when no job is eligible. On sustained write
// contention it retries until lockTimeout elapses, then returns ErrBusy.
func (s *Store) Lease(ctx context.Context, workerID string, now time.Time) (*job.Job, error) {
	deadline := time.Now().Add(s.lockTimeout)
	for {
		j, err := s.tryLease(ctx, workerID, now)
		if err == nil {
			return j, nil
		}
		if !isBusy(err) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, ErrBusy
		}
		if !timerq.Sleep(ctx, leaseRetryInterval) {
			return nil, ctx.Err()
		}
	}
}

func (s *Store) tryLease(ctx context.Context, workerID string, now time.Time) (*job.Job, error) {
	t, err := s.BeginExclusive(ctx)
	if err != nil {
		return nil, err
	}

	sub := t.tx.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("state = ?", job.Pending).
				WhereOr("state = ? AND run_at <= ?", job.Scheduled, now).
				WhereOr("state = ? AND run_at <= ?", job.Failed, now)
		}).
		OrderExpr("priority DESC").
		OrderExpr("created_at ASC").
		OrderExpr("id ASC").
		Limit(1)

	var models []jobModel
	err = t.tx.NewUpdate().
		Model(&models).
		Set("state = ?", job.Processing).
		Set("worker_id = ?", workerID).
		Set("leased_at = ?", now).
		Set("attempts = attempts + 1").
		Set("updated_at = ?", now).
		Where("id IN (?)", sub).
		Returning("*").
		Scan(ctx)
	if err != nil {
		_ = t.Rollback()
		return nil, err
	}
	if err := t.Commit(); err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].toJob(), nil
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
