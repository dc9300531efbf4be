package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/duskhq/queuectl/job"
	"github.com/duskhq/queuectl/jobspec"
	"github.com/duskhq/queuectl/store"
)

func TestInsertAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	j, err := s.Insert(ctx, &jobspec.JobSpec{ID: "a", Command: "echo hi"})
	if err != nil {
		t.Fatal(err)
	}
	if j.State != job.Pending {
		t.Fatalf("expected Pending, got %v", j.State)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "a" || got.Command != "echo hi" {
		t.Fatalf("unexpected job: %+v", got)
	}
}

func TestInsertDuplicateRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	spec := &jobspec.JobSpec{ID: "dup", Command: "echo hi"}
	if _, err := s.Insert(ctx, spec); err != nil {
		t.Fatal(err)
	}
	_, err := s.Insert(ctx, spec)
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestInsertInvalidSpecRejected(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Insert(context.Background(), &jobspec.JobSpec{Command: "echo hi"})
	if !errors.Is(err, store.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertFutureRunAtIsScheduled(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	future := timeIn(t, "1h")
	j, err := s.Insert(ctx, &jobspec.JobSpec{ID: "later", Command: "echo hi", RunAt: &future})
	if err != nil {
		t.Fatal(err)
	}
	if j.State != job.Scheduled {
		t.Fatalf("expected Scheduled, got %v", j.State)
	}
}

func TestUpdateOutcomeStateMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, &jobspec.JobSpec{ID: "x", Command: "echo hi"}); err != nil {
		t.Fatal(err)
	}
	// x is Pending, not Processing: transitioning it as if it were
	// Processing must fail rather than silently succeed.
	_, err := s.UpdateOutcome(ctx, "x", job.Processing, store.OutcomeUpdate{NewState: job.Completed})
	if !errors.Is(err, store.ErrStateMismatch) {
		t.Fatalf("expected ErrStateMismatch, got %v", err)
	}
}

func TestUpdateOutcomeNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateOutcome(context.Background(), "missing", job.Processing, store.OutcomeUpdate{NewState: job.Completed})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateOutcomeIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, &jobspec.JobSpec{ID: "y", Command: "echo hi"}); err != nil {
		t.Fatal(err)
	}
	leased, err := s.Lease(ctx, "w1", timeNow())
	if err != nil {
		t.Fatal(err)
	}
	if leased == nil {
		t.Fatal("expected a leased job")
	}

	done, err := s.UpdateOutcome(ctx, leased.ID, job.Processing, store.OutcomeUpdate{NewState: job.Completed})
	if err != nil {
		t.Fatal(err)
	}
	if done.State != job.Completed {
		t.Fatalf("expected Completed, got %v", done.State)
	}

	// Redelivering the same outcome must not silently re-apply it.
	_, err = s.UpdateOutcome(ctx, leased.ID, job.Processing, store.OutcomeUpdate{NewState: job.Completed})
	if !errors.Is(err, store.ErrStateMismatch) {
		t.Fatalf("expected ErrStateMismatch on redelivery, got %v", err)
	}
}

func TestListFiltersByState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2"} {
		if _, err := s.Insert(ctx, &jobspec.JobSpec{ID: id, Command: "echo hi"}); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := s.List(ctx, store.ListFilter{State: job.Pending})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 pending jobs, got %d", len(jobs))
	}

	jobs, err = s.List(ctx, store.ListFilter{State: job.Dead})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 dead jobs, got %d", len(jobs))
	}
}

func TestListUnknownStateMeansNoFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"u1", "u2", "u3"} {
		if _, err := s.Insert(ctx, &jobspec.JobSpec{ID: id, Command: "echo hi"}); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := s.List(ctx, store.ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected List with zero-value filter to return every job, got %d", len(jobs))
	}
}
