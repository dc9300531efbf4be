package jobspec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/duskhq/queuectl/jobspec"
)

func TestValidateRequiresID(t *testing.T) {
	s := &jobspec.JobSpec{Command: "echo hi"}
	err := s.Validate()
	if !errors.Is(err, jobspec.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestValidateRequiresCommand(t *testing.T) {
	s := &jobspec.JobSpec{ID: "job-1"}
	err := s.Validate()
	if !errors.Is(err, jobspec.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestValidateRejectsNonPositiveTimeout(t *testing.T) {
	d := -time.Second
	s := &jobspec.JobSpec{ID: "job-1", Command: "echo hi", Timeout: &d}
	if err := s.Validate(); !errors.Is(err, jobspec.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestValidateAccepts(t *testing.T) {
	d := time.Second
	s := &jobspec.JobSpec{ID: "job-1", Command: "echo hi", Timeout: &d}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetSet(t *testing.T) {
	var s jobspec.JobSpec
	if _, ok := s.Get("FOO"); ok {
		t.Fatal("expected not ok on empty spec")
	}
	s.Set("FOO", "bar")
	v, ok := s.Get("FOO")
	if !ok || v != "bar" {
		t.Fatalf("got (%q, %v), want (\"bar\", true)", v, ok)
	}
}

func TestParseRunAt(t *testing.T) {
	ts, err := jobspec.ParseRunAt("2026-08-01T12:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("got %v, want %v", ts, want)
	}
}

func TestParseRunAtInvalid(t *testing.T) {
	if _, err := jobspec.ParseRunAt("not-a-time"); !errors.Is(err, jobspec.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}
