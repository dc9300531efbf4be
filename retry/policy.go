// Package retry implements the job queue's fixed exponential backoff
// policy: given a failed attempt, how many attempts remain and how long
// until the job is eligible again.
//
// This is a deliberate simplification of a generalized backoffCounter
// (initial interval, multiplier, max interval, randomization factor): here
// base is snapshotted onto the job row at enqueue time and attempts is
// counted on the same row, so the policy collapses to the single
// unjittered, uncapped expression base^attempts seconds.
package retry

import (
	"math"
	"time"

	"github.com/duskhq/queuectl/job"
)

// NextState returns the state a job moves to after a failed attempt,
// given its (already incremented) attempt count and its snapshotted
// max_retries.
func NextState(attempts, maxRetries uint32) job.Status {
	if attempts > maxRetries {
		return job.Dead
	}
	return job.Failed
}

// Backoff returns the delay before a failed job becomes eligible again,
// base^attempts seconds. attempts is always at least 1 by the time a
// failure is recorded, since Lease increments it before the attempt runs.
func Backoff(base, attempts uint32) time.Duration {
	seconds := math.Pow(float64(base), float64(attempts))
	return time.Duration(seconds) * time.Second
}

// NextRunAt returns the timestamp at which a failed job becomes eligible
// for its next attempt.
func NextRunAt(now time.Time, base, attempts uint32) time.Time {
	return now.Add(Backoff(base, attempts))
}
