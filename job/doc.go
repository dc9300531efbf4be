// Package job defines the unit of work tracked by the queue engine: its
// state machine, scheduling metadata and retry bookkeeping.
//
// Job values are returned by store and admin operations as snapshots. They
// are not intended to be constructed or mutated directly by callers;
// transitions happen through Store.Lease, Store.UpdateOutcome and the admin
// retry/purge operations.
package job
