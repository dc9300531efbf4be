// Package store implements the durable, single-writer job store: job rows,
// a config key/value table, and the atomic leasing protocol that guarantees
// exclusive assignment of a job to one worker.
//
// The storage backend is github.com/uptrace/bun over modernc.org/sqlite.
// An exclusive write transaction is realized by pinning the *sql.DB to a
// single connection (SetMaxOpenConns(1)) with WAL journaling and a bounded
// busy_timeout, so every bun.DB.BeginTx transaction is exclusive in effect
// without needing a raw BEGIN EXCLUSIVE statement.
package store
