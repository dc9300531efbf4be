package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// DefaultLockTimeout is the recommended bounded lock-wait timeout for
// lease acquisition under contention.
const DefaultLockTimeout = 10 * time.Second

// Store is the durable, single-writer SQLite-backed job store.
type Store struct {
	db          *bun.DB
	lockTimeout time.Duration
}

// New wraps an already-configured *bun.DB. Schema must be initialized
// separately via InitDB. lockTimeout bounds how long Lease retries on
// contention before surfacing ErrBusy; zero selects DefaultLockTimeout.
func New(db *bun.DB, lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Store{db: db, lockTimeout: lockTimeout}
}

// Open opens (creating if absent) the SQLite database at path with WAL
// journaling and a busy_timeout matching lockTimeout, and caps the
// connection pool at one connection — the mechanism by which a bun
// transaction becomes an exclusive write transaction in practice (see
// doc.go). It does not initialize schema; call InitDB afterward.
func Open(path string, lockTimeout time.Duration) (*Store, error) {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		path, lockTimeout.Milliseconds(),
	)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	return New(db, lockTimeout), nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.DB.Close()
}

// DB exposes the underlying *bun.DB for schema initialization
// (store.InitDB) and for tests that need to reach below Store's API.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Tx wraps an exclusive write transaction.
type Tx struct {
	tx bun.Tx
}

// BeginExclusive starts an exclusive write transaction. Leasing runs its
// select-then-update inside one to keep lease assignment serializable; the
// admin write operations do not use it.
func (s *Store) BeginExclusive(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
