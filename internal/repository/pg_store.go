package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is the PostgreSQL implementation of Store. The pool is opened once
// per process and shared by every request.
type PgStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPgStore connects to connString. An empty connString is a configuration
// error, reported as ErrMissingConnString.
func NewPgStore(ctx context.Context, connString string) (*PgStore, error) {
	if connString == "" {
		return nil, ErrMissingConnString
	}
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewPgStoreFromPool(pool), nil
}

// NewPgStoreFromPool wraps an existing pool.
func NewPgStoreFromPool(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, now: time.Now}
}

// Ensure PgStore implements Store at compile time.
var _ Store = (*PgStore)(nil)

func (s *PgStore) Kind() BackendKind { return BackendPostgres }

// Ping checks the database connection (DB interface).
func (s *PgStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PgStore) Close() {
	s.pool.Close()
}
