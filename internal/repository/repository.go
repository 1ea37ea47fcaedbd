package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Open selects the backend once at startup. A non-empty databaseURL selects
// Postgres exclusively; otherwise data lives in memory for the process lifetime.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (Store, error) {
	if databaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory storage; data will be lost on restart")
		return NewMemoryStore(), nil
	}
	store, err := NewPgStore(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "backend", store.Kind())
	return store, nil
}
