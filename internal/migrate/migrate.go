// Package migrate applies the embedded SQL schema with golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/skopeo/backend/internal/repository"
)

// Runner wraps a golang-migrate instance bound to one database.
type Runner struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// New opens a Runner for databaseURL using migrations at the root of source.
func New(logger *slog.Logger, databaseURL string, source fs.FS) (*Runner, error) {
	if databaseURL == "" {
		return nil, repository.ErrMissingConnString
	}
	sourceDriver, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	m.Log = &migrateLogger{logger: logger}
	return &Runner{m: m, logger: logger}, nil
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	if err := r.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return r.Version()
}

// Down rolls back every migration.
func (r *Runner) Down() error {
	if err := r.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	r.logger.Info("all migrations rolled back")
	return nil
}

// Version logs the current schema version.
func (r *Runner) Version() error {
	ver, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		r.logger.Info("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}
	r.logger.Info("current version", slog.Uint64("version", uint64(ver)), slog.Bool("dirty", dirty))
	return nil
}

// Force sets the schema version without running migrations, clearing the dirty flag.
func (r *Runner) Force(version int) error {
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("migrate force: %w", err)
	}
	r.logger.Info("forced version", slog.Int("version", version))
	return nil
}

// Close releases the source and database handles.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
