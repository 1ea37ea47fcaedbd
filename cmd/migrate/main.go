package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/skopeo/backend/internal/config"
	"github.com/skopeo/backend/internal/logging"
	"github.com/skopeo/backend/internal/migrate"
	"github.com/skopeo/backend/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the contact_messages database schema",
		SilenceUsage: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(r *migrate.Runner, _ []string) error {
				return r.Up()
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(r *migrate.Runner, _ []string) error {
				return r.Down()
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(r *migrate.Runner, _ []string) error {
				return r.Version()
			}),
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the schema version and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: withRunner(func(r *migrate.Runner, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return r.Force(version)
			}),
		},
	)
	return root
}

// withRunner loads configuration, opens a Runner and closes it after fn.
func withRunner(fn func(r *migrate.Runner, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := logging.Setup(cfg.LogLevel)

		runner, err := migrate.New(logger, cfg.DatabaseURL, migrations.FS)
		if err != nil {
			return err
		}
		defer func() {
			if err := runner.Close(); err != nil {
				logger.Warn("close migrate runner", "error", err)
			}
		}()
		return fn(runner, args)
	}
}
