// Package migrations provides one-shot, versioned upgrades of the
// persisted reroll data. Each migration runs at most once per world; the
// completion record lives next to the data it migrates.
package migrations

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/host"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
)

// Result is a migration's verdict.
type Result string

// Migration results.
const (
	// ResultCompleted marks the migration done; it never runs again.
	ResultCompleted Result = "completed"

	// ResultDeferred leaves the migration pending for the next startup.
	ResultDeferred Result = "deferred"
)

// Migration is one one-shot schema upgrade. Apply must be idempotent:
// running against already-upgraded data must be safe.
type Migration interface {
	// ID is the persisted completion key; stable forever.
	ID() string

	// Apply performs the upgrade or defers it.
	Apply(ctx context.Context) (Result, error)
}

// RunnerConfig holds the dependencies for the migration runner
type RunnerConfig struct {
	ConfigRepo worldconfig.Repository
	Gateway    host.Gateway
	Migrations []Migration
}

// Validate ensures all required dependencies are provided
func (c *RunnerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.ConfigRepo == nil {
		return errors.InvalidArgument("config repository is required")
	}
	if c.Gateway == nil {
		return errors.InvalidArgument("gateway is required")
	}
	return nil
}

// Runner applies pending migrations in registration order.
type Runner struct {
	config     worldconfig.Repository
	gateway    host.Gateway
	migrations []Migration
}

// NewRunner creates a migration runner
func NewRunner(cfg *RunnerConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Runner{
		config:     cfg.ConfigRepo,
		gateway:    cfg.Gateway,
		migrations: cfg.Migrations,
	}, nil
}

// Run applies every pending migration. GM-only: non-privileged processes
// skip silently. Completed migrations are skipped; re-running the runner
// is a no-op once everything has completed.
func (r *Runner) Run(ctx context.Context) error {
	if !r.gateway.CurrentUserIsGM(ctx) {
		slog.Debug("not privileged, skipping migrations")
		return nil
	}

	stateOut, err := r.config.GetMigrationState(ctx, worldconfig.GetMigrationStateInput{})
	if err != nil {
		return errors.Wrap(err, "failed to load migration state")
	}
	state := stateOut.State

	for _, m := range r.migrations {
		if state.Done(m.ID()) {
			slog.Debug("migration already applied", "migration", m.ID())
			continue
		}

		result, err := m.Apply(ctx)
		if err != nil {
			return errors.Wrapf(err, "migration %s failed", m.ID())
		}

		switch result {
		case ResultDeferred:
			slog.Info("migration deferred", "migration", m.ID())
			continue
		case ResultCompleted:
			state.MarkDone(m.ID())
			if _, err := r.config.SaveMigrationState(ctx, worldconfig.SaveMigrationStateInput{State: state}); err != nil {
				return errors.Wrapf(err, "failed to record completion of migration %s", m.ID())
			}
			slog.Info("migration completed", "migration", m.ID())
		default:
			return errors.Internalf("migration %s returned unknown result %q", m.ID(), result)
		}
	}

	return nil
}
