// Package worldconfig provides the repository for world-scoped settings:
// the tracker's configuration flags and the one-shot migration state.
package worldconfig

import (
	"context"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=worldconfigmock github.com/KirkDiggler/reroll-stats/internal/repositories/world_config Repository

// DebugLevel controls how chatty the tracker's logging is.
type DebugLevel string

// Debug levels, least to most verbose.
const (
	DebugNone  DebugLevel = "none"
	DebugError DebugLevel = "error"
	DebugWarn  DebugLevel = "warn"
	DebugAll   DebugLevel = "all"
)

// Flags are the operator-facing configuration switches.
type Flags struct {
	// OutputToChat posts a stats message after every accounted reroll.
	OutputToChat bool `json:"outputToChat"`

	// IgnoreMinion excludes characters carrying the minion trait
	// (companions, summons) from tracking.
	IgnoreMinion bool `json:"ignoreMinion"`

	// IgnoreWorkbenchVariant suppresses the refusal to track rerolls when
	// the variant hero-point extension is active in a non-default mode.
	IgnoreWorkbenchVariant bool `json:"ignoreWorkbenchVariant"`

	DebugLevel DebugLevel `json:"debugLevel"`
}

// DefaultFlags returns the flag defaults used when a world has never
// saved any.
func DefaultFlags() *Flags {
	return &Flags{
		OutputToChat:           false,
		IgnoreMinion:           true,
		IgnoreWorkbenchVariant: false,
		DebugLevel:             DebugNone,
	}
}

// GetFlagsInput contains parameters for reading the flags
type GetFlagsInput struct{}

// GetFlagsOutput contains the current flags (defaults if never saved)
type GetFlagsOutput struct {
	Flags *Flags
}

// SaveFlagsInput contains the flags to persist
type SaveFlagsInput struct {
	Flags *Flags
}

// SaveFlagsOutput contains the result of persisting the flags
type SaveFlagsOutput struct{}

// GetMigrationStateInput contains parameters for reading migration state
type GetMigrationStateInput struct{}

// GetMigrationStateOutput contains the persisted migration state
type GetMigrationStateOutput struct {
	State entities.MigrationState
}

// SaveMigrationStateInput contains the migration state to persist
type SaveMigrationStateInput struct {
	State entities.MigrationState
}

// SaveMigrationStateOutput contains the result of persisting the state
type SaveMigrationStateOutput struct{}

// Repository defines the storage operations for world configuration.
type Repository interface {
	// GetFlags reads the configuration flags, falling back to defaults
	GetFlags(ctx context.Context, input GetFlagsInput) (*GetFlagsOutput, error)

	// SaveFlags persists the configuration flags
	SaveFlags(ctx context.Context, input SaveFlagsInput) (*SaveFlagsOutput, error)

	// GetMigrationState reads the one-shot migration completion record
	GetMigrationState(ctx context.Context, input GetMigrationStateInput) (*GetMigrationStateOutput, error)

	// SaveMigrationState persists the migration completion record
	SaveMigrationState(ctx context.Context, input SaveMigrationStateInput) (*SaveMigrationStateOutput, error)
}
