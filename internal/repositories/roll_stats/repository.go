// Package rollstats provides the repository interface and types for
// per-character reroll counters.
package rollstats

import (
	"context"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollstatsmock github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats Repository

// GetInput contains parameters for retrieving one character's counters
type GetInput struct {
	ActorID string
}

// GetOutput contains the result of retrieving one character's counters
type GetOutput struct {
	Counters *entities.RollCounters
}

// SaveInput contains parameters for storing one character's counters
type SaveInput struct {
	ActorID  string
	Counters *entities.RollCounters
}

// SaveOutput contains the result of storing one character's counters
type SaveOutput struct{}

// ListInput contains parameters for listing all tracked characters
type ListInput struct{}

// ListOutput contains every tracked character's counters
type ListOutput struct {
	Data entities.RollData
}

// DeleteInput contains parameters for deleting one character's record
type DeleteInput struct {
	ActorID string
}

// DeleteOutput contains the result of deleting one character's record
type DeleteOutput struct{}

// ReplaceAllInput contains the full mapping that replaces the store
type ReplaceAllInput struct {
	Data entities.RollData
}

// ReplaceAllOutput contains the result of a wholesale replacement
type ReplaceAllOutput struct {
	Replaced int
}

// ArchiveInput contains a snapshot to persist permanently
type ArchiveInput struct {
	ArchiveID string
	Snapshot  *entities.BackupEnvelope
}

// ArchiveOutput contains the result of archiving a snapshot
type ArchiveOutput struct{}

// Repository defines the storage operations for reroll counters.
// Get and Delete report NotFound for unknown actors; writes are
// last-write-wins (the tracker serializes mutations per character).
type Repository interface {
	// Get retrieves one character's counters
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save upserts one character's counters and indexes the character
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// List retrieves the counters of every tracked character
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes one character's record entirely
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ReplaceAll destructively replaces the whole store contents
	ReplaceAll(ctx context.Context, input ReplaceAllInput) (*ReplaceAllOutput, error)

	// Archive persists a permanent snapshot (never expired, never listed)
	Archive(ctx context.Context, input ArchiveInput) (*ArchiveOutput, error)
}
