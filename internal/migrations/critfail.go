package migrations

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/host"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/clock"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/idgen"
	"github.com/KirkDiggler/reroll-stats/internal/report"
	rollstats "github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats"
)

// CritFailMigrationID is the persisted completion key for the
// critical-failure counter migration. The name matches the settings key
// the original module used.
const CritFailMigrationID = "critFailMigration"

// Migration choices offered to the GM.
const (
	choiceArchive = "archive"
	choiceKeep    = "keep"
	choiceDefer   = "defer"
)

// CritFailConfig holds the dependencies for the crit-fail migration
type CritFailConfig struct {
	RollStatsRepo rollstats.Repository
	Gateway       host.Gateway
	Prompter      host.Prompter
	IDGenerator   idgen.Generator
	Clock         clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *CritFailConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RollStatsRepo == nil {
		vb.RequiredField("RollStatsRepo")
	}
	if c.Gateway == nil {
		vb.RequiredField("Gateway")
	}
	if c.Prompter == nil {
		vb.RequiredField("Prompter")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// CritFail migrates a world's counters to the schema that includes the
// critical-failure count. Existing records gain the field at zero either
// way; the GM chooses whether historic totals are archived and reset or
// kept as-is.
type CritFail struct {
	repo     rollstats.Repository
	gateway  host.Gateway
	prompter host.Prompter
	idGen    idgen.Generator
	clock    clock.Clock
}

// NewCritFail creates the crit-fail migration
func NewCritFail(cfg *CritFailConfig) (*CritFail, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &CritFail{
		repo:     cfg.RollStatsRepo,
		gateway:  cfg.Gateway,
		prompter: cfg.Prompter,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
	}, nil
}

// Ensure CritFail implements Migration
var _ Migration = (*CritFail)(nil)

// ID is the persisted completion key.
func (m *CritFail) ID() string {
	return CritFailMigrationID
}

// Apply asks the GM what to do with pre-migration totals. A dismissed
// dialog defers; deferral asks again next startup.
func (m *CritFail) Apply(ctx context.Context) (Result, error) {
	choice, err := m.prompter.ChooseOption(ctx, host.OptionRequest{
		Title: "Reroll Stats: Critical Failure Tracking",
		Message: "This version adds a critical-failure counter. Existing totals were collected " +
			"without it. Archive the current totals and start fresh, or keep them as-is?",
		Options: []host.ChoiceOption{
			{Key: choiceArchive, Label: "Archive current totals, then reset all counters"},
			{Key: choiceKeep, Label: "Keep all data as-is (new counter starts at zero)"},
			{Key: choiceDefer, Label: "Decide later (ask again next startup)"},
		},
		DefaultKey: choiceDefer,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to prompt for migration choice")
	}

	switch choice {
	case choiceKeep:
		// Zero-valued CritFailCount is already the upgraded shape.
		return ResultCompleted, nil
	case choiceArchive:
		if err := m.archiveAndReset(ctx); err != nil {
			return "", err
		}
		return ResultCompleted, nil
	default:
		return ResultDeferred, nil
	}
}

// archiveAndReset writes a durable snapshot of the current totals, then
// zeroes every counter. The snapshot is written before any reset so no
// data is silently dropped: once as raw data in the store archive, once
// human-readable as a journal page.
func (m *CritFail) archiveAndReset(ctx context.Context) error {
	listed, err := m.repo.List(ctx, rollstats.ListInput{})
	if err != nil {
		return errors.Wrap(err, "failed to list counters")
	}

	world, system := m.gateway.WorldInfo(ctx)
	now := m.clock.Now()

	snapshot := &entities.BackupEnvelope{
		ModuleID:   entities.ModuleID,
		ExportedAt: now,
		World:      world,
		System:     system,
		Data:       listed.Data.Clone(),
	}

	archiveID := m.idGen.Generate()
	if _, err := m.repo.Archive(ctx, rollstats.ArchiveInput{ArchiveID: archiveID, Snapshot: snapshot}); err != nil {
		return errors.Wrap(err, "failed to archive snapshot")
	}

	names := make(map[string]string, len(listed.Data))
	for actorID := range listed.Data {
		name := actorID
		if actor, aerr := m.gateway.GetCharacter(ctx, actorID); aerr == nil {
			name = actor.Name
		}
		names[actorID] = name
	}
	journalName := fmt.Sprintf("Reroll Stats Archive %s", now.Format("2006-01-02"))
	if err := m.gateway.UpsertJournal(ctx, journalName, report.Journal(names, listed.Data)); err != nil {
		return errors.Wrap(err, "failed to write archive journal")
	}

	for actorID, counters := range listed.Data {
		counters.Reset()
		if _, err := m.repo.Save(ctx, rollstats.SaveInput{ActorID: actorID, Counters: counters}); err != nil {
			return errors.Wrapf(err, "failed to reset actor %s", actorID)
		}
	}

	m.gateway.Notify(ctx, host.NotifyInfo,
		fmt.Sprintf("Archived reroll totals for %d actor(s) to %q and reset all counters.", len(listed.Data), journalName))

	return nil
}
