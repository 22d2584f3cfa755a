package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/host"
	"github.com/KirkDiggler/reroll-stats/internal/report"
	rollstats "github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
)

// ShowActorStats posts one character's stats to chat.
func (o *orchestrator) ShowActorStats(ctx context.Context, input *ShowActorStatsInput) (*ShowActorStatsOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	got, err := o.repo.Get(ctx, rollstats.GetInput{ActorID: input.ActorID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load counters")
	}

	name := input.ActorID
	if actor, aerr := o.gateway.GetCharacter(ctx, input.ActorID); aerr == nil {
		name = actor.Name
	}

	summary := report.ForActor(name, got.Counters)
	if err := o.gateway.CreateChatMessage(ctx, host.ChatReport{Alias: ChatAlias, HTML: summary.Rendered}); err != nil {
		return nil, errors.Wrap(err, "failed to post stats to chat")
	}

	return &ShowActorStatsOutput{Summary: summary}, nil
}

// ShowCombinedStats posts the all-characters totals to chat.
func (o *orchestrator) ShowCombinedStats(ctx context.Context, _ *ShowCombinedStatsInput) (*ShowCombinedStatsOutput, error) {
	listed, err := o.repo.List(ctx, rollstats.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list counters")
	}

	summary := report.Combined(listed.Data)
	if err := o.gateway.CreateChatMessage(ctx, host.ChatReport{Alias: ChatAlias, HTML: summary.Rendered}); err != nil {
		return nil, errors.Wrap(err, "failed to post stats to chat")
	}

	return &ShowCombinedStatsOutput{Summary: summary}, nil
}

// RebuildJournal re-renders the stats journal document.
func (o *orchestrator) RebuildJournal(ctx context.Context, _ *RebuildJournalInput) (*RebuildJournalOutput, error) {
	listed, err := o.repo.List(ctx, rollstats.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list counters")
	}

	names := make(map[string]string, len(listed.Data))
	for actorID := range listed.Data {
		actor, aerr := o.gateway.GetCharacter(ctx, actorID)
		if aerr != nil {
			// Deleted actors keep their counters but drop out of the journal.
			continue
		}
		names[actorID] = actor.Name
	}

	html := report.Journal(names, listed.Data)
	if err := o.gateway.UpsertJournal(ctx, JournalName, html); err != nil {
		return nil, errors.Wrap(err, "failed to update journal")
	}

	return &RebuildJournalOutput{Actors: len(names)}, nil
}

// ResetActor zeroes one character's counters. The character stays known.
func (o *orchestrator) ResetActor(ctx context.Context, input *ResetActorInput) (*ResetActorOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can reset reroll data")
	}

	o.actorLocks.Lock(input.ActorID)
	defer o.actorLocks.Unlock(input.ActorID)

	got, err := o.repo.Get(ctx, rollstats.GetInput{ActorID: input.ActorID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load counters")
	}

	counters := got.Counters
	counters.Reset()
	if _, err := o.repo.Save(ctx, rollstats.SaveInput{ActorID: input.ActorID, Counters: counters}); err != nil {
		return nil, errors.Wrap(err, "failed to save counters")
	}

	o.rebuildJournalQuietly(ctx)

	return &ResetActorOutput{Counters: counters}, nil
}

// ResetAll zeroes every tracked character's counters.
func (o *orchestrator) ResetAll(ctx context.Context, _ *ResetAllInput) (*ResetAllOutput, error) {
	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can reset reroll data")
	}

	listed, err := o.repo.List(ctx, rollstats.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list counters")
	}

	for actorID, counters := range listed.Data {
		o.actorLocks.Lock(actorID)
		counters.Reset()
		_, err := o.repo.Save(ctx, rollstats.SaveInput{ActorID: actorID, Counters: counters})
		o.actorLocks.Unlock(actorID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to reset actor %s", actorID)
		}
	}

	o.rebuildJournalQuietly(ctx)
	o.gateway.Notify(ctx, host.NotifyInfo,
		fmt.Sprintf("Reroll data reset for %d actor(s).", len(listed.Data)))

	return &ResetAllOutput{ActorsReset: len(listed.Data)}, nil
}

// DeleteActor removes one character's record entirely.
func (o *orchestrator) DeleteActor(ctx context.Context, input *DeleteActorInput) (*DeleteActorOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can delete reroll data")
	}

	o.actorLocks.Lock(input.ActorID)
	defer o.actorLocks.Unlock(input.ActorID)

	if _, err := o.repo.Delete(ctx, rollstats.DeleteInput{ActorID: input.ActorID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete counters")
	}

	o.rebuildJournalQuietly(ctx)

	return &DeleteActorOutput{}, nil
}

// DeleteAll wipes the store after explicit confirmation.
func (o *orchestrator) DeleteAll(ctx context.Context, input *DeleteAllInput) (*DeleteAllOutput, error) {
	if input == nil {
		input = &DeleteAllInput{}
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can delete reroll data")
	}

	message := "Are you sure you want to delete all hero point reroll stats?"
	if input.DeleteJournal {
		message += " The stats journal will also be deleted."
	}

	confirmed, err := o.prompter.Confirm(ctx, host.ConfirmRequest{
		Title:   "Delete All Reroll Stats",
		Message: message,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to confirm deletion")
	}
	if !confirmed {
		slog.Debug("delete all cancelled")
		return &DeleteAllOutput{Confirmed: false}, nil
	}

	listed, err := o.repo.List(ctx, rollstats.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list counters")
	}

	if _, err := o.repo.ReplaceAll(ctx, rollstats.ReplaceAllInput{Data: entities.RollData{}}); err != nil {
		return nil, errors.Wrap(err, "failed to clear store")
	}

	if input.DeleteJournal {
		if err := o.gateway.DeleteJournal(ctx, JournalName); err != nil && !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to delete journal")
		}
	} else {
		o.rebuildJournalQuietly(ctx)
	}

	slog.Info("all reroll stats deleted", "actors", len(listed.Data), "journal_deleted", input.DeleteJournal)

	return &DeleteAllOutput{Confirmed: true, ActorsDeleted: len(listed.Data)}, nil
}

// Backup exports the tracked statistics as an envelope.
func (o *orchestrator) Backup(ctx context.Context, _ *BackupInput) (*BackupOutput, error) {
	listed, err := o.repo.List(ctx, rollstats.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list counters")
	}

	world, system := o.gateway.WorldInfo(ctx)

	return &BackupOutput{
		Envelope: &entities.BackupEnvelope{
			ModuleID:   entities.ModuleID,
			ExportedAt: o.clock.Now(),
			World:      world,
			System:     system,
			Data:       listed.Data.Clone(),
		},
	}, nil
}

// Restore replaces the store from backup content after confirmation.
// Accepts a full envelope or a bare actor-to-counters mapping.
func (o *orchestrator) Restore(ctx context.Context, input *RestoreInput) (*RestoreOutput, error) {
	if input == nil || len(input.Raw) == 0 {
		return nil, errors.InvalidArgument("backup content is required")
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can restore reroll data")
	}

	data, err := parseBackup(input.Raw)
	if err != nil {
		slog.Error("invalid backup content", "error", err)
		return nil, err
	}

	confirmed, err := o.prompter.Confirm(ctx, host.ConfirmRequest{
		Title: "Restore Reroll Stats",
		Message: fmt.Sprintf(
			"Restoring will overwrite all current reroll data with %d actor record(s). Continue?", len(data)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to confirm restore")
	}
	if !confirmed {
		return &RestoreOutput{Confirmed: false}, nil
	}

	if _, err := o.repo.ReplaceAll(ctx, rollstats.ReplaceAllInput{Data: data}); err != nil {
		return nil, errors.Wrap(err, "failed to replace store contents")
	}

	o.rebuildJournalQuietly(ctx)
	slog.Info("reroll stats restored", "actors", len(data))

	return &RestoreOutput{Confirmed: true, ActorsRestored: len(data)}, nil
}

// parseBackup decodes either a BackupEnvelope or a bare RollData mapping.
func parseBackup(raw []byte) (entities.RollData, error) {
	var envelope entities.BackupEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var bare entities.RollData
	if err := json.Unmarshal(raw, &bare); err == nil && bare != nil {
		return bare, nil
	}

	return nil, errors.DataLoss("backup content is neither an export envelope nor a roll data mapping")
}

// report posts the per-actor chat summary when configured and keeps the
// journal current after every accounted reroll.
func (o *orchestrator) report(ctx context.Context, actor *host.Character, counters *entities.RollCounters, flags *worldconfig.Flags) {
	if flags.OutputToChat {
		summary := report.ForActor(actor.Name, counters)
		if err := o.gateway.CreateChatMessage(ctx, host.ChatReport{Alias: ChatAlias, HTML: summary.Rendered}); err != nil {
			slog.Error("failed to post stats to chat", "actor_id", actor.ID, "error", err)
		}
	}
	o.rebuildJournalQuietly(ctx)
}

// rebuildJournalQuietly refreshes the journal, logging instead of failing
// the triggering operation.
func (o *orchestrator) rebuildJournalQuietly(ctx context.Context) {
	if _, err := o.RebuildJournal(ctx, &RebuildJournalInput{}); err != nil {
		slog.Error("failed to rebuild journal", "error", err)
	}
}
