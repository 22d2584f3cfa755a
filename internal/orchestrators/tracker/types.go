package tracker

import (
	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/host"
	"github.com/KirkDiggler/reroll-stats/internal/report"
)

// Action describes what the event router did with an incoming roll event.
type Action string

// Router actions.
const (
	// ActionSkipped means the event was filtered out; Reason says why.
	ActionSkipped Action = "skipped"

	// ActionBaselineRecorded means an original roll was stored as the
	// character's pending baseline.
	ActionBaselineRecorded Action = "baseline_recorded"

	// ActionRerollAccounted means a reroll was classified and counted.
	ActionRerollAccounted Action = "reroll_accounted"

	// ActionAwaitingChoice means the ruleset supplied no outcome label and
	// a prompt was raised; nothing is counted until the GM resolves it.
	ActionAwaitingChoice Action = "awaiting_choice"
)

// Choice is one of the fixed answers to an ambiguous-reroll prompt.
type Choice string

// Prompt choices. ChoiceDefer dismisses the prompt without consuming it.
const (
	ChoiceBetterCritSuccess Choice = "better-critical-success"
	ChoiceBetterSuccess     Choice = "better-success"
	ChoiceBetterFailure     Choice = "better-failure"
	ChoiceWorse             Choice = "worse"
	ChoiceCritFailure       Choice = "critical-failure"
	ChoiceSame              Choice = "same"
	ChoiceDefer             Choice = "defer"
)

// Choices lists the selectable options in prompt order.
func Choices() []host.ChoiceOption {
	return []host.ChoiceOption{
		{Key: string(ChoiceBetterCritSuccess), Label: "Better, critical success"},
		{Key: string(ChoiceBetterSuccess), Label: "Better, success"},
		{Key: string(ChoiceBetterFailure), Label: "Better, but still a failure"},
		{Key: string(ChoiceWorse), Label: "Worse"},
		{Key: string(ChoiceCritFailure), Label: "Critical failure"},
		{Key: string(ChoiceSame), Label: "Same result"},
	}
}

// classification translates a choice into the synthetic pair fed to the
// store, as if the ruleset had supplied it.
func (c Choice) classification() (entities.Classification, bool) {
	switch c {
	case ChoiceBetterCritSuccess:
		return entities.Classification{Comparison: entities.ComparisonBetter, Outcome: entities.OutcomeCriticalSuccess}, true
	case ChoiceBetterSuccess:
		return entities.Classification{Comparison: entities.ComparisonBetter, Outcome: entities.OutcomeSuccess}, true
	case ChoiceBetterFailure:
		return entities.Classification{Comparison: entities.ComparisonBetter, Outcome: entities.OutcomeFailure}, true
	case ChoiceWorse:
		return entities.Classification{Comparison: entities.ComparisonWorse, Outcome: entities.OutcomeUnknown}, true
	case ChoiceCritFailure:
		return entities.Classification{Comparison: entities.ComparisonWorse, Outcome: entities.OutcomeCriticalFailure}, true
	case ChoiceSame:
		return entities.Classification{Comparison: entities.ComparisonSame, Outcome: entities.OutcomeUnknown}, true
	}
	return entities.Classification{}, false
}

// HandleChatMessageInput carries one roll-completed chat event.
type HandleChatMessageInput struct {
	Message *host.ChatMessage
}

// HandleChatMessageOutput reports what the router did with the event.
type HandleChatMessageOutput struct {
	Action   Action
	Reason   string
	PromptID string
	Counters *entities.RollCounters
}

// HandleSaveResultInput carries a raw saving-throw payload from the
// companion extension, keyed by on-scene token.
type HandleSaveResultInput struct {
	Payload []byte
}

// HandleSaveResultOutput reports what the router did with the payload.
type HandleSaveResultOutput struct {
	Action   Action
	Reason   string
	PromptID string
	Counters *entities.RollCounters
}

// ResolveChoiceInput answers a pending ambiguous-reroll prompt.
type ResolveChoiceInput struct {
	PromptID string
	Choice   Choice
}

// ResolveChoiceOutput reports the result of consuming the prompt.
type ResolveChoiceOutput struct {
	// Deferred is true when the GM dismissed the prompt; it stays open.
	Deferred bool
	Counters *entities.RollCounters
}

// AddManualResultInput records a reroll outcome by hand (macro surface).
type AddManualResultInput struct {
	ActorID string
	Choice  Choice
}

// AddManualResultOutput contains the updated counters.
type AddManualResultOutput struct {
	Counters *entities.RollCounters
}

// ApplyManualCountersInput is the manual editor's save: a full replacement
// counters record for one character.
type ApplyManualCountersInput struct {
	ActorID  string
	Counters *entities.RollCounters
}

// ApplyManualCountersOutput contains the persisted counters.
type ApplyManualCountersOutput struct {
	Counters *entities.RollCounters
}

// ShowActorStatsInput identifies the character to report on.
type ShowActorStatsInput struct {
	ActorID string
}

// ShowActorStatsOutput contains the rendered summary.
type ShowActorStatsOutput struct {
	Summary *report.Summary
}

// ShowCombinedStatsInput requests the all-characters totals report.
type ShowCombinedStatsInput struct{}

// ShowCombinedStatsOutput contains the rendered summary.
type ShowCombinedStatsOutput struct {
	Summary *report.Summary
}

// RebuildJournalInput requests a journal rebuild.
type RebuildJournalInput struct{}

// RebuildJournalOutput reports how many characters were rendered.
type RebuildJournalOutput struct {
	Actors int
}

// ResetActorInput zeroes one character's counters.
type ResetActorInput struct {
	ActorID string
}

// ResetActorOutput contains the zeroed counters.
type ResetActorOutput struct {
	Counters *entities.RollCounters
}

// ResetAllInput zeroes every tracked character's counters.
type ResetAllInput struct{}

// ResetAllOutput reports how many characters were reset.
type ResetAllOutput struct {
	ActorsReset int
}

// DeleteActorInput removes one character's record entirely.
type DeleteActorInput struct {
	ActorID string
}

// DeleteActorOutput contains the result of the deletion.
type DeleteActorOutput struct{}

// DeleteAllInput wipes the store after confirmation.
type DeleteAllInput struct {
	// DeleteJournal also removes the stats journal document.
	DeleteJournal bool
}

// DeleteAllOutput reports whether the wipe was confirmed and performed.
type DeleteAllOutput struct {
	Confirmed     bool
	ActorsDeleted int
}

// BackupInput requests an export of the tracked statistics.
type BackupInput struct{}

// BackupOutput contains the export envelope.
type BackupOutput struct {
	Envelope *entities.BackupEnvelope
}

// RestoreInput carries raw backup content: either a BackupEnvelope or a
// bare actor-to-counters mapping.
type RestoreInput struct {
	Raw []byte
}

// RestoreOutput reports whether the restore was confirmed and performed.
type RestoreOutput struct {
	Confirmed      bool
	ActorsRestored int
}
