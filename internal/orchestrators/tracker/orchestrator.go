// Package tracker implements the reroll aggregator: it routes host roll
// events, classifies rerolls against stored baselines, updates the
// counters store, and triggers chat/journal reporting.
package tracker

//go:generate mockgen -destination=mock/mock_service.go -package=trackermock github.com/KirkDiggler/reroll-stats/internal/orchestrators/tracker Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/KirkDiggler/reroll-stats/internal/classifier"
	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/host"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/clock"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/idgen"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/keymutex"
	rollstats "github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
)

const (
	// JournalName is the stats journal document name.
	JournalName = "Reroll Stats"

	// ChatAlias is the speaker alias on tracker chat messages.
	ChatAlias = "Reroll Tracker"

	// Variant hero-point extension whose non-default modes change reroll
	// semantics incompatibly with this tracker.
	workbenchModuleID     = "xdy-pf2e-workbench"
	workbenchHeroPointKey = "heroPointHandler"
	workbenchDefaultMode  = "default"
)

// Service defines the tracker's operations: the inbound event surface and
// the macro-facing programmatic surface.
type Service interface {
	// HandleChatMessage routes one roll-completed chat event
	HandleChatMessage(ctx context.Context, input *HandleChatMessageInput) (*HandleChatMessageOutput, error)

	// HandleSaveResult routes one token-keyed saving-throw payload from
	// the companion extension
	HandleSaveResult(ctx context.Context, input *HandleSaveResultInput) (*HandleSaveResultOutput, error)

	// ResolveChoice consumes a pending ambiguous-reroll prompt (at most once)
	ResolveChoice(ctx context.Context, input *ResolveChoiceInput) (*ResolveChoiceOutput, error)

	// AddManualResult records a reroll outcome by hand
	AddManualResult(ctx context.Context, input *AddManualResultInput) (*AddManualResultOutput, error)

	// ApplyManualCounters validates and saves an edited counters record
	ApplyManualCounters(ctx context.Context, input *ApplyManualCountersInput) (*ApplyManualCountersOutput, error)

	// ShowActorStats posts one character's stats to chat
	ShowActorStats(ctx context.Context, input *ShowActorStatsInput) (*ShowActorStatsOutput, error)

	// ShowCombinedStats posts the all-characters totals to chat
	ShowCombinedStats(ctx context.Context, input *ShowCombinedStatsInput) (*ShowCombinedStatsOutput, error)

	// RebuildJournal re-renders the stats journal document
	RebuildJournal(ctx context.Context, input *RebuildJournalInput) (*RebuildJournalOutput, error)

	// ResetActor zeroes one character's counters (the character stays known)
	ResetActor(ctx context.Context, input *ResetActorInput) (*ResetActorOutput, error)

	// ResetAll zeroes every tracked character's counters
	ResetAll(ctx context.Context, input *ResetAllInput) (*ResetAllOutput, error)

	// DeleteActor removes one character's record entirely
	DeleteActor(ctx context.Context, input *DeleteActorInput) (*DeleteActorOutput, error)

	// DeleteAll wipes the store after confirmation
	DeleteAll(ctx context.Context, input *DeleteAllInput) (*DeleteAllOutput, error)

	// Backup exports the tracked statistics
	Backup(ctx context.Context, input *BackupInput) (*BackupOutput, error)

	// Restore replaces the store from a backup after confirmation
	Restore(ctx context.Context, input *RestoreInput) (*RestoreOutput, error)
}

// Config holds the dependencies for the tracker orchestrator
type Config struct {
	RollStatsRepo rollstats.Repository
	ConfigRepo    worldconfig.Repository
	Gateway       host.Gateway
	Prompter      host.Prompter
	IDGenerator   idgen.Generator
	Clock         clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RollStatsRepo == nil {
		vb.RequiredField("RollStatsRepo")
	}
	if c.ConfigRepo == nil {
		vb.RequiredField("ConfigRepo")
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

// pendingChoice is a raised ambiguous-reroll prompt awaiting its answer.
type pendingChoice struct {
	promptID string
	actorID  string
	original *int
	reroll   int
	resolved bool
}

type orchestrator struct {
	repo     rollstats.Repository
	config   worldconfig.Repository
	gateway  host.Gateway
	prompter host.Prompter
	idGen    idgen.Generator
	clock    clock.Clock

	// actorLocks serializes mutations per character across the
	// read-modify-write persistence cycle.
	actorLocks *keymutex.KeyMutex

	promptMu sync.Mutex
	pending  map[string]*pendingChoice

	// workbenchWarned latches the once-per-session variant advisory.
	workbenchWarned atomic.Bool
}

// NewOrchestrator creates a new tracker orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:       cfg.RollStatsRepo,
		config:     cfg.ConfigRepo,
		gateway:    cfg.Gateway,
		prompter:   cfg.Prompter,
		idGen:      cfg.IDGenerator,
		clock:      cfg.Clock,
		actorLocks: keymutex.New(),
		pending:    make(map[string]*pendingChoice),
	}, nil
}

// HandleChatMessage routes one roll-completed chat event.
func (o *orchestrator) HandleChatMessage(ctx context.Context, input *HandleChatMessageInput) (*HandleChatMessageOutput, error) {
	if input == nil || input.Message == nil {
		return nil, errors.InvalidArgument("message is required")
	}

	// Non-privileged observers must not account anything.
	if !o.gateway.CurrentUserIsGM(ctx) {
		return &HandleChatMessageOutput{Action: ActionSkipped, Reason: "not privileged"}, nil
	}

	msg := input.Message
	if !hasD20(msg.Rolls) {
		return &HandleChatMessageOutput{Action: ActionSkipped, Reason: "not a d20 roll"}, nil
	}

	if msg.Context == nil || msg.Context.ActorID == "" {
		slog.Warn("d20 roll without actor context, skipping", "message_id", msg.ID)
		return &HandleChatMessageOutput{Action: ActionSkipped, Reason: "no actor context"}, nil
	}

	actor, err := o.gateway.GetCharacter(ctx, msg.Context.ActorID)
	if err != nil {
		if errors.IsNotFound(err) {
			slog.Warn("roll from unknown actor, skipping", "actor_id", msg.Context.ActorID)
			return &HandleChatMessageOutput{Action: ActionSkipped, Reason: "unknown actor"}, nil
		}
		return nil, errors.Wrap(err, "failed to resolve actor")
	}

	flags, err := o.loadFlags(ctx)
	if err != nil {
		return nil, err
	}

	if !validForTracking(actor, flags) {
		slog.Debug("ignoring roll from untracked actor", "actor_id", actor.ID, "type", actor.Type)
		return &HandleChatMessageOutput{Action: ActionSkipped, Reason: "untracked actor"}, nil
	}

	out, err := o.routeRoll(ctx, actor, flags, msg.Rolls[0].Total, msg.Context.IsReroll, msg.Context.Outcome)
	if err != nil {
		return nil, err
	}
	return (*HandleChatMessageOutput)(out), nil
}

// saveResultPayload is the companion extension's wire shape.
type saveResultPayload struct {
	Roll struct {
		Total int `json:"total"`
	} `json:"roll"`
	Target string `json:"target"`
	Data   struct {
		IsReroll bool             `json:"isReroll"`
		Outcome  entities.Outcome `json:"outcome"`
	} `json:"data"`
}

// HandleSaveResult routes one token-keyed saving-throw payload from the
// companion extension. Malformed payloads abort this item only.
func (o *orchestrator) HandleSaveResult(ctx context.Context, input *HandleSaveResultInput) (*HandleSaveResultOutput, error) {
	if input == nil || len(input.Payload) == 0 {
		return nil, errors.InvalidArgument("payload is required")
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return &HandleSaveResultOutput{Action: ActionSkipped, Reason: "not privileged"}, nil
	}

	var payload saveResultPayload
	if err := json.Unmarshal(input.Payload, &payload); err != nil {
		slog.Error("malformed save result payload", "error", err)
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed save result payload")
	}
	if payload.Target == "" {
		return nil, errors.DataLoss("save result payload has no target token")
	}

	actor, err := o.gateway.ResolveToken(ctx, payload.Target)
	if err != nil {
		if errors.IsNotFound(err) {
			slog.Warn("save result for unknown token, skipping", "token_id", payload.Target)
			return &HandleSaveResultOutput{Action: ActionSkipped, Reason: "unknown token"}, nil
		}
		return nil, errors.Wrap(err, "failed to resolve token")
	}

	flags, err := o.loadFlags(ctx)
	if err != nil {
		return nil, err
	}

	if !validForTracking(actor, flags) {
		return &HandleSaveResultOutput{Action: ActionSkipped, Reason: "untracked actor"}, nil
	}

	out, err := o.routeRoll(ctx, actor, flags, payload.Roll.Total, payload.Data.IsReroll, payload.Data.Outcome)
	if err != nil {
		return nil, err
	}
	return (*HandleSaveResultOutput)(out), nil
}

// routeOutput is the shared result shape for both inbound event paths.
type routeOutput struct {
	Action   Action
	Reason   string
	PromptID string
	Counters *entities.RollCounters
}

// routeRoll is the core of the state machine: baseline vs reroll, the
// workbench-variant bypass, classification, and the ambiguous-outcome
// suspension.
func (o *orchestrator) routeRoll(ctx context.Context, actor *host.Character, flags *worldconfig.Flags, total int, isReroll bool, outcome entities.Outcome) (*routeOutput, error) {
	o.actorLocks.Lock(actor.ID)
	defer o.actorLocks.Unlock(actor.ID)

	counters, err := o.loadOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if !isReroll {
		counters.RecordBaseline(total)
		if _, err := o.repo.Save(ctx, rollstats.SaveInput{ActorID: actor.ID, Counters: counters}); err != nil {
			return nil, errors.Wrap(err, "failed to save baseline")
		}
		slog.Debug("original roll recorded", "actor_id", actor.ID, "total", total)
		return &routeOutput{Action: ActionBaselineRecorded, Counters: counters}, nil
	}

	if o.workbenchVariantActive(ctx, flags) {
		if o.workbenchWarned.CompareAndSwap(false, true) {
			o.gateway.Notify(ctx, host.NotifyWarn,
				"A variant hero point handler is active; reroll accounting is disabled until it is set back to default.")
			slog.Warn("variant hero point handler active, skipping reroll accounting")
		}
		return &routeOutput{Action: ActionSkipped, Reason: "variant hero point handler active"}, nil
	}

	if outcome == "" || outcome == entities.OutcomeUnknown {
		if counters.OriginalRoll == nil {
			slog.Debug("reroll with no baseline and no outcome, nothing to count", "actor_id", actor.ID)
			return &routeOutput{Action: ActionSkipped, Reason: "no baseline"}, nil
		}
		prompt := o.registerPrompt(actor, counters.OriginalRoll, total)
		if err := o.prompter.PresentChoice(ctx, prompt); err != nil {
			return nil, errors.Wrap(err, "failed to present outcome prompt")
		}
		slog.Info("ambiguous reroll, awaiting GM choice", "actor_id", actor.ID, "prompt_id", prompt.PromptID)
		return &routeOutput{Action: ActionAwaitingChoice, PromptID: prompt.PromptID, Counters: counters}, nil
	}

	cls := classifier.Classify(counters.OriginalRoll, total, outcome)
	if cls.Comparison == entities.ComparisonUnknown {
		slog.Debug("reroll with no baseline, nothing to count", "actor_id", actor.ID)
		return &routeOutput{Action: ActionSkipped, Reason: "no baseline"}, nil
	}

	counters.ApplyReroll(cls)
	if _, err := o.repo.Save(ctx, rollstats.SaveInput{ActorID: actor.ID, Counters: counters}); err != nil {
		return nil, errors.Wrap(err, "failed to save counters")
	}

	slog.Info("reroll accounted",
		"actor_id", actor.ID,
		"comparison", cls.Comparison,
		"outcome", cls.Outcome,
		"reroll_count", counters.RerollCount,
	)

	o.report(ctx, actor, counters, flags)

	return &routeOutput{Action: ActionRerollAccounted, Counters: counters}, nil
}

// ResolveChoice consumes a pending ambiguous-reroll prompt. The first
// accepted choice wins; later attempts on the same prompt fail without
// touching any counter. A deferred choice leaves the prompt open.
func (o *orchestrator) ResolveChoice(ctx context.Context, input *ResolveChoiceInput) (*ResolveChoiceOutput, error) {
	if input == nil || input.PromptID == "" {
		return nil, errors.InvalidArgument("prompt ID is required")
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can resolve reroll prompts")
	}

	if input.Choice == ChoiceDefer {
		return &ResolveChoiceOutput{Deferred: true}, nil
	}

	cls, ok := input.Choice.classification()
	if !ok {
		return nil, errors.InvalidArgumentf("unknown choice %q", input.Choice)
	}

	pending, err := o.consumePrompt(input.PromptID)
	if err != nil {
		return nil, err
	}

	o.actorLocks.Lock(pending.actorID)
	defer o.actorLocks.Unlock(pending.actorID)

	counters, err := o.loadOrCreate(ctx, pending.actorID)
	if err != nil {
		o.reopenPrompt(input.PromptID)
		return nil, err
	}

	counters.ApplyReroll(cls)
	if _, err := o.repo.Save(ctx, rollstats.SaveInput{ActorID: pending.actorID, Counters: counters}); err != nil {
		o.reopenPrompt(input.PromptID)
		return nil, errors.Wrap(err, "failed to save counters")
	}

	slog.Info("ambiguous reroll resolved",
		"actor_id", pending.actorID,
		"prompt_id", input.PromptID,
		"choice", input.Choice,
	)

	flags, err := o.loadFlags(ctx)
	if err == nil {
		if actor, aerr := o.gateway.GetCharacter(ctx, pending.actorID); aerr == nil {
			o.report(ctx, actor, counters, flags)
		}
	}

	return &ResolveChoiceOutput{Counters: counters}, nil
}

// AddManualResult records a reroll outcome by hand, bypassing the event
// stream. Used by the macro surface when a roll was missed.
func (o *orchestrator) AddManualResult(ctx context.Context, input *AddManualResultInput) (*AddManualResultOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can record manual results")
	}

	cls, ok := input.Choice.classification()
	if !ok {
		return nil, errors.InvalidArgumentf("unknown choice %q", input.Choice)
	}

	o.actorLocks.Lock(input.ActorID)
	defer o.actorLocks.Unlock(input.ActorID)

	counters, err := o.loadOrCreate(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	counters.ApplyReroll(cls)
	if _, err := o.repo.Save(ctx, rollstats.SaveInput{ActorID: input.ActorID, Counters: counters}); err != nil {
		return nil, errors.Wrap(err, "failed to save counters")
	}

	slog.Info("manual reroll result recorded", "actor_id", input.ActorID, "choice", input.Choice)

	return &AddManualResultOutput{Counters: counters}, nil
}

// ApplyManualCounters validates and saves an edited counters record. The
// editor is the only path that enforces the cross-counter bounds; the
// automatic path can legitimately exceed them when ruleset labels disagree
// with the numeric comparison.
func (o *orchestrator) ApplyManualCounters(ctx context.Context, input *ApplyManualCountersInput) (*ApplyManualCountersOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}
	if input.Counters == nil {
		return nil, errors.InvalidArgument("counters are required")
	}

	if !o.gateway.CurrentUserIsGM(ctx) {
		return nil, errors.PermissionDenied("only the GM can edit reroll data")
	}

	if err := validateCounters(input.Counters); err != nil {
		return nil, err
	}

	o.actorLocks.Lock(input.ActorID)
	defer o.actorLocks.Unlock(input.ActorID)

	counters := input.Counters.Clone()
	if _, err := o.repo.Save(ctx, rollstats.SaveInput{ActorID: input.ActorID, Counters: counters}); err != nil {
		return nil, errors.Wrap(err, "failed to save counters")
	}

	o.rebuildJournalQuietly(ctx)

	return &ApplyManualCountersOutput{Counters: counters}, nil
}

// validateCounters enforces the editor's consistency rules.
func validateCounters(c *entities.RollCounters) error {
	vb := errors.NewValidationBuilder()

	vb.NonNegativeField("rerollCount", c.RerollCount)
	vb.NonNegativeField("betterCount", c.BetterCount)
	vb.NonNegativeField("worseCount", c.WorseCount)
	vb.NonNegativeField("sameCount", c.SameCount)
	vb.NonNegativeField("successCount", c.SuccessCount)
	vb.NonNegativeField("critSuccessCount", c.CritSuccessCount)
	vb.NonNegativeField("critFailCount", c.CritFailCount)

	if c.BetterCount+c.WorseCount+c.SameCount != c.RerollCount {
		vb.Fieldf("rerollCount", "better (%d) + worse (%d) + same (%d) must equal reroll count (%d)",
			c.BetterCount, c.WorseCount, c.SameCount, c.RerollCount)
	}
	if c.SuccessCount+c.CritSuccessCount > c.BetterCount {
		vb.Fieldf("successCount", "success (%d) + critical success (%d) must not exceed better count (%d)",
			c.SuccessCount, c.CritSuccessCount, c.BetterCount)
	}
	if c.CritFailCount > c.WorseCount {
		vb.Fieldf("critFailCount", "critical failures (%d) must not exceed worse count (%d)",
			c.CritFailCount, c.WorseCount)
	}

	return vb.Build()
}

// loadOrCreate implements create-on-write: unknown actors get a
// zero-initialized record.
func (o *orchestrator) loadOrCreate(ctx context.Context, actorID string) (*entities.RollCounters, error) {
	got, err := o.repo.Get(ctx, rollstats.GetInput{ActorID: actorID})
	if err != nil {
		if errors.IsNotFound(err) {
			return entities.NewRollCounters(), nil
		}
		return nil, errors.Wrap(err, "failed to load counters")
	}
	return got.Counters, nil
}

func (o *orchestrator) loadFlags(ctx context.Context) (*worldconfig.Flags, error) {
	got, err := o.config.GetFlags(ctx, worldconfig.GetFlagsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration flags")
	}
	return got.Flags, nil
}

// workbenchVariantActive reports whether the variant hero-point extension
// is active in a non-default mode and the operator has not suppressed the
// bypass.
func (o *orchestrator) workbenchVariantActive(ctx context.Context, flags *worldconfig.Flags) bool {
	if flags.IgnoreWorkbenchVariant {
		return false
	}
	if !o.gateway.ModuleActive(ctx, workbenchModuleID) {
		return false
	}
	mode, err := o.gateway.ModuleSetting(ctx, workbenchModuleID, workbenchHeroPointKey)
	if err != nil {
		// Extension present but unreadable setting: normal control flow.
		return false
	}
	return mode != workbenchDefaultMode
}

func (o *orchestrator) registerPrompt(actor *host.Character, original *int, reroll int) *host.ChoicePrompt {
	promptID := o.idGen.Generate()

	o.promptMu.Lock()
	o.pending[promptID] = &pendingChoice{
		promptID: promptID,
		actorID:  actor.ID,
		original: original,
		reroll:   reroll,
	}
	o.promptMu.Unlock()

	origValue := 0
	if original != nil {
		origValue = *original
	}

	return &host.ChoicePrompt{
		PromptID:  promptID,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Original:  origValue,
		Reroll:    reroll,
		Options:   Choices(),
	}
}

// consumePrompt marks a prompt resolved. Exactly one caller wins; the
// prompt entry stays behind so replays are distinguishable from unknown
// prompt IDs.
func (o *orchestrator) consumePrompt(promptID string) (*pendingChoice, error) {
	o.promptMu.Lock()
	defer o.promptMu.Unlock()

	pending, ok := o.pending[promptID]
	if !ok {
		return nil, errors.NotFoundf("no pending prompt %s", promptID)
	}
	if pending.resolved {
		return nil, errors.FailedPreconditionf("prompt %s was already resolved", promptID)
	}
	pending.resolved = true
	return pending, nil
}

// reopenPrompt undoes consumption when the store write failed, so the GM
// can answer again.
func (o *orchestrator) reopenPrompt(promptID string) {
	o.promptMu.Lock()
	defer o.promptMu.Unlock()
	if pending, ok := o.pending[promptID]; ok {
		pending.resolved = false
	}
}

func validForTracking(actor *host.Character, flags *worldconfig.Flags) bool {
	if actor.Type != host.CharacterTypePlayer {
		return false
	}
	if flags.IgnoreMinion && actor.HasTrait(host.TraitMinion) {
		return false
	}
	return true
}

func hasD20(rolls []host.Roll) bool {
	for _, r := range rolls {
		if r.HasD20() {
			return true
		}
	}
	return false
}
