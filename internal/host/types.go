// Package host models the virtual-tabletop host as a capability-providing
// collaborator. The tracker never touches host documents directly; it sees
// narrow DTOs validated at the event-router boundary and calls back through
// the Gateway and Prompter interfaces.
package host

import (
	"context"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
)

//go:generate mockgen -destination=mock/mock_gateway.go -package=hostmock github.com/KirkDiggler/reroll-stats/internal/host Gateway,Prompter

// CharacterTypePlayer is the actor type tracked for statistics.
const CharacterTypePlayer = "character"

// TraitMinion marks companion/summon actors excluded by default.
const TraitMinion = "minion"

// Character is the narrow view of a host actor the tracker needs.
type Character struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Traits []string `json:"traits"`
}

// HasTrait reports whether the character carries the given trait.
func (c *Character) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// Die is one die inside a host roll.
type Die struct {
	Faces int `json:"faces"`
}

// Roll is one evaluated roll inside a chat message.
type Roll struct {
	Total int   `json:"total"`
	Dice  []Die `json:"dice"`
}

// HasD20 reports whether the roll contains a twenty-sided die.
func (r Roll) HasD20() bool {
	for _, d := range r.Dice {
		if d.Faces == 20 {
			return true
		}
	}
	return false
}

// RollContext is the game system's flag bag attached to a roll message.
// Outcome is empty when the ruleset supplied no degree of success.
type RollContext struct {
	ActorID  string           `json:"actor"`
	IsReroll bool             `json:"isReroll"`
	Outcome  entities.Outcome `json:"outcome"`
}

// ChatMessage is the roll-completed notification from the host's chat
// stream. Context is nil for messages without system flags.
type ChatMessage struct {
	ID      string       `json:"id"`
	Rolls   []Roll       `json:"rolls"`
	Context *RollContext `json:"context"`
}

// NotifyLevel classifies user-facing notifications.
type NotifyLevel string

// Notification levels.
const (
	NotifyInfo  NotifyLevel = "info"
	NotifyWarn  NotifyLevel = "warn"
	NotifyError NotifyLevel = "error"
)

// ChatReport is a rendered HTML fragment posted to the host chat.
type ChatReport struct {
	Alias string
	HTML  string
}

// ChoiceOption is one selectable answer in a choice prompt.
type ChoiceOption struct {
	Key   string
	Label string
}

// ChoicePrompt presents the fixed set of outcomes for an ambiguous reroll.
// Presentation is fire-and-forget; the answer arrives later through the
// tracker's ResolveChoice operation, keyed by PromptID.
type ChoicePrompt struct {
	PromptID  string
	ActorID   string
	ActorName string
	Original  int
	Reroll    int
	Options   []ChoiceOption
}

// ConfirmRequest asks the privileged user a yes/no question.
type ConfirmRequest struct {
	Title   string
	Message string
}

// OptionRequest asks the privileged user to pick one of several options.
// DefaultKey is returned when the dialog is dismissed, so cancellation is
// distinguishable from a real answer.
type OptionRequest struct {
	Title      string
	Message    string
	Options    []ChoiceOption
	DefaultKey string
}

// Gateway is the tracker's view of the host application.
type Gateway interface {
	// GetCharacter resolves a character by ID; NotFound for unknown IDs
	GetCharacter(ctx context.Context, actorID string) (*Character, error)

	// ResolveToken resolves an on-scene token to its character
	ResolveToken(ctx context.Context, tokenID string) (*Character, error)

	// CurrentUserIsGM reports whether this process acts with GM privileges
	CurrentUserIsGM(ctx context.Context) bool

	// CreateChatMessage posts a rendered report to the host chat
	CreateChatMessage(ctx context.Context, report ChatReport) error

	// UpsertJournal creates or replaces the single-page journal document
	UpsertJournal(ctx context.Context, name, html string) error

	// DeleteJournal removes the journal document; NotFound if absent
	DeleteJournal(ctx context.Context, name string) error

	// Notify surfaces a user-facing notification
	Notify(ctx context.Context, level NotifyLevel, message string)

	// ModuleActive reports whether a third-party extension is enabled
	ModuleActive(ctx context.Context, moduleID string) bool

	// ModuleSetting reads a third-party extension's setting value;
	// NotFound when the module or key is absent
	ModuleSetting(ctx context.Context, moduleID, key string) (string, error)

	// WorldInfo describes the world this process is attached to
	WorldInfo(ctx context.Context) (entities.WorldInfo, entities.SystemInfo)
}

// Prompter obtains human decisions from the privileged user.
type Prompter interface {
	// PresentChoice shows an ambiguous-reroll prompt without blocking
	PresentChoice(ctx context.Context, prompt *ChoicePrompt) error

	// Confirm asks a yes/no question and blocks for the answer
	Confirm(ctx context.Context, req ConfirmRequest) (bool, error)

	// ChooseOption asks a multi-way question and blocks for the answer;
	// a dismissed dialog yields req.DefaultKey
	ChooseOption(ctx context.Context, req OptionRequest) (string, error)
}
