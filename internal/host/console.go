package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
)

// ConsoleConfig holds the configuration for the console host.
type ConsoleConfig struct {
	// SnapshotPath is the world snapshot exported by the host-side bridge
	// (actors, tokens, active modules, world metadata).
	SnapshotPath string

	// JournalDir is where journal pages are written as HTML files.
	JournalDir string

	// In and Out default to stdin/stdout.
	In  io.Reader
	Out io.Writer
}

// Validate ensures all required configuration is provided.
func (c *ConsoleConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.SnapshotPath == "" {
		return errors.InvalidArgument("snapshot path is required")
	}
	if c.JournalDir == "" {
		return errors.InvalidArgument("journal directory is required")
	}
	return nil
}

type moduleInfo struct {
	Active   bool              `json:"active"`
	Settings map[string]string `json:"settings"`
}

// worldSnapshot is the on-disk shape of the bridge export.
type worldSnapshot struct {
	World   entities.WorldInfo    `json:"world"`
	System  entities.SystemInfo   `json:"system"`
	GM      bool                  `json:"gm"`
	Actors  []Character           `json:"actors"`
	Tokens  map[string]string     `json:"tokens"`
	Modules map[string]moduleInfo `json:"modules"`
}

// Console implements Gateway and Prompter against a world snapshot file,
// stdout chat, and an HTML journal directory. It is the host binding used
// by the CLI; tests use the generated mocks instead.
type Console struct {
	snapshot   *worldSnapshot
	actorsByID map[string]*Character
	journalDir string
	in         *bufio.Reader
	out        io.Writer
}

// NewConsole loads the world snapshot and returns a console host.
func NewConsole(cfg *ConsoleConfig) (*Console, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	raw, err := os.ReadFile(cfg.SnapshotPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read world snapshot %s", cfg.SnapshotPath)
	}

	var snap worldSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed world snapshot")
	}

	actors := make(map[string]*Character, len(snap.Actors))
	for i := range snap.Actors {
		actors[snap.Actors[i].ID] = &snap.Actors[i]
	}

	in := cfg.In
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	return &Console{
		snapshot:   &snap,
		actorsByID: actors,
		journalDir: cfg.JournalDir,
		in:         bufio.NewReader(in),
		out:        out,
	}, nil
}

// Ensure Console implements both host interfaces
var (
	_ Gateway  = (*Console)(nil)
	_ Prompter = (*Console)(nil)
)

// GetCharacter resolves a character by ID.
func (c *Console) GetCharacter(_ context.Context, actorID string) (*Character, error) {
	if actorID == "" {
		return nil, errors.InvalidArgument("actor ID cannot be empty")
	}
	actor, ok := c.actorsByID[actorID]
	if !ok {
		return nil, errors.NotFoundf("unknown actor %s", actorID)
	}
	return actor, nil
}

// ResolveToken resolves an on-scene token to its character.
func (c *Console) ResolveToken(ctx context.Context, tokenID string) (*Character, error) {
	if tokenID == "" {
		return nil, errors.InvalidArgument("token ID cannot be empty")
	}
	actorID, ok := c.snapshot.Tokens[tokenID]
	if !ok {
		return nil, errors.NotFoundf("unknown token %s", tokenID)
	}
	return c.GetCharacter(ctx, actorID)
}

// CurrentUserIsGM reports whether the snapshot was exported by a GM.
func (c *Console) CurrentUserIsGM(_ context.Context) bool {
	return c.snapshot.GM
}

// CreateChatMessage prints the report to the console chat stream.
func (c *Console) CreateChatMessage(_ context.Context, report ChatReport) error {
	_, err := fmt.Fprintf(c.out, "[chat] %s\n%s\n", report.Alias, report.HTML)
	return err
}

// UpsertJournal writes the journal page as an HTML file.
func (c *Console) UpsertJournal(_ context.Context, name, html string) error {
	if err := os.MkdirAll(c.journalDir, 0o750); err != nil {
		return errors.Wrapf(err, "failed to create journal directory")
	}
	path := c.journalPath(name)
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		return errors.Wrapf(err, "failed to write journal %s", name)
	}
	slog.Debug("journal updated", "name", name, "path", path)
	return nil
}

// DeleteJournal removes the journal file.
func (c *Console) DeleteJournal(_ context.Context, name string) error {
	err := os.Remove(c.journalPath(name))
	if os.IsNotExist(err) {
		return errors.NotFoundf("journal %q not found", name)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to delete journal %s", name)
	}
	return nil
}

// Notify prints a user-facing notification.
func (c *Console) Notify(_ context.Context, level NotifyLevel, message string) {
	fmt.Fprintf(c.out, "[%s] %s\n", level, message)
}

// ModuleActive reports whether a third-party extension is enabled.
func (c *Console) ModuleActive(_ context.Context, moduleID string) bool {
	mod, ok := c.snapshot.Modules[moduleID]
	return ok && mod.Active
}

// ModuleSetting reads a third-party extension's setting value.
func (c *Console) ModuleSetting(_ context.Context, moduleID, key string) (string, error) {
	mod, ok := c.snapshot.Modules[moduleID]
	if !ok {
		return "", errors.NotFoundf("module %s not present", moduleID)
	}
	value, ok := mod.Settings[key]
	if !ok {
		return "", errors.NotFoundf("module %s has no setting %s", moduleID, key)
	}
	return value, nil
}

// WorldInfo describes the attached world.
func (c *Console) WorldInfo(_ context.Context) (entities.WorldInfo, entities.SystemInfo) {
	return c.snapshot.World, c.snapshot.System
}

// PresentChoice prints the ambiguous-reroll prompt. The answer arrives
// later via the resolve command; presentation never blocks the event loop.
func (c *Console) PresentChoice(_ context.Context, prompt *ChoicePrompt) error {
	if prompt == nil {
		return errors.InvalidArgument("prompt cannot be nil")
	}
	fmt.Fprintf(c.out, "[prompt %s] %s rerolled %d against original %d with no recorded outcome. Resolve with one of:\n",
		prompt.PromptID, prompt.ActorName, prompt.Reroll, prompt.Original)
	for _, opt := range prompt.Options {
		fmt.Fprintf(c.out, "  tracker resolve %s %s  (%s)\n", prompt.PromptID, opt.Key, opt.Label)
	}
	return nil
}

// Confirm asks a yes/no question on the console.
func (c *Console) Confirm(_ context.Context, req ConfirmRequest) (bool, error) {
	fmt.Fprintf(c.out, "%s\n%s [y/N]: ", req.Title, req.Message)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrapf(err, "failed to read confirmation")
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ChooseOption asks a multi-way question on the console. Empty or
// unrecognized input counts as dismissal and yields the default key.
func (c *Console) ChooseOption(_ context.Context, req OptionRequest) (string, error) {
	fmt.Fprintf(c.out, "%s\n%s\n", req.Title, req.Message)
	for _, opt := range req.Options {
		fmt.Fprintf(c.out, "  %s: %s\n", opt.Key, opt.Label)
	}
	fmt.Fprintf(c.out, "choice [%s]: ", req.DefaultKey)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrapf(err, "failed to read choice")
	}
	answer := strings.TrimSpace(line)
	for _, opt := range req.Options {
		if answer == opt.Key {
			return opt.Key, nil
		}
	}
	return req.DefaultKey, nil
}

func (c *Console) journalPath(name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return filepath.Join(c.journalDir, slug+".html")
}
