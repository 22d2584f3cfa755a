package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/reroll-stats/internal/host"
	"github.com/KirkDiggler/reroll-stats/internal/orchestrators/tracker"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
)

var watchCmd = &cobra.Command{
	Use:   "watch [events-file]",
	Short: "Consume the host's roll event stream",
	Long: `Reads roll events as JSON lines from the given file (or stdin) and
routes them through the tracker. Pending migrations run first. A bad
line is logged and skipped; the stream keeps going.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

// eventLine is one JSONL entry from the host bridge. Type selects which
// half of the payload is populated.
type eventLine struct {
	Type    string            `json:"type"`
	Message *host.ChatMessage `json:"message,omitempty"`
	Payload json.RawMessage   `json:"payload,omitempty"`
}

// Event types emitted by the host bridge. Resolve events are also
// produced by the resolve subcommand so a GM can answer prompts while a
// watch loop is reading the stream.
const (
	eventChatMessage   = "chat-message"
	eventSaveResult    = "save-result"
	eventResolveChoice = "resolve-choice"
)

// resolvePayload is the resolve-choice event body.
type resolvePayload struct {
	PromptID string `json:"promptId"`
	Choice   string `json:"choice"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.migrator.Run(ctx); err != nil {
		return err
	}

	// The world's debug setting wins over the process-level default for
	// the long-running loop.
	if flags, ferr := a.configRepo.GetFlags(ctx, worldconfig.GetFlagsInput{}); ferr == nil {
		if flags.Flags.DebugLevel != worldconfig.DebugNone {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: debugLevelToSlog(flags.Flags.DebugLevel),
			})))
		}
	}

	var in io.Reader = os.Stdin
	source := "stdin"
	if len(args) == 1 {
		f, ferr := os.Open(args[0])
		if ferr != nil {
			return ferr
		}
		defer func() { _ = f.Close() }()
		in = f
		source = args[0]
	}

	slog.Info("watching roll events", "source", source, "world", a.cfg.WorldID)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		a.dispatch(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	slog.Info("event stream closed")
	return nil
}

// dispatch routes one event line. Failures abort the line, not the loop.
func (a *app) dispatch(ctx context.Context, line []byte) {
	var event eventLine
	if err := json.Unmarshal(line, &event); err != nil {
		slog.Error("malformed event line, skipping", "error", err)
		return
	}

	switch event.Type {
	case eventChatMessage:
		out, err := a.tracker.HandleChatMessage(ctx, &tracker.HandleChatMessageInput{Message: event.Message})
		if err != nil {
			slog.Error("chat message handling failed", "error", err)
			return
		}
		logAction(out.Action, out.Reason, out.PromptID)
	case eventSaveResult:
		out, err := a.tracker.HandleSaveResult(ctx, &tracker.HandleSaveResultInput{Payload: event.Payload})
		if err != nil {
			slog.Error("save result handling failed", "error", err)
			return
		}
		logAction(out.Action, out.Reason, out.PromptID)
	case eventResolveChoice:
		var payload resolvePayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			slog.Error("malformed resolve event, skipping", "error", err)
			return
		}
		out, err := a.tracker.ResolveChoice(ctx, &tracker.ResolveChoiceInput{
			PromptID: payload.PromptID,
			Choice:   tracker.Choice(payload.Choice),
		})
		if err != nil {
			slog.Error("choice resolution failed", "prompt_id", payload.PromptID, "error", err)
			return
		}
		if out.Deferred {
			slog.Info("choice deferred, prompt stays open", "prompt_id", payload.PromptID)
		}
	default:
		slog.Debug("ignoring unknown event type", "type", event.Type)
	}
}

func logAction(action tracker.Action, reason, promptID string) {
	switch action {
	case tracker.ActionSkipped:
		slog.Debug("event skipped", "reason", reason)
	case tracker.ActionAwaitingChoice:
		slog.Info("awaiting GM choice", "prompt_id", promptID)
	default:
		slog.Debug("event handled", "action", string(action))
	}
}
