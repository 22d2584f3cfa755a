package host_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/host"
)

const testSnapshot = `{
	"world": {"id": "world-1", "title": "Test World"},
	"system": {"id": "pf2e", "version": "5.0"},
	"gm": true,
	"actors": [
		{"id": "actor-1", "name": "Amiri", "type": "character", "traits": []},
		{"id": "actor-2", "name": "Eidolon", "type": "character", "traits": ["minion"]}
	],
	"tokens": {"token-9": "actor-1"},
	"modules": {
		"xdy-pf2e-workbench": {"active": true, "settings": {"heroPointHandler": "variant"}}
	}
}`

func newTestConsole(t *testing.T, in string) (*host.Console, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	snapshotPath := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(snapshotPath, []byte(testSnapshot), 0o600))

	out := &bytes.Buffer{}
	console, err := host.NewConsole(&host.ConsoleConfig{
		SnapshotPath: snapshotPath,
		JournalDir:   filepath.Join(dir, "journal"),
		In:           strings.NewReader(in),
		Out:          out,
	})
	require.NoError(t, err)

	return console, out, dir
}

func TestNewConsoleRejectsMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	snapshotPath := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(snapshotPath, []byte("{broken"), 0o600))

	_, err := host.NewConsole(&host.ConsoleConfig{
		SnapshotPath: snapshotPath,
		JournalDir:   dir,
	})

	require.Error(t, err)
	assert.True(t, errors.IsDataLoss(err))
}

func TestGetCharacter(t *testing.T) {
	console, _, _ := newTestConsole(t, "")
	ctx := context.Background()

	actor, err := console.GetCharacter(ctx, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, "Amiri", actor.Name)

	_, err = console.GetCharacter(ctx, "ghost")
	assert.True(t, errors.IsNotFound(err))
}

func TestResolveToken(t *testing.T) {
	console, _, _ := newTestConsole(t, "")
	ctx := context.Background()

	actor, err := console.ResolveToken(ctx, "token-9")
	require.NoError(t, err)
	assert.Equal(t, "actor-1", actor.ID)

	_, err = console.ResolveToken(ctx, "token-404")
	assert.True(t, errors.IsNotFound(err))
}

func TestModuleQueries(t *testing.T) {
	console, _, _ := newTestConsole(t, "")
	ctx := context.Background()

	assert.True(t, console.ModuleActive(ctx, "xdy-pf2e-workbench"))
	assert.False(t, console.ModuleActive(ctx, "some-other-module"))

	mode, err := console.ModuleSetting(ctx, "xdy-pf2e-workbench", "heroPointHandler")
	require.NoError(t, err)
	assert.Equal(t, "variant", mode)

	_, err = console.ModuleSetting(ctx, "xdy-pf2e-workbench", "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestWorldInfo(t *testing.T) {
	console, _, _ := newTestConsole(t, "")

	world, system := console.WorldInfo(context.Background())
	assert.Equal(t, "world-1", world.ID)
	assert.Equal(t, "pf2e", system.ID)
	assert.True(t, console.CurrentUserIsGM(context.Background()))
}

func TestJournalLifecycle(t *testing.T) {
	console, _, dir := newTestConsole(t, "")
	ctx := context.Background()

	require.NoError(t, console.UpsertJournal(ctx, "Reroll Stats", "<h1>Reroll Stats</h1>"))

	path := filepath.Join(dir, "journal", "reroll-stats.html")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Reroll Stats</h1>", string(raw))

	require.NoError(t, console.DeleteJournal(ctx, "Reroll Stats"))

	err = console.DeleteJournal(ctx, "Reroll Stats")
	assert.True(t, errors.IsNotFound(err))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "spelled out", input: "yes\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console, _, _ := newTestConsole(t, tt.input)

			got, err := console.Confirm(context.Background(), host.ConfirmRequest{
				Title:   "Delete everything?",
				Message: "Sure?",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChooseOption(t *testing.T) {
	req := host.OptionRequest{
		Title:      "Pick one",
		Message:    "Choose",
		Options:    []host.ChoiceOption{{Key: "archive", Label: "Archive"}, {Key: "keep", Label: "Keep"}},
		DefaultKey: "defer",
	}

	t.Run("recognized answer is returned", func(t *testing.T) {
		console, _, _ := newTestConsole(t, "archive\n")

		got, err := console.ChooseOption(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "archive", got)
	})

	t.Run("unrecognized answer counts as dismissal", func(t *testing.T) {
		console, _, _ := newTestConsole(t, "whatever\n")

		got, err := console.ChooseOption(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "defer", got)
	})

	t.Run("empty input counts as dismissal", func(t *testing.T) {
		console, _, _ := newTestConsole(t, "\n")

		got, err := console.ChooseOption(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "defer", got)
	})
}

func TestPresentChoiceOutput(t *testing.T) {
	console, out, _ := newTestConsole(t, "")

	err := console.PresentChoice(context.Background(), &host.ChoicePrompt{
		PromptID:  "prompt_1",
		ActorID:   "actor-1",
		ActorName: "Amiri",
		Original:  12,
		Reroll:    9,
		Options:   []host.ChoiceOption{{Key: "worse", Label: "Worse"}},
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "prompt_1")
	assert.Contains(t, out.String(), "Amiri")
	assert.Contains(t, out.String(), "tracker resolve prompt_1 worse")
}

func TestCreateChatMessage(t *testing.T) {
	console, out, _ := newTestConsole(t, "")

	err := console.CreateChatMessage(context.Background(), host.ChatReport{
		Alias: "Reroll Tracker",
		HTML:  "<h2>Reroll Stats for Amiri</h2>",
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "[chat] Reroll Tracker")
	assert.Contains(t, out.String(), "<h2>Reroll Stats for Amiri</h2>")
}
