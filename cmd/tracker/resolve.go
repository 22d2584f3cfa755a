package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/orchestrators/tracker"
	rollstats "github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats"
)

var resolveAppend string

var resolveCmd = &cobra.Command{
	Use:   "resolve <promptID> <choice>",
	Short: "Answer a pending ambiguous-reroll prompt",
	Long: `Emits a resolve-choice event for the given prompt. Pending prompts
live in the watch process, so the event must reach its stream: pipe the
output into the stream the watch loop is reading, or use --append to
write it to the stream file directly.

Choices: better-critical-success, better-success, better-failure,
worse, critical-failure, same, defer.`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

var addCmd = &cobra.Command{
	Use:   "add <actorID> <choice>",
	Short: "Record a reroll outcome by hand",
	Long: `Records one reroll result directly, bypassing the event stream. Use
this when a reroll happened while the tracker was not watching.

Choices: better-critical-success, better-success, better-failure,
worse, critical-failure, same.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <actorID>",
	Short: "Edit a character's counters directly",
	Long: `Loads the character's counters, applies the given flag overrides,
validates the result, and saves it. Unset flags keep their stored
values. The comparison counters must sum to the reroll count.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

// Edit flag values; only flags the user actually set are applied.
var (
	editOriginal      int
	editClearOriginal bool
	editRerolls       int
	editBetter        int
	editWorse         int
	editSame          int
	editSuccess       int
	editCritSuccess   int
	editCritFail      int
)

func init() {
	resolveCmd.Flags().StringVar(&resolveAppend, "append", "", "append the event to this stream file instead of stdout")

	editCmd.Flags().IntVar(&editOriginal, "original", 0, "pending baseline total")
	editCmd.Flags().BoolVar(&editClearOriginal, "clear-original", false, "clear the pending baseline")
	editCmd.Flags().IntVar(&editRerolls, "rerolls", 0, "total rerolls")
	editCmd.Flags().IntVar(&editBetter, "better", 0, "rerolls that came out better")
	editCmd.Flags().IntVar(&editWorse, "worse", 0, "rerolls that came out worse")
	editCmd.Flags().IntVar(&editSame, "same", 0, "rerolls that tied the original")
	editCmd.Flags().IntVar(&editSuccess, "success", 0, "rerolls that became successes")
	editCmd.Flags().IntVar(&editCritSuccess, "crit-success", 0, "rerolls that became critical successes")
	editCmd.Flags().IntVar(&editCritFail, "crit-fail", 0, "rerolls that became critical failures")
}

func runResolve(cmd *cobra.Command, args []string) error {
	promptID, choice := args[0], args[1]

	payload, err := json.Marshal(resolvePayload{PromptID: promptID, Choice: choice})
	if err != nil {
		return err
	}
	line, err := json.Marshal(eventLine{Type: eventResolveChoice, Payload: payload})
	if err != nil {
		return err
	}

	if resolveAppend == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(line))
		return nil
	}

	f, err := os.OpenFile(resolveAppend, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrapf(err, "failed to open stream file %s", resolveAppend)
	}
	defer func() { _ = f.Close() }()
	if _, err := fmt.Fprintln(f, string(line)); err != nil {
		return errors.Wrap(err, "failed to append resolve event")
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}

	out, err := a.tracker.AddManualResult(ctx, &tracker.AddManualResultInput{
		ActorID: args[0],
		Choice:  tracker.Choice(args[1]),
	})
	if err != nil {
		return err
	}
	cmd.Printf("Recorded. %s now has %d reroll(s).\n", args[0], out.Counters.RerollCount)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	actorID := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}

	counters := entities.NewRollCounters()
	if got, gerr := a.statsRepo.Get(ctx, rollstats.GetInput{ActorID: actorID}); gerr == nil {
		counters = got.Counters
	} else if !errors.IsNotFound(gerr) {
		return gerr
	}

	flags := cmd.Flags()
	if flags.Changed("original") {
		counters.RecordBaseline(editOriginal)
	}
	if editClearOriginal {
		counters.OriginalRoll = nil
	}
	if flags.Changed("rerolls") {
		counters.RerollCount = editRerolls
	}
	if flags.Changed("better") {
		counters.BetterCount = editBetter
	}
	if flags.Changed("worse") {
		counters.WorseCount = editWorse
	}
	if flags.Changed("same") {
		counters.SameCount = editSame
	}
	if flags.Changed("success") {
		counters.SuccessCount = editSuccess
	}
	if flags.Changed("crit-success") {
		counters.CritSuccessCount = editCritSuccess
	}
	if flags.Changed("crit-fail") {
		counters.CritFailCount = editCritFail
	}

	out, err := a.tracker.ApplyManualCounters(ctx, &tracker.ApplyManualCountersInput{
		ActorID:  actorID,
		Counters: counters,
	})
	if err != nil {
		return err
	}
	cmd.Printf("Saved counters for %s: %d reroll(s), %d better / %d worse / %d same.\n",
		actorID, out.Counters.RerollCount, out.Counters.BetterCount, out.Counters.WorseCount, out.Counters.SameCount)
	return nil
}
