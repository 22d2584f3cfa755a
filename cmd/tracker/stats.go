package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/reroll-stats/internal/orchestrators/tracker"
)

var statsCmd = &cobra.Command{
	Use:   "stats [actorID]",
	Short: "Post reroll stats to chat",
	Long: `Posts one character's reroll statistics to chat, or the combined
totals across all tracked characters when no actor is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Rebuild the stats journal",
	Args:  cobra.NoArgs,
	RunE:  runJournal,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		_, err = a.tracker.ShowActorStats(ctx, &tracker.ShowActorStatsInput{ActorID: args[0]})
		return err
	}
	_, err = a.tracker.ShowCombinedStats(ctx, &tracker.ShowCombinedStatsInput{})
	return err
}

func runJournal(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}

	out, err := a.tracker.RebuildJournal(ctx, &tracker.RebuildJournalInput{})
	if err != nil {
		return err
	}
	cmd.Printf("Journal rebuilt with %d actor(s).\n", out.Actors)
	return nil
}
