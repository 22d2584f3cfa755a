package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/orchestrators/tracker"
)

var (
	resetAll      bool
	deleteAll     bool
	deleteJournal bool
)

var resetCmd = &cobra.Command{
	Use:   "reset [actorID]",
	Short: "Zero reroll counters",
	Long: `Zeroes one character's counters, or every tracked character's with
--all. Reset characters stay known to the store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReset,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [actorID]",
	Short: "Delete reroll records",
	Long: `Deletes one character's record entirely, or wipes the whole store
with --all. Wiping asks for confirmation and can also remove the stats
journal with --journal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "reset every tracked character")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every record after confirmation")
	deleteCmd.Flags().BoolVar(&deleteJournal, "journal", false, "also delete the stats journal (with --all)")
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if resetAll == (len(args) == 1) {
		return errors.InvalidArgument("provide an actor ID or --all, not both")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	if resetAll {
		out, rerr := a.tracker.ResetAll(ctx, &tracker.ResetAllInput{})
		if rerr != nil {
			return rerr
		}
		cmd.Printf("Reset %d actor(s).\n", out.ActorsReset)
		return nil
	}

	if _, err := a.tracker.ResetActor(ctx, &tracker.ResetActorInput{ActorID: args[0]}); err != nil {
		return err
	}
	cmd.Printf("Reset counters for %s.\n", args[0])
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if deleteAll == (len(args) == 1) {
		return errors.InvalidArgument("provide an actor ID or --all, not both")
	}
	if deleteJournal && !deleteAll {
		return errors.InvalidArgument("--journal requires --all")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	if deleteAll {
		out, derr := a.tracker.DeleteAll(ctx, &tracker.DeleteAllInput{DeleteJournal: deleteJournal})
		if derr != nil {
			return derr
		}
		if !out.Confirmed {
			cmd.Println("Cancelled.")
			return nil
		}
		cmd.Printf("Deleted %d actor record(s).\n", out.ActorsDeleted)
		return nil
	}

	if _, err := a.tracker.DeleteActor(ctx, &tracker.DeleteActorInput{ActorID: args[0]}); err != nil {
		return err
	}
	cmd.Printf("Deleted record for %s.\n", args[0])
	return nil
}
