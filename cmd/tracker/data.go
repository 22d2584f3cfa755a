package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/orchestrators/tracker"
)

var backupOutput string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export reroll data",
	Long: `Exports every character's counters as a JSON envelope with world
metadata, suitable for restore.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore reroll data from a backup",
	Long: `Replaces all current reroll data with the backup's contents after
confirmation. Accepts a backup envelope or a bare actor-to-counters
mapping.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "write the backup to this file instead of stdout")
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}

	out, err := a.tracker.Backup(ctx, &tracker.BackupInput{})
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(out.Envelope, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode backup")
	}

	if backupOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}
	if err := os.WriteFile(backupOutput, raw, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write backup to %s", backupOutput)
	}
	cmd.Printf("Backed up %d actor record(s) to %s.\n", len(out.Envelope.Data), backupOutput)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read backup file %s", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	out, err := a.tracker.Restore(ctx, &tracker.RestoreInput{Raw: raw})
	if err != nil {
		return err
	}
	if !out.Confirmed {
		cmd.Println("Cancelled.")
		return nil
	}
	cmd.Printf("Restored %d actor record(s).\n", out.ActorsRestored)
	return nil
}
