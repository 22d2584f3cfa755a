// Package main is the entry point for the reroll stats tracker CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Hero point reroll statistics tracker",
	Long: `Tracks hero point reroll outcomes per character: whether rerolls came
out better or worse than the original roll and which degree of success
they reached. Consumes roll events exported by the tabletop host and
renders chat and journal reports.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", "", "Redis endpoint (overrides TRACKER_REDIS_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&flagWorld, "world", "", "world ID (overrides TRACKER_WORLD_ID)")
	rootCmd.PersistentFlags().StringVar(&flagSnapshot, "snapshot", "", "world snapshot path (overrides TRACKER_WORLD_SNAPSHOT)")
	rootCmd.PersistentFlags().StringVar(&flagJournalDir, "journal-dir", "", "journal output directory (overrides TRACKER_JOURNAL_DIR)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(configCmd)
}
