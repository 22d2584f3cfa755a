package main

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending data migrations",
	Long: `Applies any schema migrations the world has not completed yet. The
watch command runs these automatically on startup; this command exists
to run a previously deferred migration without restarting the stream.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.migrator.Run(context.Background())
}
