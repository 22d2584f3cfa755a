package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/reroll-stats/internal/errors"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change world-scoped settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the world's tracker settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change world-scoped tracker settings",
	Long: `Updates only the settings whose flags are given; everything else
keeps its stored value.`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

// Config set flag values; only flags the user actually set are applied.
var (
	setOutputToChat    bool
	setIgnoreMinion    bool
	setIgnoreWorkbench bool
	setDebugLevel      string
)

func init() {
	configSetCmd.Flags().BoolVar(&setOutputToChat, "output-to-chat", false, "post stats to chat after every accounted reroll")
	configSetCmd.Flags().BoolVar(&setIgnoreMinion, "ignore-minion", true, "exclude minion-trait characters from tracking")
	configSetCmd.Flags().BoolVar(&setIgnoreWorkbench, "ignore-workbench-variant", false, "track rerolls even when a variant hero point handler is active")
	configSetCmd.Flags().StringVar(&setDebugLevel, "debug-level", "none", "watch loop verbosity (none, error, warn, all)")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}

	got, err := a.configRepo.GetFlags(ctx, worldconfig.GetFlagsInput{})
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(got.Flags, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode flags")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}

	got, err := a.configRepo.GetFlags(ctx, worldconfig.GetFlagsInput{})
	if err != nil {
		return err
	}
	flags := got.Flags

	cmdFlags := cmd.Flags()
	if cmdFlags.Changed("output-to-chat") {
		flags.OutputToChat = setOutputToChat
	}
	if cmdFlags.Changed("ignore-minion") {
		flags.IgnoreMinion = setIgnoreMinion
	}
	if cmdFlags.Changed("ignore-workbench-variant") {
		flags.IgnoreWorkbenchVariant = setIgnoreWorkbench
	}
	if cmdFlags.Changed("debug-level") {
		level := worldconfig.DebugLevel(setDebugLevel)
		switch level {
		case worldconfig.DebugNone, worldconfig.DebugError, worldconfig.DebugWarn, worldconfig.DebugAll:
			flags.DebugLevel = level
		default:
			return errors.InvalidArgumentf("unknown debug level %q", setDebugLevel)
		}
	}

	if _, err := a.configRepo.SaveFlags(ctx, worldconfig.SaveFlagsInput{Flags: flags}); err != nil {
		return err
	}
	cmd.Println("Settings saved.")
	return nil
}
