package main

import (
	"log/slog"
	"os"

	"github.com/KirkDiggler/reroll-stats/internal/config"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	"github.com/KirkDiggler/reroll-stats/internal/host"
	"github.com/KirkDiggler/reroll-stats/internal/migrations"
	"github.com/KirkDiggler/reroll-stats/internal/orchestrators/tracker"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/clock"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/reroll-stats/internal/redis"
	rollstats "github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
)

// Persistent flag values; empty means "use the environment".
var (
	flagRedis      string
	flagWorld      string
	flagSnapshot   string
	flagJournalDir string
)

// app is the assembled tracker: configuration, host binding, service, and
// the migration runner, sharing one Redis client.
type app struct {
	cfg        *config.Config
	console    *host.Console
	tracker    tracker.Service
	migrator   *migrations.Runner
	statsRepo  rollstats.Repository
	configRepo worldconfig.Repository
}

// newApp wires the full dependency graph from environment configuration
// with flag overrides applied on top.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	setupLogging(cfg.LogLevel)

	client, err := redisclient.NewClient(cfg.RedisEndpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}

	statsRepo, err := rollstats.NewRedisRepository(&rollstats.Config{
		Client:  client,
		WorldID: cfg.WorldID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create roll stats repository")
	}

	configRepo, err := worldconfig.NewRedisRepository(&worldconfig.Config{
		Client:  client,
		WorldID: cfg.WorldID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create world config repository")
	}

	console, err := host.NewConsole(&host.ConsoleConfig{
		SnapshotPath: cfg.SnapshotPath,
		JournalDir:   cfg.JournalDir,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to attach to world snapshot")
	}

	svc, err := tracker.NewOrchestrator(&tracker.Config{
		RollStatsRepo: statsRepo,
		ConfigRepo:    configRepo,
		Gateway:       console,
		Prompter:      console,
		IDGenerator:   idgen.NewUUID("prompt"),
		Clock:         clock.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracker")
	}

	critFail, err := migrations.NewCritFail(&migrations.CritFailConfig{
		RollStatsRepo: statsRepo,
		Gateway:       console,
		Prompter:      console,
		IDGenerator:   idgen.NewUUID("archive"),
		Clock:         clock.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create crit-fail migration")
	}

	migrator, err := migrations.NewRunner(&migrations.RunnerConfig{
		ConfigRepo: configRepo,
		Gateway:    console,
		Migrations: []migrations.Migration{critFail},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration runner")
	}

	return &app{
		cfg:        cfg,
		console:    console,
		tracker:    svc,
		migrator:   migrator,
		statsRepo:  statsRepo,
		configRepo: configRepo,
	}, nil
}

func applyOverrides(cfg *config.Config) {
	if flagRedis != "" {
		cfg.RedisEndpoint = flagRedis
	}
	if flagWorld != "" {
		cfg.WorldID = flagWorld
	}
	if flagSnapshot != "" {
		cfg.SnapshotPath = flagSnapshot
	}
	if flagJournalDir != "" {
		cfg.JournalDir = flagJournalDir
	}
}

func setupLogging(level string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	})))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// debugLevelToSlog maps the world's persisted debug setting onto the
// process log level for the watch loop.
func debugLevelToSlog(level worldconfig.DebugLevel) slog.Level {
	switch level {
	case worldconfig.DebugAll:
		return slog.LevelDebug
	case worldconfig.DebugWarn:
		return slog.LevelWarn
	case worldconfig.DebugError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
