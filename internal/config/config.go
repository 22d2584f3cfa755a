// Package config loads the tracker's runtime configuration from the
// environment. CLI flags override individual values.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/reroll-stats/internal/errors"
)

// Config is the tracker's process-level configuration. World-scoped
// behavior flags live in the world configuration repository instead.
type Config struct {
	// RedisEndpoint is the address of the world state store.
	RedisEndpoint string `env:"TRACKER_REDIS_ENDPOINT" envDefault:"localhost:6379"`

	// WorldID scopes all persisted keys to one world.
	WorldID string `env:"TRACKER_WORLD_ID" envDefault:"default"`

	// SnapshotPath is the world snapshot exported by the host bridge.
	SnapshotPath string `env:"TRACKER_WORLD_SNAPSHOT" envDefault:"world.json"`

	// JournalDir is where journal pages are written.
	JournalDir string `env:"TRACKER_JOURNAL_DIR" envDefault:"journal"`

	// LogLevel is the base slog level (debug, info, warn, error).
	LogLevel string `env:"TRACKER_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment configuration")
	}
	return cfg, nil
}
