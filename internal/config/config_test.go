package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/reroll-stats/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisEndpoint)
	assert.Equal(t, "default", cfg.WorldID)
	assert.Equal(t, "world.json", cfg.SnapshotPath)
	assert.Equal(t, "journal", cfg.JournalDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TRACKER_REDIS_ENDPOINT", "redis:6380")
	t.Setenv("TRACKER_WORLD_ID", "my-campaign")
	t.Setenv("TRACKER_LOG_LEVEL", "debug")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "redis:6380", cfg.RedisEndpoint)
	assert.Equal(t, "my-campaign", cfg.WorldID)
	assert.Equal(t, "debug", cfg.LogLevel)
}
