package worldconfig

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	redisclient "github.com/KirkDiggler/reroll-stats/internal/redis"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client  redisclient.Client
	WorldID string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.WorldID == "" {
		return errors.InvalidArgument("world ID is required")
	}
	return nil
}

type redisRepository struct {
	client  redisclient.Client
	worldID string
}

// NewRedisRepository creates a new Redis repository for world configuration
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client:  cfg.Client,
		worldID: cfg.WorldID,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// GetFlags reads the configuration flags, falling back to defaults
func (r *redisRepository) GetFlags(ctx context.Context, _ GetFlagsInput) (*GetFlagsOutput, error) {
	data, err := r.client.Get(ctx, r.flagsKey()).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetFlagsOutput{Flags: DefaultFlags()}, nil
		}
		return nil, errors.Wrapf(err, "failed to get flags from Redis")
	}

	var flags Flags
	if err := json.Unmarshal([]byte(data), &flags); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal flags")
	}

	return &GetFlagsOutput{Flags: &flags}, nil
}

// SaveFlags persists the configuration flags
func (r *redisRepository) SaveFlags(ctx context.Context, input SaveFlagsInput) (*SaveFlagsOutput, error) {
	if input.Flags == nil {
		return nil, errors.InvalidArgument("flags cannot be nil")
	}

	data, err := json.Marshal(input.Flags)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal flags")
	}

	if err := r.client.Set(ctx, r.flagsKey(), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save flags")
	}

	return &SaveFlagsOutput{}, nil
}

// GetMigrationState reads the one-shot migration completion record
func (r *redisRepository) GetMigrationState(ctx context.Context, _ GetMigrationStateInput) (*GetMigrationStateOutput, error) {
	data, err := r.client.Get(ctx, r.migrationKey()).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetMigrationStateOutput{State: entities.MigrationState{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get migration state from Redis")
	}

	var state entities.MigrationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal migration state")
	}
	if state == nil {
		state = entities.MigrationState{}
	}

	return &GetMigrationStateOutput{State: state}, nil
}

// SaveMigrationState persists the migration completion record
func (r *redisRepository) SaveMigrationState(ctx context.Context, input SaveMigrationStateInput) (*SaveMigrationStateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("state cannot be nil")
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal migration state")
	}

	if err := r.client.Set(ctx, r.migrationKey(), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save migration state")
	}

	return &SaveMigrationStateOutput{}, nil
}

func (r *redisRepository) flagsKey() string {
	return fmt.Sprintf("rollstats:%s:config", r.worldID)
}

func (r *redisRepository) migrationKey() string {
	return fmt.Sprintf("rollstats:%s:migrations", r.worldID)
}
