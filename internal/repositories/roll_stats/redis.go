package rollstats

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	redisclient "github.com/KirkDiggler/reroll-stats/internal/redis"
)

const (
	// Error messages
	errActorIDEmpty   = "actor ID cannot be empty"
	errCountersNil    = "counters cannot be nil"
	errArchiveIDEmpty = "archive ID cannot be empty"
	errSnapshotNil    = "snapshot cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client

	// WorldID scopes all keys to one world (the host's save-game container)
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

// NewRedisRepository creates a new Redis repository for reroll counters
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

// Get retrieves one character's counters
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	data, err := r.client.Get(ctx, r.actorKey(input.ActorID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no reroll data for actor %s", input.ActorID)
		}
		return nil, errors.Wrapf(err, "failed to get counters from Redis")
	}

	var counters entities.RollCounters
	if err := json.Unmarshal([]byte(data), &counters); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal counters")
	}

	return &GetOutput{Counters: &counters}, nil
}

// Save upserts one character's counters and indexes the character
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.Counters == nil {
		return nil, errors.InvalidArgument(errCountersNil)
	}

	data, err := json.Marshal(input.Counters)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal counters")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.actorKey(input.ActorID), data, 0)
	pipe.SAdd(ctx, r.indexKey(), input.ActorID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save counters")
	}

	return &SaveOutput{}, nil
}

// List retrieves the counters of every tracked character
func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	actorIDs, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read actor index")
	}

	out := make(entities.RollData, len(actorIDs))
	for _, actorID := range actorIDs {
		data, err := r.client.Get(ctx, r.actorKey(actorID)).Result()
		if err != nil {
			if err == redis.Nil {
				// Index can briefly lead the data on concurrent deletes; skip.
				continue
			}
			return nil, errors.Wrapf(err, "failed to get counters for actor %s", actorID)
		}

		var counters entities.RollCounters
		if err := json.Unmarshal([]byte(data), &counters); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal counters for actor %s", actorID)
		}
		out[actorID] = &counters
	}

	return &ListOutput{Data: out}, nil
}

// Delete removes one character's record entirely
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	deleted, err := r.client.Del(ctx, r.actorKey(input.ActorID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete counters")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("no reroll data for actor %s", input.ActorID)
	}

	if err := r.client.SRem(ctx, r.indexKey(), input.ActorID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to unindex actor")
	}

	return &DeleteOutput{}, nil
}

// ReplaceAll destructively replaces the whole store contents
func (r *redisRepository) ReplaceAll(ctx context.Context, input ReplaceAllInput) (*ReplaceAllOutput, error) {
	if input.Data == nil {
		return nil, errors.InvalidArgument("data cannot be nil")
	}

	existing, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read actor index")
	}

	pipe := r.client.TxPipeline()
	for _, actorID := range existing {
		pipe.Del(ctx, r.actorKey(actorID))
	}
	pipe.Del(ctx, r.indexKey())

	for actorID, counters := range input.Data {
		data, err := json.Marshal(counters)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal counters for actor %s", actorID)
		}
		pipe.Set(ctx, r.actorKey(actorID), data, 0)
		pipe.SAdd(ctx, r.indexKey(), actorID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to replace store contents")
	}

	return &ReplaceAllOutput{Replaced: len(input.Data)}, nil
}

// Archive persists a permanent snapshot under its own key, outside the
// actor index. Used by the schema migration before a reset so no data is
// silently dropped.
func (r *redisRepository) Archive(ctx context.Context, input ArchiveInput) (*ArchiveOutput, error) {
	if input.ArchiveID == "" {
		return nil, errors.InvalidArgument(errArchiveIDEmpty)
	}
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotNil)
	}

	data, err := json.MarshalIndent(input.Snapshot, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	key := fmt.Sprintf("rollstats:%s:archive:%s", r.worldID, input.ArchiveID)
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to archive snapshot")
	}

	return &ArchiveOutput{}, nil
}

func (r *redisRepository) actorKey(actorID string) string {
	return fmt.Sprintf("rollstats:%s:actor:%s", r.worldID, actorID)
}

func (r *redisRepository) indexKey() string {
	return fmt.Sprintf("rollstats:%s:actors", r.worldID)
}
