package pull_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/blindbag/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	pullKeyPrefix         = "pull:"
	sessionPullsKeyPrefix = "session_pulls:"
)

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client  *redis.Client
	config  *Config
	factory recordFactory
}

// NewRedis creates a new Redis-backed pull ledger
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client:  cfg.RedisClient,
		config:  cfg,
		factory: newRecordFactory(cfg),
	}, nil
}

// CreatePullRecord records an item pulled from a session
func (r *redisRepository) CreatePullRecord(ctx context.Context, input *CreatePullRecordInput) (*CreatePullRecordOutput, error) {
	record, err := r.factory.build(input)
	if err != nil {
		return nil, err
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pull record: %w", err)
	}

	pullKey := pullKeyPrefix + record.ID
	sessionPullsKey := sessionPullsKeyPrefix + record.SessionID

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, pullKey, recordJSON, r.config.TTL)
	pipe.RPush(ctx, sessionPullsKey, record.ID)
	if r.config.TTL > 0 {
		pipe.Expire(ctx, sessionPullsKey, r.config.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save pull record: %w", err)
	}

	return &CreatePullRecordOutput{Record: record}, nil
}

// GetPullsForSession retrieves the pull records of a session in pull order
func (r *redisRepository) GetPullsForSession(ctx context.Context, input *GetPullsForSessionInput) (*GetPullsForSessionOutput, error) {
	if input == nil {
		return nil, validateSessionID("")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	pullIDs, err := r.client.LRange(ctx, sessionPullsKeyPrefix+input.SessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pull IDs for session: %w", err)
	}

	if len(pullIDs) == 0 {
		return &GetPullsForSessionOutput{
			Records: []*models.PullRecord{},
		}, nil
	}

	// Fetch every record in one round trip
	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(pullIDs))
	for i, pullID := range pullIDs {
		cmds[i] = pipe.Get(ctx, pullKeyPrefix+pullID)
	}

	// redis.Nil for an expired record is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get pull records: %w", err)
	}

	records := make([]*models.PullRecord, 0, len(pullIDs))
	for i, cmd := range cmds {
		recordJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Record expired, skip it
				continue
			}
			return nil, fmt.Errorf("failed to get pull record %s: %w", pullIDs[i], err)
		}

		var record models.PullRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pull record %s: %w", pullIDs[i], err)
		}

		records = append(records, &record)
	}

	return &GetPullsForSessionOutput{
		Records: records,
	}, nil
}

// DeleteSessionPulls deletes every pull record of a session
func (r *redisRepository) DeleteSessionPulls(ctx context.Context, input *DeleteSessionPullsInput) error {
	if input == nil {
		return validateSessionID("")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return err
	}

	sessionPullsKey := sessionPullsKeyPrefix + input.SessionID
	pullIDs, err := r.client.LRange(ctx, sessionPullsKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get pull IDs for session: %w", err)
	}

	keys := make([]string, 0, len(pullIDs)+1)
	for _, pullID := range pullIDs {
		keys = append(keys, pullKeyPrefix+pullID)
	}
	keys = append(keys, sessionPullsKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session pulls: %w", err)
	}

	return nil
}
