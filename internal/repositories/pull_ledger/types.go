package pull_ledger

import (
	"time"

	"github.com/KirkDiggler/blindbag/internal/common/clock"
	"github.com/KirkDiggler/blindbag/internal/common/uuid"
	"github.com/KirkDiggler/blindbag/internal/models"
	"github.com/redis/go-redis/v9"
)

// Driver selects the storage backend of the ledger
type Driver string

const (
	// DriverMemory keeps records in process memory
	DriverMemory Driver = "memory"

	// DriverRedis keeps records in Redis
	DriverRedis Driver = "redis"
)

// Config holds configuration for the pull ledger
type Config struct {
	// Driver defaults to DriverMemory
	Driver Driver

	// RedisClient is required for DriverRedis
	RedisClient *redis.Client

	// TTL bounds how long Redis keeps records, zero keeps them until deleted
	TTL time.Duration

	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreatePullRecordInput contains parameters for recording a pull
type CreatePullRecordInput struct {
	SessionID string
	ServerID  string
	BagName   string
	UserID    string
	Item      string
}

// CreatePullRecordOutput contains the created record
type CreatePullRecordOutput struct {
	Record *models.PullRecord
}

// GetPullsForSessionInput contains parameters for listing a session's pulls
type GetPullsForSessionInput struct {
	SessionID string
}

// GetPullsForSessionOutput contains the pull records in pull order
type GetPullsForSessionOutput struct {
	Records []*models.PullRecord
}

// DeleteSessionPullsInput contains parameters for deleting a session's pulls
type DeleteSessionPullsInput struct {
	SessionID string
}
