package pull_ledger

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/blindbag/internal/common/clock"
	"github.com/KirkDiggler/blindbag/internal/common/uuid"
	"github.com/KirkDiggler/blindbag/internal/models"
)

var (
	// ErrInvalidDriver is returned for an unknown driver name
	ErrInvalidDriver = errors.New("invalid ledger driver")

	// ErrNilRedisClient is returned when the redis driver has no client
	ErrNilRedisClient = errors.New("redis client cannot be nil")
)

// New creates a pull ledger backed by the configured driver
func New(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemory(cfg), nil
	case DriverRedis:
		repo, err := NewRedis(cfg)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDriver, cfg.Driver)
	}
}

// recordFactory builds records with generated ids and timestamps
type recordFactory struct {
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

func newRecordFactory(cfg *Config) recordFactory {
	f := recordFactory{
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}
	if f.clock == nil {
		f.clock = clock.New()
	}
	if f.uuidGenerator == nil {
		f.uuidGenerator = uuid.New()
	}
	return f
}

func (f recordFactory) build(input *CreatePullRecordInput) (*models.PullRecord, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.SessionID == "" {
		return nil, errors.New("session ID is required")
	}

	if input.UserID == "" {
		return nil, errors.New("user ID is required")
	}

	return &models.PullRecord{
		ID:        f.uuidGenerator.NewUUID(),
		SessionID: input.SessionID,
		ServerID:  input.ServerID,
		BagName:   input.BagName,
		UserID:    input.UserID,
		Item:      input.Item,
		Timestamp: f.clock.Now(),
	}, nil
}

func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return errors.New("session ID is required")
	}
	return nil
}
