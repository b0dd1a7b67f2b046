package pull_ledger

import (
	"context"
	"sync"

	"github.com/KirkDiggler/blindbag/internal/models"
)

// memoryRepository implements the Repository interface in process memory
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]*models.PullRecord
	factory  recordFactory
}

// NewMemory creates a new in-memory pull ledger
func NewMemory(cfg *Config) *memoryRepository {
	if cfg == nil {
		cfg = &Config{}
	}

	return &memoryRepository{
		sessions: make(map[string][]*models.PullRecord),
		factory:  newRecordFactory(cfg),
	}
}

// CreatePullRecord records an item pulled from a session
func (r *memoryRepository) CreatePullRecord(ctx context.Context, input *CreatePullRecordInput) (*CreatePullRecordOutput, error) {
	record, err := r.factory.build(input)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[record.SessionID] = append(r.sessions[record.SessionID], record)

	stored := *record
	return &CreatePullRecordOutput{Record: &stored}, nil
}

// GetPullsForSession retrieves the pull records of a session in pull order
func (r *memoryRepository) GetPullsForSession(ctx context.Context, input *GetPullsForSessionInput) (*GetPullsForSessionOutput, error) {
	if input == nil {
		return nil, validateSessionID("")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*models.PullRecord, 0, len(r.sessions[input.SessionID]))
	for _, record := range r.sessions[input.SessionID] {
		copied := *record
		records = append(records, &copied)
	}

	return &GetPullsForSessionOutput{Records: records}, nil
}

// DeleteSessionPulls deletes every pull record of a session
func (r *memoryRepository) DeleteSessionPulls(ctx context.Context, input *DeleteSessionPullsInput) error {
	if input == nil {
		return validateSessionID("")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, input.SessionID)
	return nil
}
