package pull_ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/blindbag/internal/repositories/pull_ledger Repository

import (
	"context"
)

// Repository defines the interface for pull record persistence
type Repository interface {
	// CreatePullRecord records an item pulled from a session
	CreatePullRecord(ctx context.Context, input *CreatePullRecordInput) (*CreatePullRecordOutput, error)

	// GetPullsForSession retrieves the pull records of a session in pull order
	GetPullsForSession(ctx context.Context, input *GetPullsForSessionInput) (*GetPullsForSessionOutput, error)

	// DeleteSessionPulls deletes every pull record of a session
	DeleteSessionPulls(ctx context.Context, input *DeleteSessionPullsInput) error
}
