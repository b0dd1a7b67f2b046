package session

import "context"

// Service defines the interface for blind bag session operations
type Service interface {
	// StartSession shuffles a copy of the bag items and tracks the session
	// under its status message
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// PullItem takes the next item from the session behind a status message
	PullItem(ctx context.Context, input *PullItemInput) (*PullItemOutput, error)

	// EndSession stops the session for a bag and releases the bag lock
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// FindSession resolves a status message to its session
	FindSession(ctx context.Context, input *FindSessionInput) (*FindSessionOutput, error)

	// ListSessions returns the running sessions of a server
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// IsLocked reports whether a session is tracked for the bag
	IsLocked(serverID, bagName string) bool
}
