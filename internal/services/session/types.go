package session

import (
	"github.com/KirkDiggler/blindbag/internal/common/clock"
	"github.com/KirkDiggler/blindbag/internal/common/uuid"
	"github.com/KirkDiggler/blindbag/internal/models"
	"github.com/KirkDiggler/blindbag/internal/shuffle"
)

// PullResult describes what a pull did
type PullResult string

const (
	// PullResultItem indicates an item was taken from the session
	PullResultItem PullResult = "item"

	// PullResultEmpty indicates the session had nothing left to pull
	PullResultEmpty PullResult = "empty"

	// PullResultIgnored indicates the pull came from the bot itself
	PullResultIgnored PullResult = "ignored"
)

// Config holds configuration for the session service
type Config struct {
	// Service dependencies
	Shuffler      shuffle.Shuffler
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	ServerID string
	BagName  string

	// ChannelID is the channel holding the status message
	ChannelID string

	// MessageID is the status message created for the session
	MessageID string

	// Items is a snapshot of the bag contents, it is copied before shuffling
	Items []string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	Session *models.Session
}

// PullItemInput contains parameters for pulling an item
type PullItemInput struct {
	// MessageID is the status message that was reacted to
	MessageID string

	// UserID is the user who reacted
	UserID string

	// BotUserID is the bot's own user ID, its reactions never pull
	BotUserID string
}

// PullItemOutput contains the result of pulling an item
type PullItemOutput struct {
	Result PullResult

	// Item is set when Result is PullResultItem
	Item string

	// Remaining is the number of items left after the pull
	Remaining int

	// Session is a snapshot of the session after the pull
	Session *models.Session
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	ServerID string
	BagName  string
}

// EndSessionOutput contains the session as it was when ended
type EndSessionOutput struct {
	Session *models.Session
}

// FindSessionInput contains parameters for finding a session
type FindSessionInput struct {
	MessageID string
}

// FindSessionOutput contains the session behind a status message
type FindSessionOutput struct {
	Session *models.Session
}

// ListSessionsInput contains parameters for listing sessions
type ListSessionsInput struct {
	ServerID string
}

// ListSessionsOutput contains the running sessions of a server, ordered by bag name
type ListSessionsOutput struct {
	Sessions []*models.Session
}
