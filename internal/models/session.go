package models

import (
	"time"
)

// SessionStatus represents the current state of a blind bag session
type SessionStatus string

const (
	// SessionStatusActive indicates the session still has items to pull
	SessionStatusActive SessionStatus = "active"

	// SessionStatusDepleted indicates every item was pulled but the session
	// has not been ended yet, so the bag stays locked
	SessionStatusDepleted SessionStatus = "depleted"
)

// Session is a snapshot of a running blind bag pull session
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// ServerID is the Discord guild the session runs in
	ServerID string

	// BagName is the bag the session was started from
	BagName string

	// ChannelID is the channel holding the status message
	ChannelID string

	// MessageID is the status message people react to
	MessageID string

	// Size is the number of items the session started with
	Size int

	// Remaining is the number of items left to pull
	Remaining int

	// StartedAt is when the session was started
	StartedAt time.Time
}

// Status derives the session status from the remaining count
func (s *Session) Status() SessionStatus {
	if s.Remaining == 0 {
		return SessionStatusDepleted
	}
	return SessionStatusActive
}
