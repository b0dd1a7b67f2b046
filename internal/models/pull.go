package models

import (
	"time"
)

// PullRecord records a single item pulled from a session
type PullRecord struct {
	// ID is the unique identifier for the record
	ID string

	// SessionID is the session the item was pulled from
	SessionID string

	// ServerID is the Discord guild of the session
	ServerID string

	// BagName is the bag the session was started from
	BagName string

	// UserID is the Discord user who pulled the item
	UserID string

	// Item is the pulled item
	Item string

	// Timestamp is when the item was pulled
	Timestamp time.Time
}
