package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  SessionError = "no active session"
	ErrAlreadyRunning   SessionError = "session already running for this bag"
	ErrMessageInUse     SessionError = "message already tracks a session"
	ErrEmptyBag         SessionError = "cannot start a session on an empty bag"
	ErrInvalidInput     SessionError = "server ID, bag name and message ID are required"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilShuffler      SessionError = "shuffler cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
)
