package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/blindbag/internal/common/clock"
	"github.com/KirkDiggler/blindbag/internal/common/uuid"
	"github.com/KirkDiggler/blindbag/internal/models"
	"github.com/KirkDiggler/blindbag/internal/shuffle"
)

// bagKey identifies a bag across servers
type bagKey struct {
	serverID string
	bagName  string
}

// tracked is a running session. mu guards the queue so that reading and
// popping the front item happen as one step.
type tracked struct {
	mu    sync.Mutex
	info  models.Session
	queue []string
}

// snapshot copies the session state for callers
func (t *tracked) snapshot() *models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := t.info
	info.Remaining = len(t.queue)
	return &info
}

// service implements the Service interface. Every session is indexed by its
// status message and by its bag; both maps change together under mu.
type service struct {
	mu        sync.RWMutex
	byMessage map[string]*tracked
	byBag     map[bagKey]*tracked

	shuffler      shuffle.Shuffler
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		byMessage:     make(map[string]*tracked),
		byBag:         make(map[bagKey]*tracked),
		shuffler:      cfg.Shuffler,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// StartSession shuffles a copy of the bag items and tracks the session
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil || input.ServerID == "" || input.BagName == "" || input.MessageID == "" {
		return nil, ErrInvalidInput
	}

	if len(input.Items) == 0 {
		return nil, ErrEmptyBag
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := bagKey{serverID: input.ServerID, bagName: input.BagName}
	if _, running := s.byBag[key]; running {
		return nil, ErrAlreadyRunning
	}

	if _, used := s.byMessage[input.MessageID]; used {
		return nil, ErrMessageInUse
	}

	queue := make([]string, len(input.Items))
	copy(queue, input.Items)
	s.shuffler.Shuffle(queue)

	t := &tracked{
		info: models.Session{
			ID:        s.uuidGenerator.NewUUID(),
			ServerID:  input.ServerID,
			BagName:   input.BagName,
			ChannelID: input.ChannelID,
			MessageID: input.MessageID,
			Size:      len(queue),
			StartedAt: s.clock.Now(),
		},
		queue: queue,
	}

	s.byBag[key] = t
	s.byMessage[input.MessageID] = t

	slog.Info("session started",
		slog.String("guild", input.ServerID),
		slog.String("bag", input.BagName),
		slog.String("message", input.MessageID),
		slog.Int("items", len(queue)))

	return &StartSessionOutput{
		Session: t.snapshot(),
	}, nil
}

// PullItem takes the front item of the session behind a status message
func (s *service) PullItem(ctx context.Context, input *PullItemInput) (*PullItemOutput, error) {
	if input == nil || input.MessageID == "" {
		return nil, ErrInvalidInput
	}

	s.mu.RLock()
	t, ok := s.byMessage[input.MessageID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if input.BotUserID != "" && input.UserID == input.BotUserID {
		session := t.snapshot()
		return &PullItemOutput{
			Result:    PullResultIgnored,
			Remaining: session.Remaining,
			Session:   session,
		}, nil
	}

	t.mu.Lock()
	if len(t.queue) == 0 {
		info := t.info
		t.mu.Unlock()
		return &PullItemOutput{
			Result:  PullResultEmpty,
			Session: &info,
		}, nil
	}

	item := t.queue[0]
	t.queue = t.queue[1:]
	info := t.info
	info.Remaining = len(t.queue)
	t.mu.Unlock()

	return &PullItemOutput{
		Result:    PullResultItem,
		Item:      item,
		Remaining: info.Remaining,
		Session:   &info,
	}, nil
}

// EndSession removes the session from both indexes, unlocking the bag
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil || input.ServerID == "" || input.BagName == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := bagKey{serverID: input.ServerID, bagName: input.BagName}
	t, ok := s.byBag[key]
	if !ok {
		return nil, ErrSessionNotFound
	}

	delete(s.byBag, key)
	delete(s.byMessage, t.info.MessageID)

	session := t.snapshot()

	slog.Info("session ended",
		slog.String("guild", input.ServerID),
		slog.String("bag", input.BagName),
		slog.Int("remaining", session.Remaining))

	return &EndSessionOutput{
		Session: session,
	}, nil
}

// FindSession resolves a status message to its session
func (s *service) FindSession(ctx context.Context, input *FindSessionInput) (*FindSessionOutput, error) {
	if input == nil || input.MessageID == "" {
		return nil, ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byMessage[input.MessageID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return &FindSessionOutput{
		Session: t.snapshot(),
	}, nil
}

// ListSessions returns the running sessions of a server ordered by bag name
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil || input.ServerID == "" {
		return nil, ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := []*models.Session{}
	for key, t := range s.byBag {
		if key.serverID == input.ServerID {
			sessions = append(sessions, t.snapshot())
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].BagName < sessions[j].BagName
	})

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}

// IsLocked reports whether a session is tracked for the bag
func (s *service) IsLocked(serverID, bagName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byBag[bagKey{serverID: serverID, bagName: bagName}]
	return ok
}
