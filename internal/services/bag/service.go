package bag

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/KirkDiggler/blindbag/internal/models"
)

// serverBags holds the bags of one server
type serverBags struct {
	// names keeps creation order for listing
	names []string
	bags  map[string]*models.Bag
}

// service implements the Service interface with memory-resident bags
type service struct {
	mu      sync.RWMutex
	servers map[string]*serverBags
	locks   LockChecker
}

// New creates a new bag service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Locks == nil {
		return nil, ErrNilLockChecker
	}

	return &service{
		servers: make(map[string]*serverBags),
		locks:   cfg.Locks,
	}, nil
}

// NormalizeName trims surrounding whitespace from a bag name. Matching after
// that is exact and case-sensitive.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ParseItems splits a comma separated list, trims every piece and drops the
// empty ones
func ParseItems(raw string) []string {
	pieces := strings.Split(raw, ",")
	items := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if item := strings.TrimSpace(piece); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// CreateBag creates a new empty bag
func (s *service) CreateBag(ctx context.Context, input *CreateBagInput) (*CreateBagOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	name, err := validateKey(input.ServerID, input.Name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	server, ok := s.servers[input.ServerID]
	if !ok {
		server = &serverBags{bags: make(map[string]*models.Bag)}
		s.servers[input.ServerID] = server
	}

	if _, exists := server.bags[name]; exists {
		return nil, ErrBagAlreadyExists
	}

	server.bags[name] = &models.Bag{
		ServerID: input.ServerID,
		Name:     name,
		Items:    []string{},
	}
	server.names = append(server.names, name)

	slog.Info("bag created", slog.String("guild", input.ServerID), slog.String("bag", name))

	return &CreateBagOutput{Name: name}, nil
}

// DeleteBag removes a bag that has no active session
func (s *service) DeleteBag(ctx context.Context, input *DeleteBagInput) (*DeleteBagOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	name, err := validateKey(input.ServerID, input.Name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	server, bag, err := s.lookup(input.ServerID, name)
	if err != nil {
		return nil, err
	}

	if s.locks.IsLocked(input.ServerID, name) {
		return nil, ErrActiveSession
	}

	delete(server.bags, name)
	for i, n := range server.names {
		if n == name {
			server.names = append(server.names[:i], server.names[i+1:]...)
			break
		}
	}

	slog.Info("bag deleted", slog.String("guild", input.ServerID), slog.String("bag", name))

	return &DeleteBagOutput{
		Name:      name,
		ItemCount: len(bag.Items),
	}, nil
}

// ListBags returns the bag names of a server in creation order
func (s *service) ListBags(ctx context.Context, input *ListBagsInput) (*ListBagsOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	if input.ServerID == "" {
		return nil, ErrInvalidServer
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := []string{}
	if server, ok := s.servers[input.ServerID]; ok {
		names = append(names, server.names...)
	}

	return &ListBagsOutput{Names: names}, nil
}

// AddItems appends the parsed items to a bag. Items the bag already holds,
// including repeats within the same input, are skipped and reported.
func (s *service) AddItems(ctx context.Context, input *AddItemsInput) (*AddItemsOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	name, err := validateKey(input.ServerID, input.Name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, bag, err := s.lookup(input.ServerID, name)
	if err != nil {
		return nil, err
	}

	if s.locks.IsLocked(input.ServerID, name) {
		return nil, ErrActiveSession
	}

	items := ParseItems(input.RawItems)
	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	present := make(map[string]struct{}, len(bag.Items)+len(items))
	for _, item := range bag.Items {
		present[item] = struct{}{}
	}

	output := &AddItemsOutput{
		Added:      []string{},
		Duplicates: []string{},
	}
	for _, item := range items {
		if _, dup := present[item]; dup {
			output.Duplicates = append(output.Duplicates, item)
			continue
		}
		present[item] = struct{}{}
		bag.Items = append(bag.Items, item)
		output.Added = append(output.Added, item)
	}
	output.Total = len(bag.Items)

	return output, nil
}

// RemoveItems removes the first occurrence of each parsed item
func (s *service) RemoveItems(ctx context.Context, input *RemoveItemsInput) (*RemoveItemsOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	name, err := validateKey(input.ServerID, input.Name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, bag, err := s.lookup(input.ServerID, name)
	if err != nil {
		return nil, err
	}

	if s.locks.IsLocked(input.ServerID, name) {
		return nil, ErrActiveSession
	}

	items := ParseItems(input.RawItems)
	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	output := &RemoveItemsOutput{
		Removed: []string{},
		Missing: []string{},
	}
	for _, item := range items {
		idx := indexOf(bag.Items, item)
		if idx < 0 {
			output.Missing = append(output.Missing, item)
			continue
		}
		bag.Items = append(bag.Items[:idx], bag.Items[idx+1:]...)
		output.Removed = append(output.Removed, item)
	}
	output.Total = len(bag.Items)

	return output, nil
}

// DropItem removes the item at a zero-based position
func (s *service) DropItem(ctx context.Context, input *DropItemInput) (*DropItemOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	name, err := validateKey(input.ServerID, input.Name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, bag, err := s.lookup(input.ServerID, name)
	if err != nil {
		return nil, err
	}

	if s.locks.IsLocked(input.ServerID, name) {
		return nil, ErrActiveSession
	}

	if len(bag.Items) == 0 {
		return nil, ErrBagEmpty
	}

	if input.Index < 0 || input.Index >= len(bag.Items) {
		return nil, ErrIndexOutOfRange
	}

	item := bag.Items[input.Index]
	bag.Items = append(bag.Items[:input.Index], bag.Items[input.Index+1:]...)

	return &DropItemOutput{
		Item:  item,
		Index: input.Index,
		Total: len(bag.Items),
	}, nil
}

// CheckBag returns a copy of the bag contents
func (s *service) CheckBag(ctx context.Context, input *CheckBagInput) (*CheckBagOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	name, err := validateKey(input.ServerID, input.Name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, bag, err := s.lookup(input.ServerID, name)
	if err != nil {
		return nil, err
	}

	items := make([]string, len(bag.Items))
	copy(items, bag.Items)

	return &CheckBagOutput{
		Name:  name,
		Items: items,
	}, nil
}

// lookup finds a bag; callers hold the lock
func (s *service) lookup(serverID, name string) (*serverBags, *models.Bag, error) {
	server, ok := s.servers[serverID]
	if !ok {
		return nil, nil, ErrBagNotFound
	}

	bag, ok := server.bags[name]
	if !ok {
		return nil, nil, ErrBagNotFound
	}

	return server, bag, nil
}

func validateKey(serverID, name string) (string, error) {
	if serverID == "" {
		return "", ErrInvalidServer
	}

	name = NormalizeName(name)
	if name == "" {
		return "", ErrInvalidName
	}

	return name, nil
}

func indexOf(items []string, item string) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}
