package bag

//go:generate mockgen -package=mocks -destination=mocks/mock_lock_checker.go github.com/KirkDiggler/blindbag/internal/services/bag LockChecker

import "context"

// Service defines the interface for bag operations
type Service interface {
	// CreateBag creates a new empty bag
	CreateBag(ctx context.Context, input *CreateBagInput) (*CreateBagOutput, error)

	// DeleteBag removes a bag that has no active session
	DeleteBag(ctx context.Context, input *DeleteBagInput) (*DeleteBagOutput, error)

	// ListBags returns the bag names of a server in creation order
	ListBags(ctx context.Context, input *ListBagsInput) (*ListBagsOutput, error)

	// AddItems parses a comma separated list and appends the new items
	AddItems(ctx context.Context, input *AddItemsInput) (*AddItemsOutput, error)

	// RemoveItems parses a comma separated list and removes one occurrence of each item
	RemoveItems(ctx context.Context, input *RemoveItemsInput) (*RemoveItemsOutput, error)

	// DropItem removes the item at a zero-based position
	DropItem(ctx context.Context, input *DropItemInput) (*DropItemOutput, error)

	// CheckBag returns the items of a bag
	CheckBag(ctx context.Context, input *CheckBagInput) (*CheckBagOutput, error)
}

// LockChecker reports whether a bag is locked by a running session
type LockChecker interface {
	IsLocked(serverID, bagName string) bool
}
