package bag

// Config holds configuration for the bag service
type Config struct {
	// Locks reports which bags have a running session
	Locks LockChecker
}

// CreateBagInput contains parameters for creating a bag
type CreateBagInput struct {
	ServerID string
	Name     string
}

// CreateBagOutput contains the result of creating a bag
type CreateBagOutput struct {
	// Name is the normalized bag name
	Name string
}

// DeleteBagInput contains parameters for deleting a bag
type DeleteBagInput struct {
	ServerID string
	Name     string
}

// DeleteBagOutput contains the result of deleting a bag
type DeleteBagOutput struct {
	Name string

	// ItemCount is how many items the bag held when it was deleted
	ItemCount int
}

// ListBagsInput contains parameters for listing bags
type ListBagsInput struct {
	ServerID string
}

// ListBagsOutput contains the bag names of a server in creation order
type ListBagsOutput struct {
	Names []string
}

// AddItemsInput contains parameters for adding items to a bag
type AddItemsInput struct {
	ServerID string
	Name     string

	// RawItems is a comma separated list of items
	RawItems string
}

// AddItemsOutput contains the result of adding items
type AddItemsOutput struct {
	// Added are the items appended to the bag, in order
	Added []string

	// Duplicates are the items skipped because the bag already held them
	Duplicates []string

	// Total is the bag size after the add
	Total int
}

// RemoveItemsInput contains parameters for removing items from a bag
type RemoveItemsInput struct {
	ServerID string
	Name     string

	// RawItems is a comma separated list of items
	RawItems string
}

// RemoveItemsOutput contains the result of removing items
type RemoveItemsOutput struct {
	// Removed are the items taken out of the bag
	Removed []string

	// Missing are the requested items the bag did not hold
	Missing []string

	// Total is the bag size after the removal
	Total int
}

// DropItemInput contains parameters for dropping an item by position
type DropItemInput struct {
	ServerID string
	Name     string

	// Index is the zero-based position of the item
	Index int
}

// DropItemOutput contains the result of dropping an item
type DropItemOutput struct {
	Item  string
	Index int
	Total int
}

// CheckBagInput contains parameters for inspecting a bag
type CheckBagInput struct {
	ServerID string
	Name     string
}

// CheckBagOutput contains a copy of the bag contents
type CheckBagOutput struct {
	Name  string
	Items []string
}
