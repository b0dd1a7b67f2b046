package models

// Bag is a named, ordered collection of items scoped to a Discord server
type Bag struct {
	// ServerID is the Discord guild the bag belongs to
	ServerID string

	// Name is the bag name, unique per server and matched case-sensitively
	Name string

	// Items holds the bag contents in insertion order
	Items []string
}
