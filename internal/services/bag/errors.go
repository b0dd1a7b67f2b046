package bag

// BagError is a custom error type for bag-related errors
type BagError string

// Error implements the error interface
func (e BagError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrBagNotFound      BagError = "bag not found"
	ErrBagAlreadyExists BagError = "bag already exists"
	ErrActiveSession    BagError = "bag has an active session"
	ErrBagEmpty         BagError = "bag is empty"
	ErrIndexOutOfRange  BagError = "index out of range"
	ErrNoValidItems     BagError = "no valid items"
	ErrInvalidName      BagError = "bag name cannot be empty"
	ErrInvalidServer    BagError = "server ID cannot be empty"
	ErrNilConfig        BagError = "config cannot be nil"
	ErrNilLockChecker   BagError = "lock checker cannot be nil"
)
