package shuffle

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_shuffler.go github.com/KirkDiggler/blindbag/internal/shuffle Shuffler

// Shuffler permutes a slice of items in place
type Shuffler interface {
	Shuffle(items []string)
}

// Random shuffles items with a uniformly random permutation
type Random struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the shuffler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new shuffler. Without a seed the generator is seeded from
// crypto/rand, falling back to the clock.
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = newSeed()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Shuffle applies a Fisher-Yates shuffle to items
func (r *Random) Shuffle(items []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(items) - 1; i > 0; i-- {
		j := r.random.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
