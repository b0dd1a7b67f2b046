package shuffle

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleKeepsItems(t *testing.T) {
	s := New(&Config{Seed: 42})

	items := []string{"apple", "banana", "cherry", "date", "elderberry"}
	shuffled := append([]string(nil), items...)
	s.Shuffle(shuffled)

	require.Len(t, shuffled, len(items))

	sortedWant := append([]string(nil), items...)
	sort.Strings(sortedWant)
	sort.Strings(shuffled)
	assert.Equal(t, sortedWant, shuffled)
}

func TestShuffleSameSeedSameOrder(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e", "f"}
	b := append([]string(nil), a...)

	New(&Config{Seed: 7}).Shuffle(a)
	New(&Config{Seed: 7}).Shuffle(b)

	assert.Equal(t, a, b)
}

func TestShuffleHandlesSmallInputs(t *testing.T) {
	s := New(nil)

	var empty []string
	s.Shuffle(empty)
	assert.Empty(t, empty)

	single := []string{"only"}
	s.Shuffle(single)
	assert.Equal(t, []string{"only"}, single)
}

func TestShuffleReachesEveryPermutation(t *testing.T) {
	s := New(&Config{Seed: 1})

	seen := make(map[string]int)
	for i := 0; i < 3000; i++ {
		items := []string{"a", "b", "c"}
		s.Shuffle(items)
		seen[items[0]+items[1]+items[2]]++
	}

	// 3! permutations, each expected ~500 times
	require.Len(t, seen, 6)
	for perm, n := range seen {
		assert.Greater(t, n, 350, "permutation %s is underrepresented", perm)
	}
}
