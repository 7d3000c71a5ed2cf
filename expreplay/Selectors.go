package expreplay

import (
	"golang.org/x/exp/rand"
)

// Selector implements functionality for choosing which indices of a
// replay memory are drawn into a batch
type Selector interface {
	// choose selects n indices in [0, size)
	choose(n, size int) []int
}

// uniformSelector is a Selector which selects data from a replay
// memory uniformly randomly, independently and with replacement
type uniformSelector struct {
	rng *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly, with replacement, from a replay memory
func NewUniformSelector(seed uint64) Selector {
	source := rand.NewSource(seed)
	rng := rand.New(source)

	return &uniformSelector{rng: rng}
}

// choose selects n indices at which to draw data from the memory. The
// same index may be selected more than once.
func (u *uniformSelector) choose(n, size int) []int {
	selected := make([]int, n)
	for i := range selected {
		selected[i] = u.rng.Intn(size)
	}
	return selected
}
