// Package expreplay implements a bounded experience replay memory
package expreplay

import (
	"fmt"
	"strings"

	"github.com/gammazero/deque"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Memory implements a replay memory holding the most recent transitions
// observed by an agent. Once MaxCapacity transitions are stored, each
// call to Remember removes the single oldest transition, so the memory
// always holds the MaxCapacity most recent transitions in the order
// they were remembered.
//
// Sampling draws uniformly from the current contents with replacement
// and does not depend on insertion order.
//
// Memory is not safe for concurrent use.
type Memory struct {
	transitions *deque.Deque[ts.Transition]
	sampler     Selector

	maxCapacity int
	featureSize int
}

// New returns a new Memory which stores at most maxCapacity transitions
// whose state vectors have featureSize features. The seed determines
// the sequence of indices drawn by Sample.
func New(maxCapacity, featureSize int, seed uint64) (*Memory, error) {
	return NewWithSelector(NewUniformSelector(seed), maxCapacity, featureSize)
}

// NewWithSelector returns a new Memory which uses sampler to choose
// the indices drawn by Sample.
func NewWithSelector(sampler Selector, maxCapacity,
	featureSize int) (*Memory, error) {
	if maxCapacity < 1 {
		return nil, fmt.Errorf("new: maxCapacity must be >= 1")
	}
	if featureSize < 1 {
		return nil, fmt.Errorf("new: featureSize must be >= 1")
	}

	return &Memory{
		transitions: deque.New[ts.Transition](),
		sampler:     sampler,
		maxCapacity: maxCapacity,
		featureSize: featureSize,
	}, nil
}

// Remember appends a transition to the memory, evicting the oldest
// transition if the memory would otherwise exceed its maximum capacity.
//
// Remember only fails if the transition's state vectors do not have the
// feature size the memory was created with.
func (m *Memory) Remember(t ts.Transition) error {
	if t.State == nil || t.State.Len() != m.featureSize {
		return NewShapeMismatch("remember", "state", m.featureSize,
			vecLen(t.State))
	}
	if t.NextState == nil || t.NextState.Len() != m.featureSize {
		return NewShapeMismatch("remember", "next state", m.featureSize,
			vecLen(t.NextState))
	}

	m.transitions.PushBack(t)
	if m.transitions.Len() > m.maxCapacity {
		m.transitions.PopFront()
	}
	return nil
}

// Sample draws k transitions from the memory uniformly randomly with
// replacement. Exactly k transitions are returned even if fewer than k
// transitions are stored; callers wanting at most one draw per stored
// transition should request min(k, Len()).
func (m *Memory) Sample(k int) ([]ts.Transition, error) {
	if m.Len() == 0 {
		return nil, &ExpReplayError{Op: "sample", Err: errEmptyMemory}
	}
	if k < 1 {
		return nil, &ExpReplayError{
			Op:  "sample",
			Err: errors.Errorf("cannot sample %d transitions", k),
		}
	}

	indices := m.sampler.choose(k, m.Len())
	batch := make([]ts.Transition, k)
	for i, index := range indices {
		batch[i] = m.transitions.At(index)
	}
	return batch, nil
}

// At returns the transition at index i, where index 0 holds the oldest
// transition in the memory
func (m *Memory) At(i int) ts.Transition {
	return m.transitions.At(i)
}

// Transitions returns the transitions currently stored, oldest first
func (m *Memory) Transitions() []ts.Transition {
	out := make([]ts.Transition, m.Len())
	for i := range out {
		out[i] = m.transitions.At(i)
	}
	return out
}

// Len returns the current number of transitions in the memory
func (m *Memory) Len() int {
	return m.transitions.Len()
}

// MaxCapacity returns the maximum number of transitions allowed in the
// memory
func (m *Memory) MaxCapacity() int {
	return m.maxCapacity
}

// FeatureSize returns the number of features in the state vectors
// stored in the memory
func (m *Memory) FeatureSize() int {
	return m.featureSize
}

// String returns the string representation of the Memory
func (m *Memory) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Memory | Length: %v  |  Capacity: %v", m.Len(),
		m.MaxCapacity())
	for i := 0; i < m.Len(); i++ {
		fmt.Fprintf(&b, "\n\t%v", m.At(i))
	}
	return b.String()
}

func vecLen(v *mat.VecDense) int {
	if v == nil {
		return 0
	}
	return v.Len()
}
