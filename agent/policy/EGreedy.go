// Package policy implements action selection policies over a set of
// predicted action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// EGreedy implements an ε-greedy policy over discrete actions. With
// probability ε an action is chosen uniformly at random, otherwise the
// action with the highest value is chosen. Ties are broken in favour of
// the lowest action index.
type EGreedy struct {
	epsilon    float64
	numActions int
	rng        *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected and numActions is
// the number of actions available in each state.
func NewEGreedy(e float64, numActions int, seed uint64) (*EGreedy, error) {
	if numActions < 1 {
		return nil, fmt.Errorf("newEGreedy: numActions must be positive "+
			"\n\twant(>0) \n\thave(%v)", numActions)
	}
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon must be in [0, 1] "+
			"\n\thave(%v)", e)
	}

	source := rand.NewSource(seed)
	return &EGreedy{
		epsilon:    e,
		numActions: numActions,
		rng:        rand.New(source),
	}, nil
}

// SelectAction selects an action given the values of each action in the
// current state
func (p *EGreedy) SelectAction(values []float64) (int, error) {
	if len(values) != p.numActions {
		return 0, fmt.Errorf("selectAction: invalid number of action "+
			"values \n\twant(%v) \n\thave(%v)", p.numActions, len(values))
	}

	if p.rng.Float64() < p.epsilon {
		return p.rng.Intn(p.numActions), nil
	}
	return floats.MaxIdx(values), nil
}

// Epsilon returns the probability of selecting a random action
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the probability of selecting a random action. Values
// outside [0, 1] are clipped.
func (p *EGreedy) SetEpsilon(e float64) {
	switch {
	case e < 0:
		e = 0
	case e > 1:
		e = 1
	}
	p.epsilon = e
}

// NumActions returns the number of actions the policy chooses between
func (p *EGreedy) NumActions() int {
	return p.numActions
}
