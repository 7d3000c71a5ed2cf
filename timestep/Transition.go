package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transition is a single (s, a, r, s') tuple of experience together with
// a flag denoting whether s' ended the episode. A terminal transition
// has no next-state value to bootstrap from.
type Transition struct {
	State     *mat.VecDense
	Action    int
	Reward    float64
	NextState *mat.VecDense
	Terminal  bool
}

// NewTransition creates a Transition from the TimeStep an action was
// taken in and the TimeStep that followed. The reward and terminal flag
// are taken from next.
//
// The observations are copied so that environments may reuse their
// observation vectors between steps.
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	return Transition{
		State:     mat.VecDenseCopyOf(step.Observation),
		Action:    action,
		Reward:    next.Reward,
		NextState: mat.VecDenseCopyOf(next.Observation),
		Terminal:  next.Last(),
	}
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | Action: %d  |  Reward: %.2f  |  "+
		"Terminal: %v", t.Action, t.Reward, t.Terminal)
}
