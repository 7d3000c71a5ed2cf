package deepq

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/qtetris/agent"
	"github.com/samuelfneumann/qtetris/expreplay"
	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Sampler draws batches of transitions from a replay memory
type Sampler interface {
	Sample(k int) ([]ts.Transition, error)
}

// TargetBuilder constructs supervised training batches for one-step
// Q-learning. For each sampled transition (s, a, r, s', terminal) the
// target row is the model's current prediction for s with only the
// entry for a replaced:
//
//	terminal:     target[a] = r
//	non-terminal: target[a] = r + γ * max_a' Q(s', a')
//
// The same model provides both Q(s, ·) and Q(s', ·). TargetBuilder never
// changes the model.
type TargetBuilder struct {
	model      agent.Predictor
	discount   float64
	features   int
	numActions int
}

// NewTargetBuilder returns a new TargetBuilder which computes targets
// using model with discount factor discount in [0, 1).
func NewTargetBuilder(model agent.Predictor,
	discount float64) (*TargetBuilder, error) {
	if model == nil {
		return nil, fmt.Errorf("newTargetBuilder: nil model")
	}
	if discount < 0 || discount >= 1 {
		return nil, fmt.Errorf("newTargetBuilder: discount must be in "+
			"[0, 1) \n\thave(%v)", discount)
	}
	if model.Features() < 1 {
		return nil, fmt.Errorf("newTargetBuilder: model must have "+
			"positive features \n\thave(%v)", model.Features())
	}
	if model.Outputs() < 1 {
		return nil, fmt.Errorf("newTargetBuilder: model must have "+
			"positive outputs \n\thave(%v)", model.Outputs())
	}

	return &TargetBuilder{
		model:      model,
		discount:   discount,
		features:   model.Features(),
		numActions: model.Outputs(),
	}, nil
}

// Discount returns the discount factor used in the update target
func (t *TargetBuilder) Discount() float64 {
	return t.discount
}

// Build samples k transitions from memory and returns the training
// inputs, a k x features matrix of sampled states, and the training
// targets, a k x actions matrix.
//
// Errors from the memory are returned with their cause intact, so that
// expreplay.IsEmptyMemory reports an empty memory.
func (t *TargetBuilder) Build(memory Sampler, k int) (inputs,
	targets *mat.Dense, err error) {
	transitions, err := memory.Sample(k)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build")
	}
	return t.BuildFrom(transitions)
}

// BuildFrom returns the training inputs and targets for a fixed batch
// of transitions
func (t *TargetBuilder) BuildFrom(transitions []ts.Transition) (inputs,
	targets *mat.Dense, err error) {
	n := len(transitions)
	if n == 0 {
		return nil, nil, fmt.Errorf("buildFrom: no transitions")
	}

	inputs = mat.NewDense(n, t.features, nil)
	var terminal []int
	var nonTerminal []int
	for i, tr := range transitions {
		if tr.State == nil || tr.State.Len() != t.features {
			return nil, nil, expreplay.NewShapeMismatch("buildFrom",
				"state", t.features, stateLen(tr.State))
		}
		if tr.NextState == nil || tr.NextState.Len() != t.features {
			return nil, nil, expreplay.NewShapeMismatch("buildFrom",
				"next state", t.features, stateLen(tr.NextState))
		}
		if tr.Action < 0 || tr.Action >= t.numActions {
			return nil, nil, fmt.Errorf("buildFrom: action out of range "+
				"\n\twant([0, %v)) \n\thave(%v)", t.numActions, tr.Action)
		}

		inputs.SetRow(i, tr.State.RawVector().Data)
		if tr.Terminal {
			terminal = append(terminal, i)
		} else {
			nonTerminal = append(nonTerminal, i)
		}
	}

	// Current action values, copied verbatim into the targets
	targets, err = t.predict(inputs, n)
	if err != nil {
		return nil, nil, err
	}

	for _, i := range terminal {
		tr := transitions[i]
		targets.Set(i, tr.Action, tr.Reward)
	}

	if len(nonTerminal) == 0 {
		return inputs, targets, nil
	}

	nextStates := mat.NewDense(len(nonTerminal), t.features, nil)
	for row, i := range nonTerminal {
		nextStates.SetRow(row, transitions[i].NextState.RawVector().Data)
	}
	nextValues, err := t.predict(nextStates, len(nonTerminal))
	if err != nil {
		return nil, nil, err
	}

	for row, i := range nonTerminal {
		tr := transitions[i]
		maxNext := floats.Max(nextValues.RawRowView(row))
		targets.Set(i, tr.Action, tr.Reward+t.discount*maxNext)
	}

	return inputs, targets, nil
}

// predict returns the model's action values for states, checking that
// the model returned one row of numActions values per state
func (t *TargetBuilder) predict(states *mat.Dense, n int) (*mat.Dense,
	error) {
	values, err := t.model.Predict(states)
	if err != nil {
		return nil, errors.Wrap(err, "predict")
	}

	r, c := values.Dims()
	if c != t.numActions {
		return nil, expreplay.NewShapeMismatch("predict", "action values",
			t.numActions, c)
	}
	if r != n {
		return nil, expreplay.NewShapeMismatch("predict", "predictions", n,
			r)
	}

	// The model may reuse its output buffer across calls
	return mat.DenseCopyOf(values), nil
}

func stateLen(v *mat.VecDense) int {
	if v == nil {
		return 0
	}
	return v.Len()
}
