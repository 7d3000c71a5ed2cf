package deepq

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/qtetris/agent"
	"github.com/samuelfneumann/qtetris/agent/policy"
	"github.com/samuelfneumann/qtetris/environment"
	"github.com/samuelfneumann/qtetris/expreplay"
	ts "github.com/samuelfneumann/qtetris/timestep"
)

// DeepQ implements the deep Q-learning algorithm. Actions are selected
// ε-greedily with respect to the model's predicted action values, and
// each update trains the model toward one-step Q-learning targets
// computed on a batch drawn from an experience replay memory. The same
// model computes both the predictions and the update targets.
type DeepQ struct {
	model   agent.QFunction
	policy  *policy.EGreedy
	replay  *expreplay.Memory
	targets *TargetBuilder

	features   int
	batchSize  int
	trainEvery int

	// Transitions observed since the last update
	pending int
}

// New creates and returns a new DeepQ agent which learns the action
// values of env with model
func New(env environment.Environment, model agent.QFunction, c Config,
	seed uint64) (*DeepQ, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}

	numActions, err := env.ActionSpec().NumActions()
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}
	if numActions != c.NumActions {
		return nil, expreplay.NewShapeMismatch("new", "environment actions",
			c.NumActions, numActions)
	}
	if model.Outputs() != c.NumActions {
		return nil, expreplay.NewShapeMismatch("new", "model outputs",
			c.NumActions, model.Outputs())
	}

	features := env.ObservationSpec().Len()
	if model.Features() != features {
		return nil, expreplay.NewShapeMismatch("new", "model features",
			features, model.Features())
	}

	p, err := policy.NewEGreedy(c.Epsilon, c.NumActions, seed)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	replay, err := expreplay.New(c.MaxMemory, features, seed+1)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	targets, err := NewTargetBuilder(model, c.Discount)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	return &DeepQ{
		model:      model,
		policy:     p,
		replay:     replay,
		targets:    targets,
		features:   features,
		batchSize:  c.BatchSize,
		trainEvery: c.TrainEvery,
	}, nil
}

// SelectAction returns an action selected ε-greedily in state
func (d *DeepQ) SelectAction(state mat.Vector) (int, error) {
	if state.Len() != d.features {
		return 0, expreplay.NewShapeMismatch("selectAction", "state",
			d.features, state.Len())
	}

	values, err := d.model.Predict(mat.NewDense(1, d.features,
		mat.VecDenseCopyOf(state).RawVector().Data))
	if err != nil {
		return 0, errors.Wrap(err, "selectAction")
	}

	r, c := values.Dims()
	if r != 1 || c != d.policy.NumActions() {
		return 0, expreplay.NewShapeMismatch("selectAction",
			"action values", d.policy.NumActions(), c)
	}

	return d.policy.SelectAction(values.RawRowView(0))
}

// Observe records a transition in the replay memory
func (d *DeepQ) Observe(t ts.Transition) error {
	if err := d.replay.Remember(t); err != nil {
		return errors.Wrap(err, "observe")
	}
	d.pending++
	return nil
}

// Step updates the model once every TrainEvery observed transitions.
// Each update trains on a batch of min(BatchSize, Len) transitions
// drawn with replacement from the replay memory. Step returns the loss
// of the update and whether an update was performed.
func (d *DeepQ) Step() (float64, bool, error) {
	if d.pending < d.trainEvery {
		return 0, false, nil
	}
	d.pending = 0

	k := d.batchSize
	if n := d.replay.Len(); n < k {
		k = n
	}

	inputs, targets, err := d.targets.Build(d.replay, k)
	if err != nil {
		return 0, false, errors.Wrap(err, "step")
	}

	loss, err := d.model.TrainOnBatch(inputs, targets)
	if err != nil {
		return 0, false, errors.Wrap(err, "step")
	}

	if glog.V(2) {
		glog.Infof("trained on batch of %d, loss %.6f", k, loss)
	}
	return loss, true, nil
}

// Epsilon returns the probability of the agent selecting a random
// action
func (d *DeepQ) Epsilon() float64 {
	return d.policy.Epsilon()
}

// SetEpsilon sets the probability of the agent selecting a random
// action
func (d *DeepQ) SetEpsilon(e float64) {
	d.policy.SetEpsilon(e)
}

// Memory returns the agent's replay memory
func (d *DeepQ) Memory() *expreplay.Memory {
	return d.replay
}

func (d *DeepQ) String() string {
	return fmt.Sprintf("DeepQ | ε: %v  |  Batch: %v  |  Train Every: %v  |"+
		"  Memory: %v/%v", d.Epsilon(), d.batchSize, d.trainEvery,
		d.replay.Len(), d.replay.MaxCapacity())
}
