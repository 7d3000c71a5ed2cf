// Package agent defines the interfaces through which learning agents
// consume their function approximators
package agent

import (
	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Predictor approximates action values. Given a batch of n states as
// the rows of a matrix, Predict returns an n x Outputs() matrix whose
// row i holds the predicted value of each action in state i.
//
// Predict must not change the Predictor.
type Predictor interface {
	Predict(states mat.Matrix) (*mat.Dense, error)

	// Features returns the number of features in a single state
	Features() int

	// Outputs returns the number of action values predicted per state
	Outputs() int
}

// Trainer is a regression model that can be adapted toward a batch of
// targets. TrainOnBatch performs a single update and returns the loss
// on the batch before the update.
type Trainer interface {
	TrainOnBatch(inputs, targets mat.Matrix) (float64, error)
}

// QFunction is an action-value function approximator which can be both
// queried and trained. It is the only capability a deep Q-learning
// agent requires of its model.
//
// QFunctions are not required to be safe for concurrent use. Predict
// and TrainOnBatch should never be called concurrently on the same
// QFunction.
type QFunction interface {
	Predictor
	Trainer
}

// Persister is a model whose weights can be saved to disk
type Persister interface {
	SaveWeights(filename string) error
}

// Architect is a model which can save a description of its
// architecture to disk
type Architect interface {
	SaveArchitecture(filename string) error
}

// Learner implements a learning algorithm that defines how weights are
// updated.
type Learner interface {
	// Step performs a single update to the learner. It returns the
	// loss of the update and whether an update was performed.
	Step() (float64, bool, error)

	// Observe records a transition of experience
	Observe(t ts.Transition) error
}

// Policy represents a policy that an agent can have. Policies select
// discrete actions given a state observation.
type Policy interface {
	SelectAction(state mat.Vector) (int, error)
}

// Agent is composed of a Learner, which learns weights, and a Policy
// which chooses actions in each state.
type Agent interface {
	Learner
	Policy
}
