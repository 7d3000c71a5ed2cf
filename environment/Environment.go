// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Environment implements a simulated environment with discrete actions.
// The reward for each action is carried by the TimeStep returned from
// Step, and a TimeStep whose StepType is timestep.Last ends the episode.
type Environment interface {
	// Reset starts a new episode and returns its first TimeStep
	Reset() (ts.TimeStep, error)

	// Observe returns the current observation of the environment. The
	// returned vector is a copy that the caller may keep.
	Observe() *mat.VecDense

	// Step takes an action in the environment and returns the
	// resulting TimeStep along with whether the episode has ended
	Step(action int) (ts.TimeStep, bool, error)

	ObservationSpec() Spec
	ActionSpec() Spec
}

// Counter is an Environment which keeps game statistics for the
// current episode
type Counter interface {
	Score() int
	Lines() int
	StoneCount() int
}

// Ender determines when episodes should be ended independently of the
// environment's own terminal states
type Ender interface {
	End(t ts.TimeStep) bool
}
