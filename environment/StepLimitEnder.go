package environment

import ts "github.com/samuelfneumann/qtetris/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit. A limit of 0 never
// ends an episode.
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// End determines whether or not the current episode should be ended
func (s StepLimit) End(t ts.TimeStep) bool {
	return s.episodeSteps > 0 && t.Number >= s.episodeSteps
}
