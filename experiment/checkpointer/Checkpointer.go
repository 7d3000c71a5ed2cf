// Package checkpointer implements functionality for saving models
// during and after an experiment
package checkpointer

import (
	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Persister is an object whose state can be saved to a file
type Persister interface {
	SaveWeights(filename string) error
}

// Checkpointer checkpoints/saves objects based on the summaries of
// finished episodes
type Checkpointer interface {
	Checkpoint(ts.Summary) error
}

// Fixed returns a function which always returns filename, so that each
// checkpoint overwrites the previous one
func Fixed(filename string) func() string {
	return func() string {
		return filename
	}
}
