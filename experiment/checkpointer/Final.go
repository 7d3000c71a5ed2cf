package checkpointer

import (
	"github.com/pkg/errors"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// final implements checkpointing once at the end of an experiment
type final struct {
	save func(filename string) error
	name string
}

// NewFinal returns a checkpointer that saves object after the last
// episode of an experiment
func NewFinal(object Persister, filename string) Checkpointer {
	return &final{save: object.SaveWeights, name: filename}
}

// NewFinalFunc returns a checkpointer that calls save with filename
// after the last episode of an experiment. It can be used with any
// method value of the form func(string) error, such as a model's
// SaveArchitecture.
func NewFinalFunc(save func(filename string) error,
	filename string) Checkpointer {
	return &final{save: save, name: filename}
}

// Checkpoint saves the tracked object if s summarizes the last episode
func (f *final) Checkpoint(s ts.Summary) error {
	if s.Epoch != s.Epochs-1 {
		return nil
	}
	return errors.Wrap(f.save(f.name), "checkpoint")
}
