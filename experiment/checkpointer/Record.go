package checkpointer

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// record implements checkpointing whenever an episode sets a new
// record
type record struct {
	object   Persister
	filename func() string
}

// NewRecord returns a checkpointer that saves object each time an
// episode summary reports a new record
func NewRecord(object Persister, filename func() string) Checkpointer {
	return &record{object: object, filename: filename}
}

// Checkpoint saves the tracked object if s is a new record
func (r *record) Checkpoint(s ts.Summary) error {
	if !s.NewRecord {
		return nil
	}

	filename := r.filename()
	if err := r.object.SaveWeights(filename); err != nil {
		return errors.Wrap(err, "checkpoint")
	}
	glog.V(1).Infof("saved record checkpoint to %v", filename)
	return nil
}
