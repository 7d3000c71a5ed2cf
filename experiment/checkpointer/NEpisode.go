package checkpointer

import (
	"github.com/pkg/errors"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	object   Persister

	// filename returns the filename to save the object in.
	//
	// If each checkpoint should be saved in a separate file with an
	// incremented number as a suffix (e.g. file0.bin, file1.bin, ...,
	// fileK.bin), use FilenameEnumerator. If the filename does not
	// matter, use FileTimer. For example:
	//
	// n := NewNEpisode(10, object, FileTimer("filename", ".bin"))
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints every n episodes
func NewNEpisode(n int, object Persister,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, errors.Errorf("newNEpisode: interval must be "+
			"positive \n\thave(%v)", n)
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the tracked object if the episode number is a
// multiple of the checkpointing interval
func (n *nEpisode) Checkpoint(s ts.Summary) error {
	if (s.Epoch+1)%n.interval == 0 {
		return errors.Wrap(n.object.SaveWeights(n.filename()), "checkpoint")
	}
	return nil
}
