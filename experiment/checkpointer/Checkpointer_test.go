package checkpointer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// recorder records the filenames it is saved to
type recorder struct {
	saved []string
	err   error
}

func (r *recorder) SaveWeights(filename string) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, filename)
	return nil
}

func TestRecord(t *testing.T) {
	r := &recorder{}
	c := NewRecord(r, Fixed("weights.bin"))

	require.NoError(t, c.Checkpoint(ts.Summary{Epoch: 0, Stones: 3}))
	require.Empty(t, r.saved)

	require.NoError(t, c.Checkpoint(ts.Summary{Epoch: 1, Stones: 4,
		NewRecord: true}))
	require.NoError(t, c.Checkpoint(ts.Summary{Epoch: 2, Stones: 7,
		NewRecord: true}))
	require.Equal(t, []string{"weights.bin", "weights.bin"}, r.saved)
}

func TestRecordError(t *testing.T) {
	r := &recorder{err: fmt.Errorf("disk full")}
	c := NewRecord(r, Fixed("weights.bin"))

	err := c.Checkpoint(ts.Summary{NewRecord: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
}

func TestNEpisode(t *testing.T) {
	_, err := NewNEpisode(0, &recorder{}, Fixed("x"))
	require.Error(t, err)

	r := &recorder{}
	c, err := NewNEpisode(3, r, FilenameEnumerator(0, "model", ".bin"))
	require.NoError(t, err)

	for epoch := 0; epoch < 9; epoch++ {
		require.NoError(t, c.Checkpoint(ts.Summary{Epoch: epoch}))
	}
	require.Equal(t, []string{"model0.bin", "model1.bin", "model2.bin"},
		r.saved)
}

func TestFinal(t *testing.T) {
	r := &recorder{}
	c := NewFinal(r, "model.bin")

	var arch []string
	a := NewFinalFunc(func(filename string) error {
		arch = append(arch, filename)
		return nil
	}, "model.json")

	for epoch := 0; epoch < 5; epoch++ {
		s := ts.Summary{Epoch: epoch, Epochs: 5}
		require.NoError(t, c.Checkpoint(s))
		require.NoError(t, a.Checkpoint(s))
	}
	require.Equal(t, []string{"model.bin"}, r.saved)
	require.Equal(t, []string{"model.json"}, arch)
}

func TestFileTimer(t *testing.T) {
	name := FileTimer("checkpoints/model", ".bin")()
	require.True(t, strings.HasPrefix(name, "checkpoints/model-"))
	require.True(t, strings.HasSuffix(name, ".bin"))
}
