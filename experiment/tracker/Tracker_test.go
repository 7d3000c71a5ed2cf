package tracker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

func TestTrackersSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	summaries := []ts.Summary{
		{Epoch: 0, Loss: 1.5, Return: -1, Steps: 40, Score: 0, Lines: 0,
			Stones: 5},
		{Epoch: 1, Loss: 0.5, Return: 1, Steps: 90, Score: 40, Lines: 1,
			Stones: 11},
	}

	cases := []struct {
		name string
		new  func(string) Tracker
		want []float64
	}{
		{"loss", NewLoss, []float64{1.5, 0.5}},
		{"score", NewScore, []float64{0, 40}},
		{"lines", NewLines, []float64{0, 1}},
		{"stones", NewStones, []float64{5, 11}},
		{"return", NewReturn, []float64{-1, 1}},
		{"length", NewEpisodeLength, []float64{40, 90}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			filename := filepath.Join(dir, c.name+".bin")
			tracker := c.new(filename)
			for _, s := range summaries {
				tracker.Track(s)
			}
			require.NoError(t, tracker.Save())

			data, err := LoadData(filename)
			require.NoError(t, err)
			require.Equal(t, c.want, data)
		})
	}
}

func TestLoadDataMissing(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}

func TestSaveInvalidPath(t *testing.T) {
	tracker := NewLoss(filepath.Join(t.TempDir(), "no", "such", "dir.bin"))
	tracker.Track(ts.Summary{Loss: 1})
	require.Error(t, tracker.Save())
}
