package tracker

import (
	ts "github.com/samuelfneumann/qtetris/timestep"
)

// summaryTracker tracks a single value from each episode summary
type summaryTracker struct {
	filename string
	value    func(ts.Summary) float64
	data     []float64
}

// Track caches the tracked value of an episode summary
func (s *summaryTracker) Track(summary ts.Summary) {
	s.data = append(s.data, s.value(summary))
}

// Save saves the tracked values of all episodes to disk
func (s *summaryTracker) Save() error {
	return save(s.filename, s.data)
}

// Data returns the values tracked so far
func (s *summaryTracker) Data() []float64 {
	return s.data
}

// NewLoss returns a Tracker which saves the cumulative training loss of
// each episode to filename
func NewLoss(filename string) Tracker {
	return &summaryTracker{
		filename: filename,
		value:    func(s ts.Summary) float64 { return s.Loss },
	}
}

// NewScore returns a Tracker which saves the score of each episode to
// filename
func NewScore(filename string) Tracker {
	return &summaryTracker{
		filename: filename,
		value:    func(s ts.Summary) float64 { return float64(s.Score) },
	}
}

// NewLines returns a Tracker which saves the number of lines cleared in
// each episode to filename
func NewLines(filename string) Tracker {
	return &summaryTracker{
		filename: filename,
		value:    func(s ts.Summary) float64 { return float64(s.Lines) },
	}
}

// NewStones returns a Tracker which saves the number of stones placed
// in each episode to filename
func NewStones(filename string) Tracker {
	return &summaryTracker{
		filename: filename,
		value:    func(s ts.Summary) float64 { return float64(s.Stones) },
	}
}

// NewReturn returns a Tracker which saves the undiscounted return of
// each episode to filename
func NewReturn(filename string) Tracker {
	return &summaryTracker{
		filename: filename,
		value:    func(s ts.Summary) float64 { return s.Return },
	}
}

// NewEpisodeLength returns a Tracker which saves the number of steps in
// each episode to filename
func NewEpisodeLength(filename string) Tracker {
	return &summaryTracker{
		filename: filename,
		value:    func(s ts.Summary) float64 { return float64(s.Steps) },
	}
}
