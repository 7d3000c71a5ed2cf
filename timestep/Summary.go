package timestep

import "fmt"

// Summary reports the outcome of a single training episode. Summaries
// are produced by experiments once an episode ends and are consumed by
// trackers and checkpointers.
type Summary struct {
	Epoch  int
	Epochs int

	Loss   float64 // Cumulative training loss over the episode
	Return float64 // Sum of rewards over the episode
	Steps  int     // Environment steps taken in the episode

	// Environment counters at the end of the episode
	Score  int
	Lines  int
	Stones int

	Wins      int  // Rewarding steps over the whole run so far
	Record    int  // Best stone count seen before this episode
	NewRecord bool // Whether Stones exceeded Record
}

func (s Summary) String() string {
	return fmt.Sprintf("Epoch %04d/%d | Loss %.4f | Score %d | Lines %d | "+
		"Stones %d", s.Epoch, s.Epochs-1, s.Loss, s.Score, s.Lines, s.Stones)
}
