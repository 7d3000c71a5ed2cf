package expreplay

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// transition returns a transition whose state features all equal id,
// so that transitions can be identified after sampling.
func transition(id float64, features int) ts.Transition {
	state := make([]float64, features)
	next := make([]float64, features)
	for i := range state {
		state[i] = id
		next[i] = id + 0.5
	}
	return ts.Transition{
		State:     mat.NewVecDense(features, state),
		Action:    int(id) % 3,
		Reward:    id,
		NextState: mat.NewVecDense(features, next),
	}
}

func ids(transitions []ts.Transition) []float64 {
	out := make([]float64, len(transitions))
	for i, t := range transitions {
		out[i] = t.State.AtVec(0)
	}
	return out
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 4, 1)
	require.Error(t, err)

	_, err = New(4, 0, 1)
	require.Error(t, err)
}

func TestRememberEvictsOldest(t *testing.T) {
	mem, err := New(3, 2, 1)
	require.NoError(t, err)

	// Insert A, B, C, D: only the three most recent should remain
	for i := 0; i < 4; i++ {
		require.NoError(t, mem.Remember(transition(float64(i), 2)))
	}
	require.Equal(t, 3, mem.Len())
	require.Equal(t, []float64{1, 2, 3}, ids(mem.Transitions()))
	require.Equal(t, 1.0, mem.At(0).State.AtVec(0))
}

func TestRememberBounded(t *testing.T) {
	const capacity = 7
	mem, err := New(capacity, 1, 1)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		require.NoError(t, mem.Remember(transition(float64(i), 1)))
		require.LessOrEqual(t, mem.Len(), capacity)

		// Contents must be the most recent insertions in order
		start := i - capacity + 1
		if start < 0 {
			start = 0
		}
		want := make([]float64, 0, capacity)
		for j := start; j <= i; j++ {
			want = append(want, float64(j))
		}
		require.Equal(t, want, ids(mem.Transitions()))
	}
}

func TestRememberShapeMismatch(t *testing.T) {
	mem, err := New(3, 2, 1)
	require.NoError(t, err)

	err = mem.Remember(transition(1, 3))
	require.Error(t, err)
	require.True(t, IsShapeMismatch(err))
	require.Equal(t, 0, mem.Len())

	bad := transition(1, 2)
	bad.NextState = nil
	err = mem.Remember(bad)
	require.True(t, IsShapeMismatch(err))
}

func TestSampleEmpty(t *testing.T) {
	mem, err := New(3, 2, 1)
	require.NoError(t, err)

	_, err = mem.Sample(1)
	require.Error(t, err)
	require.True(t, IsEmptyMemory(err))
}

func TestSampleInvalidSize(t *testing.T) {
	mem, err := New(3, 2, 1)
	require.NoError(t, err)
	require.NoError(t, mem.Remember(transition(1, 2)))

	_, err = mem.Sample(0)
	require.Error(t, err)
	require.False(t, IsEmptyMemory(err))
}

func TestSampleWithReplacement(t *testing.T) {
	mem, err := New(10, 1, 42)
	require.NoError(t, err)
	for i := 0; i < 15; i++ {
		require.NoError(t, mem.Remember(transition(float64(i), 1)))
	}

	// Only the last ten transitions are valid draws
	valid := make(map[float64]bool)
	for _, id := range ids(mem.Transitions()) {
		valid[id] = true
	}

	// More draws than stored transitions still yields exactly k draws
	batch, err := mem.Sample(100)
	require.NoError(t, err)
	require.Len(t, batch, 100)

	seen := make(map[float64]int)
	for _, id := range ids(batch) {
		require.True(t, valid[id], "sampled evicted transition %v", id)
		seen[id]++
	}

	// With 100 draws over 10 transitions, some transition must repeat
	require.Less(t, len(seen), 100)
}

func TestSampleUniform(t *testing.T) {
	mem, err := New(4, 1, 7)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, mem.Remember(transition(float64(i), 1)))
	}

	const draws = 40000
	batch, err := mem.Sample(draws)
	require.NoError(t, err)

	counts := make(map[float64]int)
	for _, id := range ids(batch) {
		counts[id]++
	}
	require.Len(t, counts, 4)
	for id, count := range counts {
		frac := float64(count) / draws
		require.InDelta(t, 0.25, frac, 0.02, "transition %v", id)
	}
}

func TestSampleSingle(t *testing.T) {
	mem, err := New(5, 2, 3)
	require.NoError(t, err)
	require.NoError(t, mem.Remember(transition(9, 2)))

	batch, err := mem.Sample(3)
	require.NoError(t, err)
	require.Equal(t, []float64{9, 9, 9}, ids(batch))
}

func BenchmarkRememberFull(b *testing.B) {
	mem, err := New(1000, 230, 1)
	if err != nil {
		b.Fatal(err)
	}
	t := transition(1, 230)
	for i := 0; i < b.N; i++ {
		mem.Remember(t)
	}
}
