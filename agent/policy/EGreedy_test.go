package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEGreedyInvalid(t *testing.T) {
	_, err := NewEGreedy(0.1, 0, 1)
	require.Error(t, err)

	_, err = NewEGreedy(-0.1, 3, 1)
	require.Error(t, err)

	_, err = NewEGreedy(1.1, 3, 1)
	require.Error(t, err)
}

func TestGreedySelectsFirstMaximum(t *testing.T) {
	p, err := NewEGreedy(0, 4, 1)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		action, err := p.SelectAction([]float64{0.1, 0.7, 0.7, -1})
		require.NoError(t, err)
		require.Equal(t, 1, action)
	}
}

func TestRandomSelectsAllActions(t *testing.T) {
	const (
		numActions = 6
		draws      = 30000
	)
	p, err := NewEGreedy(1, numActions, 11)
	require.NoError(t, err)

	values := []float64{0, 0, 10, 0, 0, 0}
	counts := make([]int, numActions)
	for i := 0; i < draws; i++ {
		action, err := p.SelectAction(values)
		require.NoError(t, err)
		require.GreaterOrEqual(t, action, 0)
		require.Less(t, action, numActions)
		counts[action]++
	}

	for a, count := range counts {
		frac := float64(count) / draws
		require.InDelta(t, 1.0/numActions, frac, 0.02, "action %v", a)
	}
}

func TestMixedExploration(t *testing.T) {
	const draws = 20000
	p, err := NewEGreedy(0.5, 2, 3)
	require.NoError(t, err)

	greedy := 0
	for i := 0; i < draws; i++ {
		action, err := p.SelectAction([]float64{1, 0})
		require.NoError(t, err)
		if action == 0 {
			greedy++
		}
	}

	// 0.5 greedy plus half of the random draws
	require.InDelta(t, 0.75, float64(greedy)/draws, 0.02)
}

func TestSelectActionInvalidValues(t *testing.T) {
	p, err := NewEGreedy(0, 3, 1)
	require.NoError(t, err)

	_, err = p.SelectAction([]float64{1, 2})
	require.Error(t, err)
}

func TestSetEpsilon(t *testing.T) {
	p, err := NewEGreedy(0.3, 3, 1)
	require.NoError(t, err)
	require.Equal(t, 0.3, p.Epsilon())

	p.SetEpsilon(2)
	require.Equal(t, 1.0, p.Epsilon())

	p.SetEpsilon(-1)
	require.Equal(t, 0.0, p.Epsilon())
}
