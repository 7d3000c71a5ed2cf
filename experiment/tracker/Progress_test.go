package tracker

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, 10, 4)

	require.True(t, strings.HasPrefix(p.String(), "|          | [0.00% "))

	p.Track(ts.Summary{Stones: 3})
	require.True(t, strings.HasPrefix(p.String(),
		"|██        | [25.00% | record: 3 |"))

	p.Track(ts.Summary{Stones: 1})
	require.True(t, strings.HasPrefix(p.String(),
		"|█████     | [50.00% | record: 3 |"))
	require.Equal(t, 2, strings.Count(out.String(), "\033[K"))

	// Tracking beyond the number of epochs saturates at 100%
	for i := 0; i < 4; i++ {
		p.Track(ts.Summary{Stones: 8})
	}
	require.True(t, strings.HasPrefix(p.String(),
		"|██████████| [100.00% | record: 8 |"))

	require.NoError(t, p.Save())
	require.True(t, strings.HasSuffix(out.String(), "\n"))
}
