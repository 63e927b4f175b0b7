package trackers

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gomazesolver/maze"
	ts "github.com/samuelfneumann/gomazesolver/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode returns the timesteps of an episode with n steps after the
// first, each with reward -1
func episode(n int, end ts.EndType) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 0.9, maze.State{}, 0)}
	for i := 1; i <= n; i++ {
		step := ts.New(ts.Mid, -1, 0.9, maze.State{}, i)
		if i == n {
			step.StepType = ts.Last
			step.SetEnd(end)
		}
		steps = append(steps, step)
	}
	return steps
}

func TestTrackers(t *testing.T) {
	dir := t.TempDir()
	returns := NewReturn(filepath.Join(dir, "returns"))
	lengths := NewEpisodeLength(filepath.Join(dir, "lengths"))

	for _, ep := range [][]ts.TimeStep{
		episode(3, ts.TerminalStateReached),
		episode(5, ts.Timeout),
	} {
		for _, step := range ep {
			returns.Track(step)
			lengths.Track(step)
		}
	}

	assert.Equal(t, []float64{-3, -5}, returns.Data())
	assert.Equal(t, []int{3, 5}, lengths.Data())
	assert.Equal(t, []bool{true, false}, lengths.Reached())

	require.NoError(t, returns.Save())
	require.NoError(t, lengths.Save())

	r, err := LoadReturns(filepath.Join(dir, "returns"))
	require.NoError(t, err)
	assert.Equal(t, returns.Data(), r)

	l, err := LoadLengths(filepath.Join(dir, "lengths"))
	require.NoError(t, err)
	assert.Equal(t, lengths.Data(), l)
}

func TestReturnNonSequential(t *testing.T) {
	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, 1, maze.State{}, 0))
	assert.Panics(t, func() {
		r.Track(ts.New(ts.Mid, -1, 1, maze.State{}, 2))
	})
}

func TestInMemorySave(t *testing.T) {
	r := NewReturn("")
	for _, step := range episode(2, ts.TerminalStateReached) {
		r.Track(step)
	}
	assert.NoError(t, r.Save())
	assert.NoError(t, NewEpisodeLength("").Save())
	assert.Equal(t, []float64{-2}, r.Data())

	bad := NewReturn(filepath.Join(t.TempDir(), "missing", "returns"))
	assert.Error(t, bad.Save())
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadReturns(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
