package environment

import (
	"testing"

	"github.com/samuelfneumann/gomazesolver/maze"
	ts "github.com/samuelfneumann/gomazesolver/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New([][]int{
		{-1, -1, -100},
		{-100, -1, -1},
		{-100, -100, 0},
	})
	require.NoError(t, err)
	return m
}

func TestMazeEpisode(t *testing.T) {
	m := mustMaze(t)
	start, err := NewSingleStart(m, maze.State{Row: 0, Col: 0})
	require.NoError(t, err)

	env, step, err := NewMaze(m, start, NewStepLimit(100), 0.9)
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, maze.State{Row: 0, Col: 0}, step.Observation)
	assert.Equal(t, 0.9, env.Discount())

	// Walking into a wall stays in place
	step, last, err := env.Step(maze.Down)
	require.NoError(t, err)
	assert.False(t, last)
	assert.Equal(t, maze.State{Row: 0, Col: 0}, step.Observation)
	assert.Equal(t, -1.0, step.Reward)
	assert.Equal(t, 1, step.Number)

	for _, a := range []maze.Action{maze.Right, maze.Down, maze.Right} {
		step, last, err = env.Step(a)
		require.NoError(t, err)
		assert.False(t, last)
	}

	step, last, err = env.Step(maze.Down)
	require.NoError(t, err)
	assert.True(t, last)
	assert.True(t, step.Last())
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.Equal(t, 0.0, step.Reward)
	assert.Equal(t, step, env.CurrentTimeStep())

	_, _, err = env.Step(maze.Up)
	assert.Error(t, err)

	step, err = env.Reset()
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, 0, step.Number)
}

func TestStepLimit(t *testing.T) {
	m := mustMaze(t)
	start, err := NewSingleStart(m, maze.State{Row: 0, Col: 0})
	require.NoError(t, err)

	env, _, err := NewMaze(m, start, NewStepLimit(3), 0.9)
	require.NoError(t, err)

	var step ts.TimeStep
	var last bool
	for i := 0; i < 3; i++ {
		step, last, err = env.Step(maze.Up)
		require.NoError(t, err)
	}
	assert.True(t, last)
	assert.Equal(t, ts.Timeout, step.EndType())
	assert.Equal(t, 3, NewStepLimit(3).Limit())
}

func TestSingleStartInvalid(t *testing.T) {
	m := mustMaze(t)

	_, err := NewSingleStart(m, maze.State{Row: 0, Col: 2})
	assert.Error(t, err)
	_, err = NewSingleStart(m, m.Terminal())
	assert.Error(t, err)
	_, err = NewSingleStart(m, maze.State{Row: -1, Col: 0})
	assert.Error(t, err)
}

func TestUniformStarter(t *testing.T) {
	m := mustMaze(t)
	s, err := NewUniformStarter(m, 10)
	require.NoError(t, err)

	seen := make(map[maze.State]bool)
	for i := 0; i < 500; i++ {
		state := s.Start()
		require.True(t, m.Valid(state))
		require.False(t, m.IsTerminal(state))
		seen[state] = true
	}
	assert.Len(t, seen, 4)

	// Same seed, same starts
	a, _ := NewUniformStarter(m, 3)
	b, _ := NewUniformStarter(m, 3)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Start(), b.Start())
	}
}
