package environment

import (
	"fmt"

	"github.com/samuelfneumann/gomazesolver/maze"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SingleStart starts every episode in the same state
type SingleStart struct {
	state maze.State
}

// NewSingleStart returns a Starter which always starts at s. The state
// s must be a valid, non-terminal state of m.
func NewSingleStart(m *maze.Maze, s maze.State) (*SingleStart, error) {
	if !m.Valid(s) {
		return nil, fmt.Errorf("newSingleStart: %v is a wall or out of "+
			"bounds", s)
	}
	if m.IsTerminal(s) {
		return nil, fmt.Errorf("newSingleStart: %v is the terminal state", s)
	}
	return &SingleStart{s}, nil
}

// Start returns the starting state
func (s *SingleStart) Start() maze.State {
	return s.state
}

// UniformStarter samples starting states uniformly from the valid,
// non-terminal states of a maze
type UniformStarter struct {
	states []maze.State
	rand   distuv.Categorical
}

// NewUniformStarter returns a new UniformStarter for m whose samples
// are drawn using a source seeded with seed
func NewUniformStarter(m *maze.Maze, seed uint64) (*UniformStarter, error) {
	var states []maze.State
	for _, s := range m.States() {
		if !m.IsTerminal(s) {
			states = append(states, s)
		}
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("newUniformStarter: maze has no " +
			"non-terminal open cells")
	}

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	source := rand.NewSource(seed)

	return &UniformStarter{
		states: states,
		rand:   distuv.NewCategorical(weights, source),
	}, nil
}

// Start returns a starting state
func (u *UniformStarter) Start() maze.State {
	return u.states[int(u.rand.Rand())]
}
