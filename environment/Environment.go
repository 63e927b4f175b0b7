// Package environment outlines the interfaces and structs needed to run
// episodic agent-environment interaction over a maze
package environment

import (
	"github.com/samuelfneumann/gomazesolver/maze"
	ts "github.com/samuelfneumann/gomazesolver/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() maze.State
}

// Ender determines when episodes should be cut off before the terminal
// state is reached
type Ender interface {
	// End returns whether the episode should end at t. If so, End
	// modifies t so that it is the last step in the episode.
	End(t *ts.TimeStep) bool
}

// Environment implements a simulated episodic environment
type Environment interface {
	// Reset starts a new episode and returns its first TimeStep
	Reset() (ts.TimeStep, error)

	// Step takes an action in the environment, returning the next
	// TimeStep and whether that TimeStep ends the episode
	Step(action maze.Action) (ts.TimeStep, bool, error)

	// CurrentTimeStep returns the most recent TimeStep
	CurrentTimeStep() ts.TimeStep

	// Discount returns the environment's discount factor
	Discount() float64
}
