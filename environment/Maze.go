package environment

import (
	"fmt"

	"github.com/samuelfneumann/gomazesolver/maze"
	ts "github.com/samuelfneumann/gomazesolver/timestep"
)

// Maze is an episodic Environment over a maze.Maze. Each episode
// begins in a state drawn from a Starter. On every step the agent
// receives the reward of the cell it enters; the episode ends when the
// terminal state is entered or the Ender cuts it off.
type Maze struct {
	Starter
	Ender
	maze *maze.Maze

	discount    float64
	currentStep ts.TimeStep
}

// NewMaze creates a new Maze environment and returns it along with the
// first TimeStep of its first episode
func NewMaze(m *maze.Maze, s Starter, e Ender,
	discount float64) (*Maze, ts.TimeStep, error) {
	env := &Maze{
		Starter:  s,
		Ender:    e,
		maze:     m,
		discount: discount,
	}

	step, err := env.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newMaze: %v", err)
	}
	return env, step, nil
}

// Reset resets the environment to a new starting state
func (m *Maze) Reset() (ts.TimeStep, error) {
	start := m.Start()
	if !m.maze.Valid(start) || m.maze.IsTerminal(start) {
		return ts.TimeStep{}, &maze.IllegalStateError{State: start,
			Reason: "episodes must start in a non-terminal open cell"}
	}

	step := ts.New(ts.First, 0, m.discount, start, 0)
	m.currentStep = step
	return step, nil
}

// Step takes one environmental step given some action
func (m *Maze) Step(action maze.Action) (ts.TimeStep, bool, error) {
	if m.currentStep.Last() {
		return m.currentStep, true, fmt.Errorf("step: episode has ended, " +
			"call Reset")
	}

	next, err := m.maze.Step(m.currentStep.Observation, action)
	if err != nil {
		return ts.TimeStep{}, false, err
	}

	reward := m.maze.Reward(next)
	step := ts.New(ts.Mid, reward, m.discount, next,
		m.currentStep.Number+1)

	var last bool
	if m.maze.IsTerminal(next) {
		step.StepType = ts.Last
		step.SetEnd(ts.TerminalStateReached)
		last = true
	} else if m.Ender != nil {
		last = m.End(&step)
	}

	m.currentStep = step
	return step, last, nil
}

// CurrentTimeStep returns the current TimeStep of the environment
func (m *Maze) CurrentTimeStep() ts.TimeStep {
	return m.currentStep
}

// Discount returns the discount factor of the environment
func (m *Maze) Discount() float64 {
	return m.discount
}

// Maze returns the underlying maze
func (m *Maze) Maze() *maze.Maze {
	return m.maze
}

func (m *Maze) String() string {
	return fmt.Sprintf("Maze | At: %v  |  Goal: %v  |  Size: %d",
		m.currentStep.Observation, m.maze.Terminal(), m.maze.Size())
}
