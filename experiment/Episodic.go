package experiment

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/gomazesolver/agent"
	env "github.com/samuelfneumann/gomazesolver/environment"
	"github.com/samuelfneumann/gomazesolver/experiment/checkpointer"
	"github.com/samuelfneumann/gomazesolver/experiment/trackers"
	ts "github.com/samuelfneumann/gomazesolver/timestep"
)

// Episodic is an Experiment that runs an agent online for a fixed
// number of episodes. No offline evaluation is performed.
//
// If the agent is an agent.TdErrorer, Episodic records the largest
// absolute TD error of each episode, measured before each update.
type Episodic struct {
	env.Environment
	agent.Agent
	maxEpisodes   int
	episode       int
	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer

	maxTdError   float64
	afterEpisode func() bool
}

// NewEpisodic creates and returns a new episodic experiment on a given
// environment with a given agent. The episodes parameter determines
// how many episodes the experiment is run for, and the t parameter
// is a slice of trackers.Tracker which determine what data is saved.
func NewEpisodic(e env.Environment, a agent.Agent, episodes int,
	t ...trackers.Tracker) *Episodic {
	return &Episodic{
		Environment: e,
		Agent:       a,
		maxEpisodes: episodes,
		trackers:    t,
	}
}

// Register registers a trackers.Tracker with an Experiment so that
// data generated during the experiment can be tracked and saved
func (e *Episodic) Register(t trackers.Tracker) {
	e.trackers = append(e.trackers, t)
}

// RegisterCheckpointer registers a checkpointer.Checkpointer with the
// Experiment
func (e *Episodic) RegisterCheckpointer(c checkpointer.Checkpointer) {
	e.checkpointers = append(e.checkpointers, c)
}

// AfterEpisode sets a function which Run calls after every episode.
// If f returns true, Run stops early.
func (e *Episodic) AfterEpisode(f func() bool) {
	e.afterEpisode = f
}

// Episode returns the number of episodes run so far
func (e *Episodic) Episode() int {
	return e.episode
}

// Done returns whether all episodes have been run
func (e *Episodic) Done() bool {
	return e.episode >= e.maxEpisodes
}

// MaxTdError returns the largest absolute TD error seen in the most
// recent episode, or 0 if the agent does not report TD errors
func (e *Episodic) MaxTdError() float64 {
	return e.maxTdError
}

// RunEpisode runs a single episode of the experiment
func (e *Episodic) RunEpisode() error {
	tdErrorer, _ := e.Agent.(agent.TdErrorer)
	e.maxTdError = 0

	step, err := e.Environment.Reset()
	if err != nil {
		return fmt.Errorf("runEpisode: could not reset environment: %w", err)
	}
	if err := e.Agent.ObserveFirst(step); err != nil {
		return fmt.Errorf("runEpisode: %w", err)
	}
	e.track(step)

	for !step.Last() {
		// Select action, step in environment
		action := e.Agent.SelectAction(step)
		next, _, err := e.Environment.Step(action)
		if err != nil {
			return fmt.Errorf("runEpisode: %w", err)
		}

		// Cache the environment step in each Tracker
		e.track(next)

		// Observe the timestep and step the agent
		if err := e.Agent.Observe(action, next); err != nil {
			return fmt.Errorf("runEpisode: %w", err)
		}
		if tdErrorer != nil {
			tdError := tdErrorer.TdError(ts.NewTransition(step, action, next))
			e.maxTdError = math.Max(e.maxTdError, math.Abs(tdError))
		}
		if err := e.Agent.Step(); err != nil {
			return fmt.Errorf("runEpisode: %w", err)
		}
		step = next
	}
	e.Agent.EndEpisode()
	e.episode++

	return e.checkpoint()
}

// Run runs all remaining episodes of the experiment, stopping early if
// the function set with AfterEpisode returns true
func (e *Episodic) Run() error {
	for !e.Done() {
		if err := e.RunEpisode(); err != nil {
			return err
		}
		if e.afterEpisode != nil && e.afterEpisode() {
			return nil
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (e *Episodic) Save() error {
	for _, tracker := range e.trackers {
		if err := tracker.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each Tracker
func (e *Episodic) track(t ts.TimeStep) {
	for _, tracker := range e.trackers {
		tracker.Track(t)
	}
}

// checkpoint checkpoints with every Checkpointer
func (e *Episodic) checkpoint() error {
	for _, c := range e.checkpointers {
		if err := c.Checkpoint(e.episode); err != nil {
			return fmt.Errorf("checkpoint: %v", err)
		}
	}
	return nil
}
