package qlearning

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samuelfneumann/gomazesolver/agent"
	"github.com/samuelfneumann/gomazesolver/environment"
	"github.com/samuelfneumann/gomazesolver/experiment"
	"github.com/samuelfneumann/gomazesolver/experiment/checkpointer"
	"github.com/samuelfneumann/gomazesolver/experiment/trackers"
	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/policy"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"github.com/samuelfneumann/gomazesolver/timestep"
	"github.com/samuelfneumann/gomazesolver/utils/progressbar"
	"gonum.org/v1/gonum/stat"
)

// Trace records per-episode statistics of a training run. Every slice
// has one entry per episode run.
type Trace struct {
	Returns  []float64 // undiscounted episodic returns
	Lengths  []int
	Reached  []bool // whether the episode ended in the terminal state
	Epsilons []float64
}

// Result is the outcome of a training run
type Result struct {
	Q         *tabular.QTable
	Trace     Trace
	Episodes  int
	Converged bool // whether training stopped early within tolerance

	maze *maze.Maze
}

// Policy returns the greedy policy of the learned action values
func (r *Result) Policy() *policy.Policy {
	return policy.FromQTable(r.maze, r.Q)
}

type trainOptions struct {
	trackers        []trackers.Tracker
	checkpointEvery int
	checkpointName  func() string
	schedule        Schedule
	progress        io.Writer
}

// TrainOption configures optional behaviour of Train
type TrainOption func(*trainOptions)

// WithTrackers registers additional Trackers with the training
// experiment. They are saved when training ends.
func WithTrackers(t ...trackers.Tracker) TrainOption {
	return func(o *trainOptions) {
		o.trackers = append(o.trackers, t...)
	}
}

// WithCheckpointer saves the action values every n episodes to the
// files named by filename
func WithCheckpointer(n int, filename func() string) TrainOption {
	return func(o *trainOptions) {
		o.checkpointEvery = n
		o.checkpointName = filename
	}
}

// WithSchedule overrides the exploration schedule described by the
// Config
func WithSchedule(s Schedule) TrainOption {
	return func(o *trainOptions) {
		o.schedule = s
	}
}

// WithProgress draws a progress bar to w while training
func WithProgress(w io.Writer) TrainOption {
	return func(o *trainOptions) {
		o.progress = w
	}
}

// epsilonTracker records the exploration rate of each episode
type epsilonTracker struct {
	agent *QLearning
	data  []float64
}

func (e *epsilonTracker) Track(t timestep.TimeStep) {
	if t.First() {
		e.data = append(e.data, e.agent.Epsilon())
	}
}

func (e *epsilonTracker) Save() error {
	return nil
}

// Train runs Q-Learning on m for c.Episodes episodes, or until an
// episode changes no action value by more than c.Tolerance. Runs are
// reproducible: the same maze, Config and seed always produce the same
// Result. Trackers registered with WithTrackers are saved once
// training ends.
func Train(m *maze.Maze, c Config, seed uint64, logger *slog.Logger,
	opts ...TrainOption) (*Result, error) {
	var conf agent.Config = c
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("train: invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("solver", "q-learning")

	var o trainOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Create the environment
	var starter environment.Starter
	var err error
	if c.Start != nil {
		starter, err = environment.NewSingleStart(m, *c.Start)
	} else {
		starter, err = environment.NewUniformStarter(m, seed+1)
	}
	if err != nil {
		return nil, fmt.Errorf("train: could not create starter: %w", err)
	}
	limit := environment.NewStepLimit(c.StepLimit(m.Size()))
	env, _, err := environment.NewMaze(m, starter, limit, c.Discount)
	if err != nil {
		return nil, fmt.Errorf("train: could not create environment: %w", err)
	}

	// Create the agent
	a, err := conf.CreateAgent(m, seed)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	if !conf.ValidAgent(a) {
		return nil, fmt.Errorf("train: config created an agent of type %T", a)
	}
	q := a.(*QLearning)
	if o.schedule != nil {
		q.SetSchedule(o.schedule)
	}

	// Create the experiment
	returns := trackers.NewReturn("")
	lengths := trackers.NewEpisodeLength("")
	epsilons := &epsilonTracker{agent: q}
	exp := experiment.NewEpisodic(env, q, c.Episodes, returns, lengths,
		epsilons)
	for _, t := range o.trackers {
		exp.Register(t)
	}
	if o.checkpointEvery > 0 {
		check, err := checkpointer.NewNStep(o.checkpointEvery, q.Values(),
			o.checkpointName)
		if err != nil {
			return nil, fmt.Errorf("train: %w", err)
		}
		exp.RegisterCheckpointer(check)
	}

	var bar *progressbar.ManualProgressBar
	if o.progress != nil {
		bar = progressbar.NewManualProgressBar(o.progress, 50, c.Episodes)
		defer bar.Close()
	}

	result := &Result{Q: q.Values(), maze: m}
	exp.AfterEpisode(func() bool {
		episode := exp.Episode() - 1

		// The largest change to any action value is the step size
		// times the largest TD error
		change := c.LearningRate * exp.MaxTdError()

		logger.Debug("episode finished",
			"episode", episode,
			"return", returns.Data()[episode],
			"length", lengths.Data()[episode],
			"reached", lengths.Reached()[episode],
			"epsilon", epsilons.data[episode],
			"max_change", change)

		if bar != nil {
			bar.Increment()
			bar.Display()
		}

		if c.Tolerance > 0 && change <= c.Tolerance {
			result.Converged = true
			return true
		}
		return false
	})

	if err := experiment.RunAndSave(exp); err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	result.Episodes = exp.Episode()
	result.Trace.Returns = returns.Data()
	result.Trace.Lengths = lengths.Data()
	result.Trace.Reached = lengths.Reached()
	result.Trace.Epsilons = epsilons.data

	logger.Info("training finished",
		"episodes", result.Episodes,
		"converged", result.Converged,
		"mean_return", stat.Mean(result.Trace.Returns, nil),
		"reached", countTrue(result.Trace.Reached))

	return result, nil
}

func countTrue(values []bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
