package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gomazesolver/agent"
	"github.com/samuelfneumann/gomazesolver/maze"
)

// Default configuration values
const (
	DefaultLearningRate float64 = 0.1
	DefaultDiscount     float64 = 0.9
	DefaultEpsilon      float64 = 0.1
	DefaultEpsilonDecay float64 = 1.0
	DefaultEpsilonMin   float64 = 0.01
	DefaultEpisodes     int     = 1000
)

// Config represents a configuration for the QLearning agent and its
// training loop
type Config struct {
	LearningRate float64 `yaml:"learning_rate" json:"learning_rate"`
	Discount     float64 `yaml:"discount" json:"discount"`

	// Epsilon is the initial exploration rate of the behaviour policy.
	// After every episode it is multiplied by EpsilonDecay, but never
	// decays below EpsilonMin.
	Epsilon      float64 `yaml:"epsilon" json:"epsilon"`
	EpsilonDecay float64 `yaml:"epsilon_decay" json:"epsilon_decay"`
	EpsilonMin   float64 `yaml:"epsilon_min" json:"epsilon_min"`

	Episodes int `yaml:"episodes" json:"episodes"`

	// MaxStepsPerEpisode cuts episodes off. Zero means 10 * N * N for
	// a maze of side length N.
	MaxStepsPerEpisode int `yaml:"max_steps_per_episode" json:"max_steps_per_episode"`

	// Start fixes the starting state of every episode. If nil, each
	// episode starts in a uniformly random open, non-terminal cell.
	Start *maze.State `yaml:"start,omitempty" json:"start,omitempty"`

	// Tolerance stops training early once an entire episode changes no
	// action value by more than Tolerance. Zero disables early stopping.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
}

// DefaultConfig returns the default Config
func DefaultConfig() Config {
	return Config{
		LearningRate: DefaultLearningRate,
		Discount:     DefaultDiscount,
		Epsilon:      DefaultEpsilon,
		EpsilonDecay: DefaultEpsilonDecay,
		EpsilonMin:   DefaultEpsilonMin,
		Episodes:     DefaultEpisodes,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], have %v",
			c.LearningRate)
	}
	if c.Discount <= 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in (0, 1], have %v", c.Discount)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], have %v", c.Epsilon)
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return fmt.Errorf("minimum epsilon must be in [0, %v], have %v",
			c.Epsilon, c.EpsilonMin)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("epsilon decay must be in (0, 1], have %v",
			c.EpsilonDecay)
	}
	if c.Episodes < 1 {
		return fmt.Errorf("episodes must be at least 1, have %v", c.Episodes)
	}
	if c.MaxStepsPerEpisode < 0 {
		return fmt.Errorf("max steps per episode cannot be negative, "+
			"have %v", c.MaxStepsPerEpisode)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, have %v",
			c.Tolerance)
	}
	return nil
}

// StepLimit returns the maximum number of steps in an episode on a
// maze of side length size
func (c Config) StepLimit(size int) int {
	if c.MaxStepsPerEpisode > 0 {
		return c.MaxStepsPerEpisode
	}
	return 10 * size * size
}

// Schedule returns the exploration schedule described by the Config
func (c Config) Schedule() Schedule {
	if c.EpsilonDecay == 1 {
		return Constant(c.Epsilon)
	}
	return ExponentialDecay{
		Initial: c.Epsilon,
		Rate:    c.EpsilonDecay,
		Min:     c.EpsilonMin,
	}
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero.
func (c Config) CreateAgent(m *maze.Maze, seed uint64) (agent.Agent, error) {
	q, err := New(m, c, seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return q, nil
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}
