// Package qlearning implements the tabular Q-Learning algorithm on
// mazes.
//
// A QLearning agent is made up of a QLearner, which performs the
// Q-Learning update on a table of action values, and an ε-greedy
// behaviour policy over the same table. The exploration rate of the
// behaviour policy follows a Schedule, stepped at the end of every
// episode. Train runs a full training loop and records a per-episode
// Trace.
package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/tabular"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*QLearner
	*EGreedy
	schedule Schedule
	episode  int
	seed     uint64
}

// New creates a new QLearning agent for m with zero-initialized action
// values
func New(m *maze.Maze, c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}

	values := tabular.NewQTable(m.Size())
	schedule := c.Schedule()

	behaviour := NewEGreedy(schedule.Epsilon(0), seed, values)
	learner := NewQLearner(values, c.LearningRate)

	return &QLearning{
		QLearner: learner,
		EGreedy:  behaviour,
		schedule: schedule,
		seed:     seed,
	}, nil
}

// SetSchedule replaces the exploration schedule. The exploration rate
// of the current episode is updated immediately.
func (q *QLearning) SetSchedule(s Schedule) {
	q.schedule = s
	q.SetEpsilon(s.Epsilon(q.episode))
}

// EndEpisode ends the current episode and steps the exploration
// schedule
func (q *QLearning) EndEpisode() {
	q.QLearner.EndEpisode()
	q.episode++
	q.SetEpsilon(q.schedule.Epsilon(q.episode))
}

// Episode returns the number of completed episodes
func (q *QLearning) Episode() int {
	return q.episode
}
