package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"github.com/samuelfneumann/gomazesolver/timestep"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	values       *tabular.QTable
	step         timestep.TimeStep
	action       maze.Action
	nextStep     timestep.TimeStep
	learningRate float64
}

// NewQLearner creates a new QLearner struct
//
// values are the action values of the policy to learn
func NewQLearner(values *tabular.QTable, learningRate float64) *QLearner {
	return &QLearner{values: values, learningRate: learningRate}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep is not the first in "+
			"its episode (timestep = %d)", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
	return nil
}

// Observe observes and records any timestep other than the first timestep
func (q *QLearner) Observe(action maze.Action,
	nextStep timestep.TimeStep) error {
	if !action.Valid() {
		return fmt.Errorf("observe: invalid action %v", action)
	}
	q.step = q.nextStep
	q.action = action
	q.nextStep = nextStep
	return nil
}

// Step updates the action value of the last observed transition:
//
//	Q(s, a) += α * (r + γ * max_a' Q(s', a') - Q(s, a))
//
// The terminal state's action values are never updated and so stay at
// zero, which makes the bootstrap term vanish on entering the terminal.
func (q *QLearner) Step() error {
	if q.step.Number+1 != q.nextStep.Number {
		return fmt.Errorf("step: no transition observed")
	}

	state := q.step.Observation
	currentEstimate := q.values.At(state, q.action)

	scale := q.learningRate * q.tdError(currentEstimate)
	q.values.Set(state, q.action, currentEstimate+scale)
	return nil
}

// EndEpisode forgets the transitions recorded during the episode
func (q *QLearner) EndEpisode() {
	q.step = timestep.TimeStep{}
	q.nextStep = timestep.TimeStep{}
}

// TdError returns the TD error of a transition under the current
// action values
func (q *QLearner) TdError(t timestep.Transition) float64 {
	target := t.Reward
	if !t.Terminal {
		target += t.Discount * q.values.Max(t.NextState)
	}
	return target - q.values.At(t.State, t.Action)
}

func (q *QLearner) tdError(currentEstimate float64) float64 {
	maxVal := q.values.Max(q.nextStep.Observation)
	target := q.nextStep.Reward + q.nextStep.Discount*maxVal
	return target - currentEstimate
}

// Values returns the action values being learned
func (q *QLearner) Values() *tabular.QTable {
	return q.values
}
