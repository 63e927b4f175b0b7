package qlearning

import (
	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"github.com/samuelfneumann/gomazesolver/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over a QTable. With
// probability ε an action is selected uniformly at random, otherwise
// the greedy action is selected, with ties broken by action priority.
type EGreedy struct {
	values  *tabular.QTable
	epsilon float64

	// Action probabilities and the distribution over them are reused
	// across calls to SelectAction
	probs []float64
	dist  distuv.Categorical
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected
func NewEGreedy(e float64, seed uint64, values *tabular.QTable) *EGreedy {
	probs := make([]float64, maze.NumActions)
	for i := range probs {
		probs[i] = 1.0 / float64(maze.NumActions)
	}

	return &EGreedy{
		values:  values,
		epsilon: e,
		probs:   probs,
		dist:    distuv.NewCategorical(probs, rand.NewSource(seed)),
	}
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) maze.Action {
	greedyAction := p.values.Greedy(t.Observation)

	// Calculate the ε probability of choosing any action at random,
	// then adjust the probability of choosing the greedy action
	prob := p.epsilon / float64(maze.NumActions)
	for i := range p.probs {
		p.probs[i] = prob
	}
	p.probs[greedyAction] += 1.0 - p.epsilon
	p.dist.ReweightAll(p.probs)

	return maze.Action(p.dist.Rand())
}

// Epsilon returns the current exploration rate
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the exploration rate
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}
