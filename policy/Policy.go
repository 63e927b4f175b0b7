// Package policy extracts greedy policies from tabular value sources
// and rolls them out over a maze.
//
// A Policy maps every valid, non-terminal state of a maze to a single
// action. Policies are derived either from a state-value function, by a
// one-step lookahead through the maze's transition model, or directly
// from a state-action value table. In both cases ties between equally
// valued actions are broken by the fixed action priority
// Up < Down < Left < Right, so that extraction is deterministic.
package policy

import (
	"strings"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"github.com/samuelfneumann/gomazesolver/utils/floatutils"
)

// Policy is a deterministic mapping from states to actions
type Policy struct {
	maze    *maze.Maze
	actions []maze.Action // indexed by maze.Index
	defined []bool
}

func newPolicy(m *maze.Maze) *Policy {
	return &Policy{
		maze:    m,
		actions: make([]maze.Action, m.NumStates()),
		defined: make([]bool, m.NumStates()),
	}
}

// FromValues returns the greedy policy with respect to the one-step
// lookahead values of v under discount
func FromValues(m *maze.Maze, v *tabular.ValueFunction,
	discount float64) *Policy {
	p := newPolicy(m)
	for _, s := range m.States() {
		if m.IsTerminal(s) {
			continue
		}
		values := Lookahead(m, v, discount, s)
		p.set(s, maze.Action(floatutils.ArgMax(values[:])))
	}
	return p
}

// FromQTable returns the greedy policy with respect to q
func FromQTable(m *maze.Maze, q *tabular.QTable) *Policy {
	p := newPolicy(m)
	for _, s := range m.States() {
		if m.IsTerminal(s) {
			continue
		}
		p.set(s, q.Greedy(s))
	}
	return p
}

// Lookahead returns, for each action a in priority order, the value
// reward(s') + discount * v(s') of the state s' reached by taking a in
// s. The state s must be valid and non-terminal.
func Lookahead(m *maze.Maze, v *tabular.ValueFunction, discount float64,
	s maze.State) [maze.NumActions]float64 {
	var values [maze.NumActions]float64
	for _, a := range maze.Actions {
		next := m.MustStep(s, a)
		values[a] = m.Reward(next) + discount*v.At(next)
	}
	return values
}

// Action returns the action taken in s. The boolean return value is
// false if the policy does not define an action for s, which is the
// case for walls, the terminal state and out of bounds states.
func (p *Policy) Action(s maze.State) (maze.Action, bool) {
	if !p.maze.InBounds(s) {
		return 0, false
	}
	i := p.maze.Index(s)
	return p.actions[i], p.defined[i]
}

// Maze returns the maze the policy acts in
func (p *Policy) Maze() *maze.Maze {
	return p.maze
}

// Equal returns whether p and other take the same action in every state
func (p *Policy) Equal(other *Policy) bool {
	return len(p.Diff(other)) == 0 && len(p.actions) == len(other.actions)
}

// Diff returns the states, in row-major order, where p and other
// disagree
func (p *Policy) Diff(other *Policy) []maze.State {
	var states []maze.State
	if len(p.actions) != len(other.actions) {
		return p.maze.States()
	}
	for i := range p.actions {
		if p.defined[i] != other.defined[i] ||
			(p.defined[i] && p.actions[i] != other.actions[i]) {
			states = append(states, p.maze.StateAt(i))
		}
	}
	return states
}

// String renders the policy as a grid of arrows, with '#' for walls
// and 'G' for the terminal state
func (p *Policy) String() string {
	var b strings.Builder
	size := p.maze.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			s := maze.State{Row: r, Col: c}
			switch {
			case p.maze.IsWall(s):
				b.WriteByte('#')
			case p.maze.IsTerminal(s):
				b.WriteByte('G')
			default:
				a, _ := p.Action(s)
				b.WriteByte(a.Arrow())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *Policy) set(s maze.State, a maze.Action) {
	i := p.maze.Index(s)
	p.actions[i] = a
	p.defined[i] = true
}
