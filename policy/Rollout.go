package policy

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/gomazesolver/maze"
)

// NoPathError is returned when following a greedy policy revisits a
// state before reaching the terminal state. Cycle holds the repeating
// states, beginning and ending with the revisited state.
type NoPathError struct {
	Start maze.State
	Cycle []maze.State
}

func (e *NoPathError) Error() string {
	states := make([]string, len(e.Cycle))
	for i, s := range e.Cycle {
		states[i] = s.String()
	}
	return fmt.Sprintf("no path from %v to the terminal state: policy "+
		"cycles through %v", e.Start, strings.Join(states, " -> "))
}

// Rollout lazily follows a policy from a start state. Successive calls
// to Next step through the states of the path, starting with the start
// state itself. A Rollout is always finite: it stops after the terminal
// state is produced, or fails with a *NoPathError as soon as the policy
// would revisit a state.
//
//	r := p.Rollout(start)
//	for r.Next() {
//		fmt.Println(r.State())
//	}
//	if err := r.Err(); err != nil {
//		...
//	}
type Rollout struct {
	policy  *Policy
	start   maze.State
	current maze.State
	path    []maze.State
	seen    map[maze.State]int // position of each state in path
	started bool
	done    bool
	err     error
}

// Rollout returns a Rollout of p beginning at start
func (p *Policy) Rollout(start maze.State) *Rollout {
	return &Rollout{
		policy: p,
		start:  start,
		seen:   make(map[maze.State]int),
	}
}

// Next advances the rollout to the next state on the path. It returns
// false when the path is complete or an error occurred.
func (r *Rollout) Next() bool {
	if r.done {
		return false
	}
	m := r.policy.maze

	if !r.started {
		r.started = true
		if !m.Valid(r.start) {
			r.fail(&maze.IllegalStateError{State: r.start,
				Reason: "rollout cannot start on a wall or out of bounds cell"})
			return false
		}
		r.visit(r.start)
		return true
	}

	if m.IsTerminal(r.current) {
		r.done = true
		return false
	}

	a, _ := r.policy.Action(r.current)
	next, err := m.Step(r.current, a)
	if err != nil {
		r.fail(err)
		return false
	}

	if i, ok := r.seen[next]; ok {
		cycle := make([]maze.State, 0, len(r.path)-i+1)
		cycle = append(cycle, r.path[i:]...)
		cycle = append(cycle, next)
		r.fail(&NoPathError{Start: r.start, Cycle: cycle})
		return false
	}

	r.visit(next)
	return true
}

// State returns the current state of the rollout
func (r *Rollout) State() maze.State {
	return r.current
}

// Err returns the error that stopped the rollout, if any
func (r *Rollout) Err() error {
	return r.err
}

func (r *Rollout) visit(s maze.State) {
	r.seen[s] = len(r.path)
	r.path = append(r.path, s)
	r.current = s
}

func (r *Rollout) fail(err error) {
	r.err = err
	r.done = true
}

// Path follows p from start and returns every state visited, start and
// terminal state included
func (p *Policy) Path(start maze.State) ([]maze.State, error) {
	var path []maze.State
	r := p.Rollout(start)
	for r.Next() {
		path = append(path, r.State())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return path, nil
}
