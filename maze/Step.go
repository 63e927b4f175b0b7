package maze

// Step is the deterministic transition model. It returns the state
// reached by taking action a in state s. Moves that would leave the
// grid or enter a wall leave the agent where it is.
//
// Stepping from the terminal state, from a state the agent cannot
// occupy, or with an unknown action is a programming error and results
// in an *IllegalStateError.
func (m *Maze) Step(s State, a Action) (State, error) {
	if !a.Valid() {
		return s, &IllegalStateError{State: s, Action: a,
			Reason: "unknown action"}
	}
	if !m.Valid(s) {
		return s, &IllegalStateError{State: s, Action: a,
			Reason: "agent cannot occupy a wall or out of bounds cell"}
	}
	if m.IsTerminal(s) {
		return s, &IllegalStateError{State: s, Action: a,
			Reason: "terminal state has no outgoing transitions"}
	}

	d := delta[a]
	next := State{Row: s.Row + d.Row, Col: s.Col + d.Col}
	if !m.Valid(next) {
		return s, nil
	}
	return next, nil
}

// MustStep is like Step but panics on error. It is meant for solver
// inner loops which only ever step from valid, non-terminal states.
func (m *Maze) MustStep(s State, a Action) State {
	next, err := m.Step(s, a)
	if err != nil {
		panic(err)
	}
	return next
}
