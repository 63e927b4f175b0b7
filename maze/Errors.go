package maze

import "fmt"

// InvalidMazeError is returned when a reward grid does not describe a
// valid Maze. Row and Col are -1 when the problem is not tied to a
// single row or column.
type InvalidMazeError struct {
	Row, Col int
	Value    int
	Reason   string
}

func (e *InvalidMazeError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("invalid maze: %v", e.Reason)
	case e.Col < 0:
		return fmt.Sprintf("invalid maze: row %d: %v", e.Row, e.Reason)
	}
	return fmt.Sprintf("invalid maze: cell (%d, %d) = %d: %v", e.Row, e.Col,
		e.Value, e.Reason)
}

// IllegalStateError reports misuse of the transition model, such as
// stepping from the terminal state. It always indicates a bug in the
// caller.
type IllegalStateError struct {
	State  State
	Action Action
	Reason string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("illegal state %v (action %v): %v", e.State,
		e.Action, e.Reason)
}
