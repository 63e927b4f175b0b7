package maze

import "fmt"

// State is a (row, col) coordinate on the grid
type State struct {
	Row int `yaml:"row" json:"row"`
	Col int `yaml:"col" json:"col"`
}

// String returns the State as "(row, col)"
func (s State) String() string {
	return fmt.Sprintf("(%d, %d)", s.Row, s.Col)
}

// Action is one of the four moves an agent can take. The numeric value
// of an Action is also its priority when breaking ties between equally
// valued actions: lower values win.
type Action int

// Actions in tie-breaking priority order
const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the number of actions available in every state
const NumActions int = 4

// Actions lists every action in priority order
var Actions = [NumActions]Action{Up, Down, Left, Right}

// delta is the coordinate change of each action
var delta = [NumActions]State{
	Up:    {Row: -1, Col: 0},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Right: {Row: 0, Col: 1},
}

// Valid returns whether a is one of the four known actions
func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Arrow returns a single character depiction of the action
func (a Action) Arrow() byte {
	switch a {
	case Up:
		return '^'
	case Down:
		return 'v'
	case Left:
		return '<'
	case Right:
		return '>'
	}
	return '?'
}
