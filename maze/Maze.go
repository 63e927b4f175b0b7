// Package maze implements square reward-grid mazes and their
// deterministic transition model.
//
// A Maze is an N x N grid of rewards. Each cell is either a wall
// (Wall = -100), a channel (Channel = -1) or the single terminal cell
// (Terminal = 0), which must sit in the bottom-right corner. Walls can
// never be occupied, and the terminal cell is absorbing.
package maze

import (
	"fmt"
	"strings"
)

// Cell rewards
const (
	Wall     int = -100
	Channel  int = -1
	Terminal int = 0
)

// MinSize is the smallest side length a Maze may have
const MinSize int = 2

// Maze is an immutable square grid of per-cell rewards. A Maze is safe
// for concurrent use by multiple readers.
type Maze struct {
	size    int
	rewards []int // row-major
}

// New validates grid and returns the Maze it describes. The grid is
// copied, so later changes to grid are not seen by the Maze.
func New(grid [][]int) (*Maze, error) {
	if len(grid) < MinSize {
		return nil, &InvalidMazeError{
			Row: -1, Col: -1,
			Reason: fmt.Sprintf("need at least %d rows, have %d", MinSize,
				len(grid)),
		}
	}

	n := len(grid)
	rewards := make([]int, 0, n*n)
	terminals := 0

	for r, row := range grid {
		if len(row) != n {
			return nil, &InvalidMazeError{
				Row: r, Col: -1,
				Reason: fmt.Sprintf("grid is not square: row has %d "+
					"columns, want %d", len(row), n),
			}
		}

		for c, value := range row {
			switch value {
			case Wall, Channel:
			case Terminal:
				terminals++
				if r != n-1 || c != n-1 {
					return nil, &InvalidMazeError{
						Row: r, Col: c, Value: value,
						Reason: "terminal cell must be the bottom-right cell",
					}
				}
			default:
				return nil, &InvalidMazeError{
					Row: r, Col: c, Value: value,
					Reason: fmt.Sprintf("reward must be one of {%d, %d, %d}",
						Wall, Channel, Terminal),
				}
			}
			rewards = append(rewards, value)
		}
	}

	if terminals == 0 {
		return nil, &InvalidMazeError{
			Row: n - 1, Col: n - 1, Value: grid[n-1][n-1],
			Reason: "no terminal cell",
		}
	}

	return &Maze{size: n, rewards: rewards}, nil
}

// Size returns the side length of the maze
func (m *Maze) Size() int {
	return m.size
}

// InBounds returns whether s lies on the grid
func (m *Maze) InBounds(s State) bool {
	return s.Row >= 0 && s.Row < m.size && s.Col >= 0 && s.Col < m.size
}

// Reward returns the reward for entering s. Reward panics if s is out
// of bounds.
func (m *Maze) Reward(s State) float64 {
	return float64(m.cell(s))
}

// IsWall returns whether s is a wall. Out of bounds states are not
// walls.
func (m *Maze) IsWall(s State) bool {
	return m.InBounds(s) && m.cell(s) == Wall
}

// IsTerminal returns whether s is the terminal state
func (m *Maze) IsTerminal(s State) bool {
	return s == m.Terminal()
}

// Terminal returns the terminal state
func (m *Maze) Terminal() State {
	return State{Row: m.size - 1, Col: m.size - 1}
}

// Valid returns whether s is a state the agent may occupy: in bounds
// and not a wall.
func (m *Maze) Valid(s State) bool {
	return m.InBounds(s) && m.cell(s) != Wall
}

// States returns all valid states in row-major order, the terminal
// state included.
func (m *Maze) States() []State {
	states := make([]State, 0, len(m.rewards))
	for i, reward := range m.rewards {
		if reward != Wall {
			states = append(states, m.StateAt(i))
		}
	}
	return states
}

// NumStates returns the number of cells in the maze, walls included.
// Tabular stores index states in [0, NumStates()).
func (m *Maze) NumStates() int {
	return len(m.rewards)
}

// Index encodes s as a row-major index
func (m *Maze) Index(s State) int {
	return s.Row*m.size + s.Col
}

// StateAt decodes a row-major index into a State
func (m *Maze) StateAt(i int) State {
	return State{Row: i / m.size, Col: i % m.size}
}

// Grid returns a copy of the reward grid
func (m *Maze) Grid() [][]int {
	grid := make([][]int, m.size)
	for r := range grid {
		grid[r] = make([]int, m.size)
		copy(grid[r], m.rewards[r*m.size:(r+1)*m.size])
	}
	return grid
}

// String renders the maze with '#' for walls, '.' for channels and
// 'G' for the terminal cell
func (m *Maze) String() string {
	var b strings.Builder
	for r := 0; r < m.size; r++ {
		for c := 0; c < m.size; c++ {
			switch m.rewards[r*m.size+c] {
			case Wall:
				b.WriteByte('#')
			case Terminal:
				b.WriteByte('G')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *Maze) cell(s State) int {
	if !m.InBounds(s) {
		panic(fmt.Sprintf("cell: state %v out of bounds for maze of size %d",
			s, m.size))
	}
	return m.rewards[m.Index(s)]
}
