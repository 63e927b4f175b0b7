package maze

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Generate creates a random perfect maze using Wilson's algorithm
// (loop-erased random walks) over a cells x cells lattice of rooms.
// The lattice is expanded to a reward grid of side 2*cells-1: rooms sit
// on even coordinates, the passages carved between neighbouring rooms
// become channels and everything else is a wall. The bottom-right room
// is the terminal cell.
//
// Since the maze is perfect, every channel is connected to the
// terminal cell. The same source state always produces the same maze.
func Generate(cells int, src rand.Source) (*Maze, error) {
	if cells < MinSize {
		return nil, fmt.Errorf("generate: need at least %d cells per side, "+
			"have %d", MinSize, cells)
	}
	rng := rand.New(src)

	rooms := cells * cells
	inTree := make([]bool, rooms)
	next := make([]int, rooms) // most recent exit taken from each room

	size := 2*cells - 1
	grid := make([][]int, size)
	for r := range grid {
		grid[r] = make([]int, size)
		for c := range grid[r] {
			grid[r][c] = Wall
		}
	}
	open := func(room int) {
		grid[2*(room/cells)][2*(room%cells)] = Channel
	}
	carve := func(from, to int) {
		r := (from/cells + to/cells)
		c := (from%cells + to%cells)
		grid[r][c] = Channel
	}

	root := rng.Intn(rooms)
	inTree[root] = true
	open(root)
	remaining := rooms - 1

	for remaining > 0 {
		// Pick a random room outside the tree
		start := rng.Intn(rooms)
		for inTree[start] {
			start = (start + 1) % rooms
		}

		// Random walk until the tree is hit. Overwriting next erases
		// any loops made along the way.
		for room := start; !inTree[room]; room = next[room] {
			next[room] = randomNeighbour(room, cells, rng)
		}

		// Add the loop-erased path to the tree
		for room := start; !inTree[room]; room = next[room] {
			inTree[room] = true
			open(room)
			carve(room, next[room])
			remaining--
		}
	}

	grid[size-1][size-1] = Terminal
	return New(grid)
}

// randomNeighbour returns a uniformly random room adjacent to room on
// a cells x cells lattice
func randomNeighbour(room, cells int, rng *rand.Rand) int {
	r, c := room/cells, room%cells
	var neighbours [NumActions]int
	n := 0
	for _, d := range delta {
		nr, nc := r+d.Row, c+d.Col
		if nr >= 0 && nr < cells && nc >= 0 && nc < cells {
			neighbours[n] = nr*cells + nc
			n++
		}
	}
	return neighbours[rng.Intn(n)]
}
