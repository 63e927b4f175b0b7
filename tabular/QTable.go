package tabular

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/utils/floatutils"
	"github.com/samuelfneumann/gomazesolver/utils/matutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// QTable maps (state, action) pairs of a maze to real values. Rows of
// the underlying matrix are indexed by maze.Maze.Index and columns by
// maze.Action.
type QTable struct {
	size   int
	values *mat.Dense
}

// NewQTable returns a zero-initialized QTable for a maze of side
// length size
func NewQTable(size int) *QTable {
	return &QTable{
		size:   size,
		values: mat.NewDense(size*size, maze.NumActions, nil),
	}
}

// At returns the value of taking a in s
func (q *QTable) At(s maze.State, a maze.Action) float64 {
	return q.values.At(q.index(s), int(a))
}

// Set sets the value of taking a in s
func (q *QTable) Set(s maze.State, a maze.Action, value float64) {
	q.values.Set(q.index(s), int(a), value)
}

// Row returns the action values of s in action priority order. The
// returned slice shares storage with the QTable.
func (q *QTable) Row(s maze.State) []float64 {
	return q.values.RawRowView(q.index(s))
}

// Max returns the largest action value in s
func (q *QTable) Max(s maze.State) float64 {
	return floats.Max(q.Row(s))
}

// Greedy returns the highest valued action in s, breaking ties in
// favour of the action with the lowest priority value
func (q *QTable) Greedy(s maze.State) maze.Action {
	return maze.Action(floatutils.ArgMax(q.Row(s)))
}

// Size returns the side length of the maze the QTable covers
func (q *QTable) Size() int {
	return q.size
}

// Clone returns a deep copy of the QTable
func (q *QTable) Clone() *QTable {
	return &QTable{size: q.size, values: mat.DenseCopyOf(q.values)}
}

// Equal returns whether q and other hold bitwise identical values
func (q *QTable) Equal(other *QTable) bool {
	return q.size == other.size && mat.Equal(q.values, other.values)
}

// GobEncode implements the gob.GobEncoder interface
func (q *QTable) GobEncode() ([]byte, error) {
	data, err := q.values.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("gobEncode: could not marshal values: %v", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(q.size); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode size: %v", err)
	}
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode values: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (q *QTable) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var size int
	if err := dec.Decode(&size); err != nil {
		return fmt.Errorf("gobDecode: could not decode size: %v", err)
	}
	var data []byte
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("gobDecode: could not decode values: %v", err)
	}

	values := &mat.Dense{}
	if err := values.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("gobDecode: could not unmarshal values: %v", err)
	}
	if r, c := values.Dims(); r != size*size || c != maze.NumActions {
		return fmt.Errorf("gobDecode: values have shape (%d, %d), want "+
			"(%d, %d)", r, c, size*size, maze.NumActions)
	}

	q.size = size
	q.values = values
	return nil
}

func (q *QTable) String() string {
	return matutils.Format(q.values)
}

func (q *QTable) index(s maze.State) int {
	return s.Row*q.size + s.Col
}
