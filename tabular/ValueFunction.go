// Package tabular implements tabular value stores: state-value
// functions and state-action value tables over the states of a maze.
package tabular

import (
	"math"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/utils/matutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ValueFunction maps each state of a maze to a real value. Values are
// stored in an N x N matrix laid out like the maze itself. Entries for
// walls are always zero.
type ValueFunction struct {
	values *mat.Dense
}

// NewValueFunction returns a zero-initialized ValueFunction for a maze
// of side length size
func NewValueFunction(size int) *ValueFunction {
	return &ValueFunction{mat.NewDense(size, size, nil)}
}

// At returns the value of s
func (v *ValueFunction) At(s maze.State) float64 {
	return v.values.At(s.Row, s.Col)
}

// Set sets the value of s
func (v *ValueFunction) Set(s maze.State, value float64) {
	v.values.Set(s.Row, s.Col, value)
}

// Size returns the side length of the maze the ValueFunction covers
func (v *ValueFunction) Size() int {
	r, _ := v.values.Dims()
	return r
}

// Clone returns a deep copy of the ValueFunction
func (v *ValueFunction) Clone() *ValueFunction {
	return &ValueFunction{mat.DenseCopyOf(v.values)}
}

// CopyFrom overwrites v with the values in other
func (v *ValueFunction) CopyFrom(other *ValueFunction) {
	v.values.Copy(other.values)
}

// MaxDiff returns the largest absolute difference between the values
// of v and other
func (v *ValueFunction) MaxDiff(other *ValueFunction) float64 {
	return floats.Distance(v.values.RawMatrix().Data,
		other.values.RawMatrix().Data, math.Inf(1))
}

// Equal returns whether v and other hold bitwise identical values
func (v *ValueFunction) Equal(other *ValueFunction) bool {
	return mat.Equal(v.values, other.values)
}

// EqualApprox returns whether all values of v and other lie within tol
// of each other
func (v *ValueFunction) EqualApprox(other *ValueFunction, tol float64) bool {
	return mat.EqualApprox(v.values, other.values, tol)
}

func (v *ValueFunction) String() string {
	return matutils.Format(v.values)
}
