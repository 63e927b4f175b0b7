package dp

import "fmt"

// DidNotConvergeError is returned alongside a solver's result when the
// iteration cap was reached before the convergence threshold was met.
// It is a warning: the accompanying result holds the best values
// computed and is safe to use.
type DidNotConvergeError struct {
	Method     string
	Iterations int
	Delta      float64 // largest value change on the last sweep
	Tolerance  float64
}

func (e *DidNotConvergeError) Error() string {
	return fmt.Sprintf("%v did not converge after %d iterations: last "+
		"change %g >= tolerance %g", e.Method, e.Iterations, e.Delta,
		e.Tolerance)
}
