// Package dp implements dynamic programming solvers for mazes: value
// iteration and policy iteration.
//
// Both solvers perform synchronous sweeps over every valid,
// non-terminal state of the maze, computing new values only from the
// values of the previous sweep. The terminal state's value is fixed at
// zero. Sweeps visit states in row-major order and use no randomness,
// so solving the same maze with the same Config always produces
// bitwise identical results.
package dp

import (
	"fmt"
	"log/slog"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/policy"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"gonum.org/v1/gonum/floats"
)

// Result is the outcome of value iteration
type Result struct {
	Values     *tabular.ValueFunction
	Iterations int       // sweeps performed
	Delta      float64   // largest value change on the final sweep
	Deltas     []float64 // largest value change on each sweep
	Converged  bool

	maze     *maze.Maze
	discount float64
}

// Policy returns the greedy policy with respect to the solved values
func (r *Result) Policy() *policy.Policy {
	return policy.FromValues(r.maze, r.Values, r.discount)
}

// ValueIteration computes optimal state values for a maze by repeated
// Bellman optimality backups
type ValueIteration struct {
	maze   *maze.Maze
	config Config
	states []maze.State // valid, non-terminal states
	logger *slog.Logger
}

// NewValueIteration returns a new value iteration solver for m. If
// logger is nil, slog.Default() is used.
func NewValueIteration(m *maze.Maze, c Config,
	logger *slog.Logger) (*ValueIteration, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newValueIteration: invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ValueIteration{
		maze:   m,
		config: c,
		states: nonTerminal(m),
		logger: logger.With("solver", "value-iteration"),
	}, nil
}

// Solve runs value iteration until convergence or until the iteration
// cap is reached. In the latter case the result is returned together
// with a *DidNotConvergeError.
func (v *ValueIteration) Solve() (*Result, error) {
	values := tabular.NewValueFunction(v.maze.Size())
	next := tabular.NewValueFunction(v.maze.Size())

	result := &Result{
		maze:     v.maze,
		discount: v.config.Discount,
	}

	for result.Iterations < v.config.MaxIterations {
		delta := v.Sweep(next, values)
		values, next = next, values

		result.Iterations++
		result.Delta = delta
		result.Deltas = append(result.Deltas, delta)
		v.logger.Debug("sweep", "iteration", result.Iterations,
			"delta", delta)

		if delta < v.config.Tolerance {
			result.Converged = true
			break
		}
	}
	result.Values = values

	if !result.Converged {
		err := &DidNotConvergeError{
			Method:     "value iteration",
			Iterations: result.Iterations,
			Delta:      result.Delta,
			Tolerance:  v.config.Tolerance,
		}
		v.logger.Warn("iteration cap reached", "error", err)
		return result, err
	}

	v.logger.Info("converged", "iterations", result.Iterations,
		"delta", result.Delta)
	return result, nil
}

// Sweep performs one synchronous Bellman optimality backup of every
// non-terminal state, reading from src and writing to dst, and returns
// the largest absolute change in value. The terminal entry of dst is
// set to zero. dst and src must not be the same ValueFunction.
func (v *ValueIteration) Sweep(dst, src *tabular.ValueFunction) float64 {
	for _, s := range v.states {
		lookahead := policy.Lookahead(v.maze, src, v.config.Discount, s)
		dst.Set(s, floats.Max(lookahead[:]))
	}
	dst.Set(v.maze.Terminal(), 0)
	return dst.MaxDiff(src)
}

// nonTerminal returns the valid, non-terminal states of m in row-major
// order
func nonTerminal(m *maze.Maze) []maze.State {
	states := m.States()
	out := states[:0]
	for _, s := range states {
		if !m.IsTerminal(s) {
			out = append(out, s)
		}
	}
	return out
}
