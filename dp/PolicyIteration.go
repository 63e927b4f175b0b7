package dp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/policy"
	"github.com/samuelfneumann/gomazesolver/tabular"
)

// PolicyResult is the outcome of policy iteration
type PolicyResult struct {
	Values       *tabular.ValueFunction
	Policy       *policy.Policy
	Improvements int // policy improvement rounds performed
	Evaluations  int // evaluation sweeps performed, over all rounds
	Converged    bool
}

// PolicyIteration computes an optimal policy by alternating policy
// evaluation and greedy policy improvement until the policy no longer
// changes
type PolicyIteration struct {
	maze   *maze.Maze
	config Config
	states []maze.State
	logger *slog.Logger
}

// NewPolicyIteration returns a new policy iteration solver for m. If
// logger is nil, slog.Default() is used.
func NewPolicyIteration(m *maze.Maze, c Config,
	logger *slog.Logger) (*PolicyIteration, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newPolicyIteration: invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PolicyIteration{
		maze:   m,
		config: c,
		states: nonTerminal(m),
		logger: logger.With("solver", "policy-iteration"),
	}, nil
}

// Solve runs policy iteration starting from the greedy policy of the
// all-zero value function. If the policy is still changing after
// MaxIterations improvement rounds, or the final evaluation did not
// converge, the result is returned with a *DidNotConvergeError.
func (p *PolicyIteration) Solve() (*PolicyResult, error) {
	values := tabular.NewValueFunction(p.maze.Size())
	scratch := tabular.NewValueFunction(p.maze.Size())
	current := policy.FromValues(p.maze, values, p.config.Discount)

	result := &PolicyResult{}
	var stable, evaluated bool
	var delta float64

	for result.Improvements < p.config.MaxIterations {
		var sweeps int
		sweeps, delta, evaluated = p.evaluate(current, values, scratch)
		result.Evaluations += sweeps
		result.Improvements++

		improved := policy.FromValues(p.maze, values, p.config.Discount)
		if p.logger.Enabled(context.Background(), slog.LevelDebug) {
			p.logger.Debug("improvement", "round", result.Improvements,
				"sweeps", sweeps, "changed", len(improved.Diff(current)))
		}

		if improved.Equal(current) {
			stable = true
			break
		}
		current = improved
	}

	result.Values = values
	result.Policy = current
	result.Converged = stable && evaluated

	if !result.Converged {
		err := &DidNotConvergeError{
			Method:     "policy iteration",
			Iterations: result.Improvements,
			Delta:      delta,
			Tolerance:  p.config.Tolerance,
		}
		p.logger.Warn("iteration cap reached", "error", err)
		return result, err
	}

	p.logger.Info("converged", "improvements", result.Improvements,
		"evaluations", result.Evaluations)
	return result, nil
}

// evaluate performs iterative policy evaluation of pi in place on
// values, using scratch as the second buffer of the synchronous sweep.
// It returns the number of sweeps performed, the change on the last
// sweep and whether evaluation converged.
func (p *PolicyIteration) evaluate(pi *policy.Policy, values,
	scratch *tabular.ValueFunction) (int, float64, bool) {
	var delta float64
	for sweep := 1; sweep <= p.config.MaxIterations; sweep++ {
		for _, s := range p.states {
			a, _ := pi.Action(s)
			next := p.maze.MustStep(s, a)
			scratch.Set(s, p.maze.Reward(next)+p.config.Discount*values.At(next))
		}
		scratch.Set(p.maze.Terminal(), 0)
		delta = scratch.MaxDiff(values)
		values.CopyFrom(scratch)

		if delta < p.config.Tolerance {
			return sweep, delta, true
		}
	}
	return p.config.MaxIterations, delta, false
}
