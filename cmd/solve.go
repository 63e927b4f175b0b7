package cmd

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/gomazesolver/dp"
	"github.com/samuelfneumann/gomazesolver/policy"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"github.com/spf13/cobra"
)

func newSolveCommand(o *options) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a maze by dynamic programming",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.load(cmd)
			if err != nil {
				return err
			}
			m, err := c.Build()
			if err != nil {
				return err
			}

			var values *tabular.ValueFunction
			var pi *policy.Policy
			var dnc *dp.DidNotConvergeError

			switch method {
			case "value":
				vi, err := dp.NewValueIteration(m, c.DP, o.logger)
				if err != nil {
					return err
				}
				result, err := vi.Solve()
				if err != nil && !errors.As(err, &dnc) {
					return err
				}
				values, pi = result.Values, result.Policy()

			case "policy":
				solver, err := dp.NewPolicyIteration(m, c.DP, o.logger)
				if err != nil {
					return err
				}
				result, err := solver.Solve()
				if err != nil && !errors.As(err, &dnc) {
					return err
				}
				values, pi = result.Values, result.Policy

			default:
				return fmt.Errorf("unknown method %q, want value or policy",
					method)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Maze:\n%v\nValues:\n%v\n\nPolicy:\n%v\n", m,
				values, pi)

			start, err := startState(m, c)
			if err != nil {
				return err
			}
			path, err := pi.Path(start)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Path (%d steps): %v\n", len(path)-1,
				formatPath(path))
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "value",
		"dynamic programming method: value or policy")
	return cmd
}
