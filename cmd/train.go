package cmd

import (
	"fmt"

	"github.com/samuelfneumann/gomazesolver/agent/tabular/qlearning"
	"github.com/samuelfneumann/gomazesolver/experiment/checkpointer"
	"github.com/samuelfneumann/gomazesolver/experiment/trackers"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func newTrainCommand(o *options) *cobra.Command {
	var (
		traceOut         string
		checkpointEvery  int
		checkpointPrefix string
		progress         bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Learn to solve a maze with tabular Q-Learning",
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

			var opts []qlearning.TrainOption
			if traceOut != "" {
				opts = append(opts, qlearning.WithTrackers(
					trackers.NewReturn(traceOut+".returns"),
					trackers.NewEpisodeLength(traceOut+".lengths")))
			}
			if checkpointEvery > 0 {
				name := checkpointer.FilenameEnumerator(0, checkpointPrefix,
					"gob")
				opts = append(opts,
					qlearning.WithCheckpointer(checkpointEvery, name))
			}
			if progress {
				opts = append(opts, qlearning.WithProgress(cmd.ErrOrStderr()))
			}

			result, err := qlearning.Train(m, c.QLearning, c.Seed, o.logger,
				opts...)
			if err != nil {
				return err
			}

			pi := result.Policy()
			trace := result.Trace
			lengthData := make([]float64, len(trace.Lengths))
			reached := make([]float64, len(trace.Reached))
			for i := range trace.Lengths {
				lengthData[i] = float64(trace.Lengths[i])
				if trace.Reached[i] {
					reached[i] = 1
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Maze:\n%v\nPolicy:\n%v\n", m, pi)
			fmt.Fprintf(out, "Episodes: %d (converged: %v)\n", result.Episodes,
				result.Converged)
			fmt.Fprintf(out, "Mean return: %.3f  Mean length: %.3f  "+
				"Reached terminal: %.0f\n", stat.Mean(trace.Returns, nil),
				stat.Mean(lengthData, nil), floats.Sum(reached))

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

	flags := cmd.Flags()
	flags.StringVar(&traceOut, "trace-out", "",
		"save episode returns and lengths to files with this prefix")
	flags.IntVar(&checkpointEvery, "checkpoint-every", 0,
		"checkpoint the action values every n episodes")
	flags.StringVar(&checkpointPrefix, "checkpoint-prefix", "qtable",
		"file name prefix of checkpoints")
	flags.BoolVar(&progress, "progress", false, "show a progress bar")
	return cmd
}
