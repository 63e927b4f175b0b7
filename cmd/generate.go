package cmd

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/spf13/cobra"
)

func newGenerateCommand(o *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random maze and write it as a grid file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.load(cmd)
			if err != nil {
				return err
			}
			if c.Maze.Generate == 0 {
				return fmt.Errorf("no generated maze configured: set " +
					"--generate or maze.generate in the config")
			}
			m, err := c.Build()
			if err != nil {
				return err
			}
			o.logger.Info("generated maze", "rooms", c.Maze.Generate,
				"size", m.Size(), "seed", c.Seed)

			if out == "" {
				return maze.Encode(cmd.OutOrStdout(), m)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("could not create maze file: %w", err)
			}
			defer file.Close()
			if err := maze.Encode(file, m); err != nil {
				return err
			}
			return file.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the maze to this file instead of stdout")
	return cmd
}
