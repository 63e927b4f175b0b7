// Package cmd implements the gomazesolver command line interface
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samuelfneumann/gomazesolver/config"
	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command
type options struct {
	configPath string
	mazePath   string
	generate   int
	seed       uint64
	start      string
	logLevel   string
	logFormat  string

	logger *slog.Logger
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand returns the root command with all subcommands
// attached
func NewRootCommand() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "gomazesolver",
		Short: "Solve grid mazes with value iteration and Q-Learning",
		Long: `gomazesolver finds shortest paths through square reward-grid
mazes, either by dynamic programming over the known transition model
or by learning action values with tabular Q-Learning.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			o.logger = logger
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "run configuration file (YAML or JSON)")
	flags.StringVar(&o.mazePath, "maze", "", "grid file describing the maze")
	flags.IntVar(&o.generate, "generate", 0, "generate a maze with this many rooms per side")
	flags.Uint64Var(&o.seed, "seed", config.DefaultSeed, "random seed")
	flags.StringVar(&o.start, "start", "", `start state as "row,col"`)
	flags.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(newSolveCommand(o), newTrainCommand(o), newGenerateCommand(o))
	return root
}

// newLogger creates the structured logger writing to w
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: l}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}

// load builds the run configuration from the config file, if any, and
// then applies the flags which were set on the command line
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	c := config.Default()
	if o.configPath != "" {
		var err error
		if c, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		c.Seed = o.seed
	}
	if flags.Changed("maze") {
		c.Maze = config.Maze{File: o.mazePath}
	}
	if flags.Changed("generate") {
		c.Maze = config.Maze{Generate: o.generate}
	}
	if flags.Changed("start") {
		s, err := parseState(o.start)
		if err != nil {
			return config.Config{}, err
		}
		c.QLearning.Start = &s
	}

	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

// parseState parses a state given as "row,col"
func parseState(text string) (maze.State, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return maze.State{}, fmt.Errorf("parseState: want \"row,col\", "+
			"have %q", text)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return maze.State{}, fmt.Errorf("parseState: invalid row: %v", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return maze.State{}, fmt.Errorf("parseState: invalid column: %v", err)
	}
	return maze.State{Row: row, Col: col}, nil
}

// startState returns the state to trace paths from: the configured
// start if there is one, otherwise the first open, non-terminal cell in
// row-major order
func startState(m *maze.Maze, c config.Config) (maze.State, error) {
	if c.QLearning.Start != nil {
		return *c.QLearning.Start, nil
	}
	for _, s := range m.States() {
		if !m.IsTerminal(s) {
			return s, nil
		}
	}
	return maze.State{}, fmt.Errorf("startState: maze has no open cells")
}

// formatPath renders a path as "(r, c) -> (r, c) -> ..."
func formatPath(path []maze.State) string {
	states := make([]string, len(path))
	for i, s := range path {
		states[i] = s.String()
	}
	return strings.Join(states, " -> ")
}
