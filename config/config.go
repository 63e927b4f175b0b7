// Package config loads run configurations for the maze solvers.
//
// A run configuration selects a maze, either inline, from a grid file
// or generated from the run seed, and configures the dynamic
// programming and Q-Learning solvers. Configurations are read from
// YAML, or from JSON when the file name ends in ".json". Keys which are
// missing from a file keep their default values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samuelfneumann/gomazesolver/agent/tabular/qlearning"
	"github.com/samuelfneumann/gomazesolver/dp"
	"github.com/samuelfneumann/gomazesolver/maze"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

// DefaultSeed is the seed used when none is configured
const DefaultSeed uint64 = 1

// Maze describes where the maze of a run comes from. At most one of
// its fields may be set.
type Maze struct {
	// Grid is an inline reward grid
	Grid [][]int `yaml:"grid,omitempty" json:"grid,omitempty"`

	// File is the path of a grid file readable by maze.Decode
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// Generate is the number of rooms per side of a generated maze
	Generate int `yaml:"generate,omitempty" json:"generate,omitempty"`
}

// Config is the configuration of a run
type Config struct {
	Seed      uint64           `yaml:"seed" json:"seed"`
	Maze      Maze             `yaml:"maze" json:"maze"`
	DP        dp.Config        `yaml:"dp" json:"dp"`
	QLearning qlearning.Config `yaml:"qlearning" json:"qlearning"`
}

// Default returns the default Config, which has no maze source
func Default() Config {
	return Config{
		Seed:      DefaultSeed,
		DP:        dp.DefaultConfig(),
		QLearning: qlearning.DefaultConfig(),
	}
}

// Load reads the Config at path. Values missing from the file are
// taken from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %w", err)
	}

	c, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return Config{}, fmt.Errorf("load: %s: %w", path, err)
	}

	// Relative grid files are resolved against the config's directory
	if c.Maze.File != "" && !filepath.IsAbs(c.Maze.File) {
		c.Maze.File = filepath.Join(filepath.Dir(path), c.Maze.File)
	}
	return c, nil
}

// Parse decodes a Config from YAML, or from JSON if isJSON is true
func Parse(data []byte, isJSON bool) (Config, error) {
	c := Default()

	var err error
	if isJSON {
		err = json.Unmarshal(data, &c)
	} else {
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse: could not decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	return c, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.DP.Validate(); err != nil {
		return fmt.Errorf("dp: %w", err)
	}
	if err := c.QLearning.Validate(); err != nil {
		return fmt.Errorf("qlearning: %w", err)
	}

	sources := 0
	if c.Maze.Grid != nil {
		sources++
	}
	if c.Maze.File != "" {
		sources++
	}
	if c.Maze.Generate != 0 {
		sources++
		if c.Maze.Generate < maze.MinSize {
			return fmt.Errorf("maze: generated mazes need at least %d "+
				"rooms per side, have %d", maze.MinSize, c.Maze.Generate)
		}
	}
	if sources > 1 {
		return fmt.Errorf("maze: at most one of grid, file and generate " +
			"may be set")
	}
	return nil
}

// Build returns the maze described by the Config
func (c Config) Build() (*maze.Maze, error) {
	switch {
	case c.Maze.Grid != nil:
		return maze.New(c.Maze.Grid)

	case c.Maze.File != "":
		file, err := os.Open(c.Maze.File)
		if err != nil {
			return nil, fmt.Errorf("build: could not open maze file: %w", err)
		}
		defer file.Close()
		return maze.Decode(file)

	case c.Maze.Generate != 0:
		return maze.Generate(c.Maze.Generate, rand.NewSource(c.Seed))
	}
	return nil, fmt.Errorf("build: no maze configured")
}

// Marshal encodes the Config as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
