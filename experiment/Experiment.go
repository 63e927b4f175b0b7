// Package experiment implements functionality for running an experiment
package experiment

import (
	"github.com/samuelfneumann/gomazesolver/experiment/checkpointer"
	"github.com/samuelfneumann/gomazesolver/experiment/trackers"
)

// Experiment outlines structs that can run experiments. Experiments
// send each environment TimeStep to their Trackers, which cache the
// data to be saved later with Save. The Run method runs all episodes
// of the experiment, and RunEpisode runs a single episode.
//
// Experiments checkpoint agent state with their Checkpointers after
// every finished episode.
type Experiment interface {
	Run() error
	RunEpisode() error

	// Save all tracked data to disk
	Save() error

	// Adds a new trackers.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)

	// Adds a new checkpointer.Checkpointer to the experiment
	RegisterCheckpointer(c checkpointer.Checkpointer)
}

// RunAndSave runs all episodes of e and then saves its tracked data
func RunAndSave(e Experiment) error {
	if err := e.Run(); err != nil {
		return err
	}
	return e.Save()
}
