package trackers

import (
	"fmt"

	"github.com/samuelfneumann/gomazesolver/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment, along with whether each episode reached the terminal
// state or was cut off.
//
// Note that an episode must finish for this Tracker to record its data.
type EpisodeLength struct {
	episodeLengths []int
	reached        []bool
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength tracker which will save
// its data at the specified location filename. If filename is empty,
// the data is only kept in memory and Save does nothing.
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
		e.reached = append(e.reached,
			t.EndType() == timestep.TerminalStateReached)
	}
}

// Data returns the lengths of all finished episodes
func (e *EpisodeLength) Data() []int {
	return e.episodeLengths
}

// Reached returns, for each finished episode, whether it ended in the
// terminal state
func (e *EpisodeLength) Reached() []bool {
	return e.reached
}

// Save saves the episode lengths tracked to disk
func (e *EpisodeLength) Save() error {
	if err := save(e.filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}
