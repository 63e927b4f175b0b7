package checkpointer

import "fmt"

// nStep implements checkpointing every N episodes
type nStep struct {
	interval int
	object   Serializable // Object to save

	// filename returns the filename of the file to save the object in.
	// To save each checkpoint in a separate file with an incremented
	// number as a suffix (e.g. file1.bin, file2.bin, ..., fileK.bin),
	// use FilenameEnumerator.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n episodes.
func NewNStep(n int, object Serializable,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newNStep: interval must be positive, "+
			"have %v", n)
	}
	if object == nil {
		return nil, fmt.Errorf("newNStep: no object to checkpoint")
	}
	if filename == nil {
		return nil, fmt.Errorf("newNStep: no filename function")
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the Checkpointer's tracked object if episode is a
// multiple of the checkpointing interval
func (n *nStep) Checkpoint(episode int) error {
	if episode%n.interval == 0 {
		return Save(n.object, n.filename())
	}
	return nil
}
