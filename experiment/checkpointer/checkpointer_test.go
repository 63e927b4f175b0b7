package checkpointer

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNStepInvalid(t *testing.T) {
	q := tabular.NewQTable(2)
	name := FilenameEnumerator(0, "q", "gob")

	_, err := NewNStep(0, q, name)
	assert.Error(t, err)

	_, err = NewNStep(1, q, nil)
	assert.Error(t, err)

	_, err = NewNStep(1, nil, name)
	assert.Error(t, err)
}

func TestNStep(t *testing.T) {
	dir := t.TempDir()
	q := tabular.NewQTable(2)
	q.Set(maze.State{Row: 0, Col: 1}, maze.Down, -0.5)

	check, err := NewNStep(2, q, FilenameEnumerator(0,
		filepath.Join(dir, "q"), "gob"))
	require.NoError(t, err)

	for episode := 1; episode <= 4; episode++ {
		require.NoError(t, check.Checkpoint(episode))
	}
	assert.NoFileExists(t, filepath.Join(dir, "q3.gob"))

	loaded := &tabular.QTable{}
	require.NoError(t, Load(loaded, filepath.Join(dir, "q2.gob")))
	assert.True(t, loaded.Equal(q))
}

func TestFilenameEnumerator(t *testing.T) {
	name := FilenameEnumerator(4, "run-", ".bin")
	assert.Equal(t, "run-5.bin", name())
	assert.Equal(t, "run-6.bin", name())

	assert.Equal(t, "q1.gob", FilenameEnumerator(0, "q", "gob")())
}
