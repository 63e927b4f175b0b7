package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args, returning its standard
// output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.Execute()
	return stdout.String(), err
}

func writeMaze(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const corridor = `# single corridor
-1 -1 -1 -100
-100 -100 -1 -100
-100 -100 -1 -1
-100 -100 -100 0
`

func TestSolve(t *testing.T) {
	path := writeMaze(t, corridor)

	for _, method := range []string{"value", "policy"} {
		t.Run(method, func(t *testing.T) {
			out, err := run(t, "solve", "--maze", path, "--method", method)
			require.NoError(t, err)
			assert.Contains(t, out, "Path (6 steps): (0, 0) -> (0, 1) -> "+
				"(0, 2) -> (1, 2) -> (2, 2) -> (2, 3) -> (3, 3)")
		})
	}

	_, err := run(t, "solve", "--maze", path, "--method", "magic")
	assert.Error(t, err)
}

func TestSolveNoPath(t *testing.T) {
	path := writeMaze(t, "-1 -1 -1\n-1 -1 -100\n-1 -100 0\n")

	_, err := run(t, "solve", "--maze", path)
	var noPath *policy.NoPathError
	assert.ErrorAs(t, err, &noPath)
}

func TestTrain(t *testing.T) {
	path := writeMaze(t, "-1 -1 -1\n-1 -1 -1\n-1 -1 0\n")
	dir := t.TempDir()
	trace := filepath.Join(dir, "trace")

	config := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
qlearning:
  episodes: 3000
  epsilon: 1
  epsilon_decay: 0.998
  epsilon_min: 0.05
`), 0o644))

	out, err := run(t, "train", "--config", config, "--maze", path,
		"--seed", "3", "--start", "0,0", "--trace-out", trace,
		"--checkpoint-every", "1000",
		"--checkpoint-prefix", filepath.Join(dir, "q"))
	require.NoError(t, err)
	assert.Contains(t, out, "Episodes: 3000")
	assert.Contains(t, out, "Path (4 steps)")

	assert.FileExists(t, trace+".returns")
	assert.FileExists(t, trace+".lengths")
	assert.FileExists(t, filepath.Join(dir, "q3.gob"))
}

func TestGenerate(t *testing.T) {
	out, err := run(t, "generate", "--generate", "4", "--seed", "8")
	require.NoError(t, err)

	m, err := maze.Decode(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, 7, m.Size())

	again, err := run(t, "generate", "--generate", "4", "--seed", "8")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = run(t, "generate")
	assert.Error(t, err)
}

func TestGenerateFromConfig(t *testing.T) {
	config := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(config,
		[]byte("seed: 8\nmaze:\n  generate: 4\n"), 0o644))

	fromConfig, err := run(t, "generate", "--config", config)
	require.NoError(t, err)
	fromFlags, err := run(t, "generate", "--generate", "4", "--seed", "8")
	require.NoError(t, err)
	assert.Equal(t, fromFlags, fromConfig)

	// Flags override the config file
	overridden, err := run(t, "generate", "--config", config, "--seed", "9")
	require.NoError(t, err)
	other, err := run(t, "generate", "--generate", "4", "--seed", "9")
	require.NoError(t, err)
	assert.Equal(t, other, overridden)
}

func TestFlags(t *testing.T) {
	_, err := run(t, "solve", "--generate", "3", "--start", "x")
	assert.Error(t, err)

	_, err = run(t, "solve", "--generate", "3", "--log-format", "xml")
	assert.Error(t, err)

	s, err := parseState(" 2, 3")
	require.NoError(t, err)
	assert.Equal(t, maze.State{Row: 2, Col: 3}, s)
}
