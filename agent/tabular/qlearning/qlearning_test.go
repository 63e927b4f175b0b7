package qlearning

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gomazesolver/agent"
	"github.com/samuelfneumann/gomazesolver/dp"
	"github.com/samuelfneumann/gomazesolver/environment"
	"github.com/samuelfneumann/gomazesolver/experiment"
	"github.com/samuelfneumann/gomazesolver/experiment/checkpointer"
	"github.com/samuelfneumann/gomazesolver/experiment/trackers"
	"github.com/samuelfneumann/gomazesolver/maze"
	"github.com/samuelfneumann/gomazesolver/policy"
	"github.com/samuelfneumann/gomazesolver/tabular"
	"github.com/samuelfneumann/gomazesolver/timestep"
	"github.com/samuelfneumann/gomazesolver/utils/floatutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var open3 = [][]int{
	{-1, -1, -1},
	{-1, -1, -1},
	{-1, -1, 0},
}

func mustMaze(t testing.TB, grid [][]int) *maze.Maze {
	t.Helper()
	m, err := maze.New(grid)
	require.NoError(t, err)
	return m
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := map[string]func(c *Config){
		"zero learning rate":  func(c *Config) { c.LearningRate = 0 },
		"large learning rate": func(c *Config) { c.LearningRate = 1.5 },
		"zero discount":       func(c *Config) { c.Discount = 0 },
		"negative epsilon":    func(c *Config) { c.Epsilon = -0.1 },
		"large epsilon":       func(c *Config) { c.Epsilon = 1.1 },
		"min above epsilon":   func(c *Config) { c.EpsilonMin = 0.5 },
		"zero decay":          func(c *Config) { c.EpsilonDecay = 0 },
		"no episodes":         func(c *Config) { c.Episodes = 0 },
		"negative step limit": func(c *Config) { c.MaxStepsPerEpisode = -1 },
		"negative tolerance":  func(c *Config) { c.Tolerance = -1 },
	}

	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			modify(&c)
			assert.Error(t, c.Validate())

			_, err := Train(mustMaze(t, open3), c, 1, discard)
			assert.Error(t, err)
		})
	}
}

func TestConfigStepLimit(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 90, c.StepLimit(3))

	c.MaxStepsPerEpisode = 7
	assert.Equal(t, 7, c.StepLimit(3))
}

func TestSchedules(t *testing.T) {
	assert.Equal(t, 0.3, Constant(0.3).Epsilon(100))

	exp := ExponentialDecay{Initial: 1, Rate: 0.5, Min: 0.1}
	assert.Equal(t, 1.0, exp.Epsilon(0))
	assert.Equal(t, 0.25, exp.Epsilon(2))
	assert.Equal(t, 0.1, exp.Epsilon(10))

	lin := LinearDecay{Initial: 1, Final: 0, Episodes: 4}
	assert.Equal(t, 1.0, lin.Epsilon(0))
	assert.Equal(t, 0.5, lin.Epsilon(2))
	assert.Equal(t, 0.0, lin.Epsilon(4))
	assert.Equal(t, 0.0, lin.Epsilon(40))

	c := DefaultConfig()
	assert.Equal(t, Constant(c.Epsilon), c.Schedule())
	c.EpsilonDecay = 0.9
	assert.IsType(t, ExponentialDecay{}, c.Schedule())
}

func TestQLearnerStep(t *testing.T) {
	values := tabular.NewQTable(3)
	learner := NewQLearner(values, 0.1)

	first := timestep.New(timestep.First, 0, 0.9, maze.State{Row: 0, Col: 0}, 0)
	next := timestep.New(timestep.Mid, -1, 0.9, maze.State{Row: 0, Col: 1}, 1)

	require.NoError(t, learner.ObserveFirst(first))
	assert.Error(t, learner.Step(), "step before any transition")

	require.NoError(t, learner.Observe(maze.Right, next))
	require.NoError(t, learner.Step())
	assert.InDelta(t, -0.1, values.At(first.Observation, maze.Right), 1e-12)

	tr := timestep.NewTransition(first, maze.Right, next)
	assert.InDelta(t, -0.9, learner.TdError(tr), 1e-12)

	learner.EndEpisode()
	assert.Error(t, learner.Step(), "step after the episode ended")

	assert.Error(t, learner.ObserveFirst(next))
	assert.Error(t, learner.Observe(maze.Action(7), next))
}

func TestEGreedy(t *testing.T) {
	values := tabular.NewQTable(2)
	s := maze.State{Row: 0, Col: 0}
	values.Set(s, maze.Left, 1)
	step := timestep.New(timestep.First, 0, 0.9, s, 0)

	greedy := NewEGreedy(0, 1, values)
	for i := 0; i < 100; i++ {
		assert.Equal(t, maze.Left, greedy.SelectAction(step))
	}

	random := NewEGreedy(1, 1, values)
	seen := make(map[maze.Action]bool)
	for i := 0; i < 1000; i++ {
		seen[random.SelectAction(step)] = true
	}
	assert.Len(t, seen, maze.NumActions)
}

func TestEGreedyFollowsValues(t *testing.T) {
	values := tabular.NewQTable(2)
	s := maze.State{Row: 0, Col: 0}
	step := timestep.New(timestep.First, 0, 0.9, s, 0)
	p := NewEGreedy(0, 1, values)

	values.Set(s, maze.Left, 1)
	assert.Equal(t, maze.Left, p.SelectAction(step))

	values.Set(s, maze.Right, 2)
	for i := 0; i < 100; i++ {
		assert.Equal(t, maze.Right, p.SelectAction(step))
	}

	p.SetEpsilon(1)
	seen := make(map[maze.Action]bool)
	for i := 0; i < 1000; i++ {
		seen[p.SelectAction(step)] = true
	}
	assert.Len(t, seen, maze.NumActions)
}

func BenchmarkEGreedySelectAction(b *testing.B) {
	values := tabular.NewQTable(8)
	s := maze.State{Row: 3, Col: 4}
	values.Set(s, maze.Down, 1)
	step := timestep.New(timestep.Mid, -1, 0.9, s, 1)
	p := NewEGreedy(0.1, 1, values)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.SelectAction(step)
	}
}

func TestTrainDeterministic(t *testing.T) {
	m := mustMaze(t, open3)
	c := DefaultConfig()
	c.Episodes = 200
	c.EpsilonDecay = 0.99

	r1, err := Train(m, c, 42, discard)
	require.NoError(t, err)
	r2, err := Train(m, c, 42, discard)
	require.NoError(t, err)

	assert.True(t, r1.Q.Equal(r2.Q))
	assert.Equal(t, r1.Trace, r2.Trace)

	assert.Equal(t, c.Episodes, r1.Episodes)
	assert.Len(t, r1.Trace.Returns, c.Episodes)
	assert.Len(t, r1.Trace.Lengths, c.Episodes)
	assert.Len(t, r1.Trace.Reached, c.Episodes)
	assert.Len(t, r1.Trace.Epsilons, c.Episodes)
	assert.Equal(t, c.Epsilon, r1.Trace.Epsilons[0])
	assert.InDelta(t, c.Epsilon*0.99, r1.Trace.Epsilons[1], 1e-12)

	// The terminal state is never updated
	for _, a := range maze.Actions {
		assert.Equal(t, 0.0, r1.Q.At(m.Terminal(), a))
	}
}

// The greedy policy learned on the open 3x3 maze must only choose
// actions which are optimal under the value iteration solution.
func TestTrainMatchesValueIteration(t *testing.T) {
	m := mustMaze(t, open3)

	c := DefaultConfig()
	c.Episodes = 5000
	c.Epsilon = 1
	c.EpsilonDecay = 0.999
	c.EpsilonMin = 0.05

	result, err := Train(m, c, 7, discard)
	require.NoError(t, err)

	vi, err := dp.NewValueIteration(m, dp.DefaultConfig(), discard)
	require.NoError(t, err)
	solved, err := vi.Solve()
	require.NoError(t, err)

	learned := result.Policy()
	for _, s := range m.States() {
		if m.IsTerminal(s) {
			continue
		}
		a, ok := learned.Action(s)
		require.True(t, ok)

		values := policy.Lookahead(m, solved.Values, c.Discount, s)
		_, optimal := floatutils.MaxSlice(values[:], 1e-3)
		assert.Contains(t, optimal, int(a), "state %v", s)
	}

	start := maze.State{Row: 0, Col: 0}
	learnedPath, err := learned.Path(start)
	require.NoError(t, err)
	optimalPath, err := solved.Policy().Path(start)
	require.NoError(t, err)
	assert.Len(t, learnedPath, len(optimalPath))
}

func TestTrainEarlyStop(t *testing.T) {
	m := mustMaze(t, [][]int{
		{-1, -1},
		{-1, 0},
	})

	c := DefaultConfig()
	c.Epsilon = 0
	c.EpsilonMin = 0
	c.Episodes = 5000
	c.Start = &maze.State{Row: 0, Col: 0}
	c.Tolerance = 1e-3

	result, err := Train(m, c, 3, discard)
	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.Less(t, result.Episodes, c.Episodes)
	assert.Len(t, result.Trace.Returns, result.Episodes)
	assert.True(t, result.Trace.Reached[result.Episodes-1])
}

func TestTrainIllegalStart(t *testing.T) {
	c := DefaultConfig()
	c.Start = &maze.State{Row: 2, Col: 2}
	_, err := Train(mustMaze(t, open3), c, 1, discard)
	assert.Error(t, err)
}

func TestTrainTrackersAndCheckpoints(t *testing.T) {
	dir := t.TempDir()
	m := mustMaze(t, open3)

	c := DefaultConfig()
	c.Episodes = 20

	returns := trackers.NewReturn(filepath.Join(dir, "returns.bin"))
	lengths := trackers.NewEpisodeLength(filepath.Join(dir, "lengths.bin"))
	name := checkpointer.FilenameEnumerator(0, filepath.Join(dir, "q"), "gob")

	result, err := Train(m, c, 5, discard,
		WithTrackers(returns, lengths),
		WithCheckpointer(10, name))
	require.NoError(t, err)

	// Registered trackers are saved when training ends
	savedReturns, err := trackers.LoadReturns(filepath.Join(dir, "returns.bin"))
	require.NoError(t, err)
	assert.Equal(t, result.Trace.Returns, savedReturns)

	savedLengths, err := trackers.LoadLengths(filepath.Join(dir, "lengths.bin"))
	require.NoError(t, err)
	assert.Equal(t, result.Trace.Lengths, savedLengths)

	first := &tabular.QTable{}
	require.NoError(t, checkpointer.Load(first, filepath.Join(dir, "q1.gob")))
	assert.Equal(t, 3, first.Size())

	last := &tabular.QTable{}
	require.NoError(t, checkpointer.Load(last, filepath.Join(dir, "q2.gob")))
	assert.True(t, last.Equal(result.Q))
}

func TestTrainCheckpointerNeedsFilename(t *testing.T) {
	c := DefaultConfig()
	c.Episodes = 5
	_, err := Train(mustMaze(t, open3), c, 1, discard, WithCheckpointer(1, nil))
	assert.Error(t, err)
}

func TestCreateAgent(t *testing.T) {
	m := mustMaze(t, open3)
	var c agent.Config = DefaultConfig()

	a, err := c.CreateAgent(m, 1)
	require.NoError(t, err)
	assert.True(t, c.ValidAgent(a))
	assert.Implements(t, (*agent.TdErrorer)(nil), a)

	bad := DefaultConfig()
	bad.Episodes = 0
	_, err = bad.CreateAgent(m, 1)
	assert.Error(t, err)
}

// The episodic experiment measures the TD errors of the agent, which
// Train uses for early stopping
func TestEpisodicTdErrors(t *testing.T) {
	m := mustMaze(t, open3)
	c := DefaultConfig()

	start, err := environment.NewSingleStart(m, maze.State{Row: 0, Col: 0})
	require.NoError(t, err)
	env, _, err := environment.NewMaze(m, start, environment.NewStepLimit(90),
		c.Discount)
	require.NoError(t, err)

	q, err := New(m, c, 1)
	require.NoError(t, err)
	exp := experiment.NewEpisodic(env, q, 1)
	require.NoError(t, exp.Run())

	// Every action value starts at zero and every channel reward is -1,
	// so the first update of the episode already has a TD error of -1
	assert.GreaterOrEqual(t, exp.MaxTdError(), 1.0)
	assert.Equal(t, 1, exp.Episode())
	assert.True(t, exp.Done())
}

func TestSetSchedule(t *testing.T) {
	q, err := New(mustMaze(t, open3), DefaultConfig(), 1)
	require.NoError(t, err)

	q.SetSchedule(LinearDecay{Initial: 1, Final: 0, Episodes: 2})
	assert.Equal(t, 1.0, q.Epsilon())
	q.EndEpisode()
	assert.Equal(t, 0.5, q.Epsilon())
	assert.Equal(t, 1, q.Episode())
}
