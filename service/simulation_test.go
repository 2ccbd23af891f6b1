package service

import (
	"context"
	"testing"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-mouse/maze"
	"github.com/beka-birhanu/vinom-mouse/simulator"
	"github.com/beka-birhanu/vinom-mouse/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	infos, warnings, errors []string
}

func (l *recordingLogger) Info(msg string)    { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warning(msg string) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(msg string)   { l.errors = append(l.errors, msg) }

type countingRecorder struct {
	ticks int
	runs  []int
	route int
}

func (r *countingRecorder) Tick(string)                       { r.ticks++ }
func (r *countingRecorder) RunCompleted(_ string, run, _ int) { r.runs = append(r.runs, run) }
func (r *countingRecorder) Route(_ string, cells int)         { r.route = cells }

func openMaze(t *testing.T) *simulator.Maze {
	t.Helper()
	m, err := simulator.Open(4)
	require.NoError(t, err)
	return m
}

func TestSimulationRun(t *testing.T) {
	sessions := repo.NewMemorySessionRepo()
	board := sortedstorage.NewMemoryScoreboard()
	recorder := &countingRecorder{}
	logger := &recordingLogger{}

	sim, err := NewSimulation(&Config{
		Maze:       openMaze(t),
		Algorithm:  strategy.BestFirst,
		MaxRuns:    2,
		Sessions:   sessions,
		Scoreboard: board,
		Metrics:    recorder,
		Logger:     logger,
	})
	require.NoError(t, err)

	session, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []dmn.RunResult{
		{Run: 0, Ticks: 3, Moves: 2, Reached: true},
		{Run: 1, Ticks: 3, Moves: 2, Reached: true},
	}, session.Runs)
	assert.Equal(t, []maze.Cell{{X: 0, Y: 1}, {X: 1, Y: 1}}, session.Route)
	assert.Len(t, session.Steps, 6)

	t.Run("Session is persisted", func(t *testing.T) {
		stored, err := sessions.ByID(session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.Runs, stored.Runs)
		assert.Len(t, stored.Steps, 6)
	})

	t.Run("Score is recorded", func(t *testing.T) {
		top, err := board.Top(context.Background(), 4, 10)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, dmn.Score{SessionID: session.ID, Algorithm: strategy.BestFirst, Dim: 4, Ticks: 3}, top[0])
	})

	t.Run("Metrics and logs", func(t *testing.T) {
		assert.Equal(t, 6, recorder.ticks)
		assert.Equal(t, []int{0, 1}, recorder.runs)
		assert.Equal(t, 2, recorder.route)
		assert.NotEmpty(t, logger.infos)
		assert.Empty(t, logger.errors)
	})
}

func TestSimulationBudget(t *testing.T) {
	sessions := repo.NewMemorySessionRepo()
	logger := &recordingLogger{}
	sim, err := NewSimulation(&Config{
		Maze:      openMaze(t),
		Algorithm: strategy.DFS,
		MaxTicks:  2,
		Sessions:  sessions,
		Logger:    logger,
	})
	require.NoError(t, err)

	session, err := sim.Run(context.Background())
	assert.ErrorIs(t, err, ErrBudgetExhausted)
	require.NotNil(t, session)
	assert.Equal(t, []dmn.RunResult{{Run: 0, Ticks: 2, Moves: 2}}, session.Runs)
	assert.Len(t, logger.warnings, 1)

	_, err = sessions.ByID(session.ID)
	assert.NoError(t, err, "an unfinished session is still stored")
}

func TestSimulationCancelled(t *testing.T) {
	sim, err := NewSimulation(&Config{
		Maze:      openMaze(t),
		Algorithm: strategy.FloodFill,
		Logger:    &recordingLogger{},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSimulation(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
		err  error
	}{
		{
			name: "Unknown algorithm",
			cfg:  Config{Maze: openMaze(t), Algorithm: "random", Logger: &recordingLogger{}},
			err:  strategy.ErrUnknownAlgorithm,
		},
		{
			name: "Unknown heuristic",
			cfg:  Config{Maze: openMaze(t), Algorithm: strategy.BestFirst, Heuristic: "chebyshev", Logger: &recordingLogger{}},
			err:  strategy.ErrUnknownHeuristic,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSimulation(&tc.cfg)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	t.Run("Missing maze", func(t *testing.T) {
		_, err := NewSimulation(&Config{Algorithm: strategy.DFS, Logger: &recordingLogger{}})
		assert.Error(t, err)
	})
}
