package service

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/beka-birhanu/vinom-mouse/maze"
	"github.com/beka-birhanu/vinom-mouse/robot"
	"github.com/beka-birhanu/vinom-mouse/service/i"
	"github.com/beka-birhanu/vinom-mouse/simulator"
	"github.com/beka-birhanu/vinom-mouse/strategy"
)

const (
	defaultMaxTicks = 10000
	defaultMaxRuns  = 2
)

var (
	ErrBudgetExhausted = errors.New("tick budget exhausted before the last run completed")
)

// Simulation drives one robot engine through a ground-truth maze, playing the
// part of the maze tester: it answers each tick with sensor readings, applies
// the returned command and restarts the robot on RESET.
type Simulation struct {
	maze       *simulator.Maze
	engine     *robot.Engine
	session    *dmn.Session
	maxTicks   int
	maxRuns    int
	sessions   i.SessionRepo
	scoreboard i.Scoreboard
	metrics    i.Recorder
	logger     i.Logger
}

// Config holds the parameters of a Simulation. Sessions, Scoreboard and
// Metrics are optional.
type Config struct {
	Maze       *simulator.Maze
	Algorithm  string
	Heuristic  string
	Seed       int64 // Recorded with the session; the maze is already built
	MaxTicks   int
	MaxRuns    int
	Sessions   i.SessionRepo
	Scoreboard i.Scoreboard
	Metrics    i.Recorder
	Logger     i.Logger
}

// NewSimulation validates c and builds the engine.
func NewSimulation(c *Config) (*Simulation, error) {
	if c.Maze == nil {
		return nil, errors.New("simulation needs a maze")
	}
	if c.Logger == nil {
		return nil, errors.New("simulation needs a logger")
	}

	heuristic, err := strategy.HeuristicByName(c.Heuristic)
	if err != nil {
		return nil, err
	}

	engine, err := robot.New(c.Maze.Dim(), c.Algorithm, robot.WithLogger(c.Logger), robot.WithHeuristic(heuristic))
	if err != nil {
		return nil, err
	}

	session, err := dmn.NewSession(dmn.SessionConfig{
		Algorithm: c.Algorithm,
		Heuristic: c.Heuristic,
		Dim:       c.Maze.Dim(),
		Seed:      c.Seed,
	})
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		maze:       c.Maze,
		engine:     engine,
		session:    session,
		maxTicks:   c.MaxTicks,
		maxRuns:    c.MaxRuns,
		sessions:   c.Sessions,
		scoreboard: c.Scoreboard,
		metrics:    c.Metrics,
		logger:     c.Logger,
	}
	if s.maxTicks <= 0 {
		s.maxTicks = defaultMaxTicks
	}
	if s.maxRuns <= 0 {
		s.maxRuns = defaultMaxRuns
	}
	return s, nil
}

// Engine returns the engine being driven.
func (s *Simulation) Engine() *robot.Engine {
	return s.engine
}

// Run drives the engine until MaxRuns runs completed or MaxTicks ticks were
// handled, then persists the session and its score. Running out of ticks is
// reported with ErrBudgetExhausted alongside the recorded session; engine
// faults and collisions abort without persisting.
func (s *Simulation) Run(ctx context.Context) (*dmn.Session, error) {
	var (
		pos     = maze.Start
		heading = maze.Up
		current = dmn.RunResult{}
	)

	for tick := 0; tick < s.maxTicks && len(s.session.Runs) < s.maxRuns; tick++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cmd, err := s.engine.NextMove(s.maze.Sensors(pos, heading))
		if err != nil {
			s.logger.Error(fmt.Sprintf("%s tick %d: %v", s.session.Algorithm, tick, err))
			return nil, err
		}
		current.Ticks++
		if s.metrics != nil {
			s.metrics.Tick(s.session.Algorithm)
		}

		if cmd.Reset {
			current.Reached = true
			s.finishRun(current)
			current = dmn.RunResult{Run: current.Run + 1}
			pos, heading = maze.Start, maze.Up
			continue
		}

		pos, heading, err = s.maze.Apply(pos, heading, cmd.Rotation, cmd.Movement)
		if err != nil {
			s.logger.Error(fmt.Sprintf("%s tick %d: command %s: %v", s.session.Algorithm, tick, cmd, err))
			return nil, err
		}
		if cmd.Movement > 0 {
			current.Moves++
		}
	}

	var budgetErr error
	if len(s.session.Runs) < s.maxRuns {
		s.session.Runs = append(s.session.Runs, current)
		budgetErr = fmt.Errorf("%w: %d ticks, %d of %d runs", ErrBudgetExhausted, s.maxTicks, len(s.session.Runs)-1, s.maxRuns)
		s.logger.Warning(budgetErr.Error())
	}

	s.session.Route = s.engine.VictoryRoute()
	s.session.Steps = s.engine.Journey()
	if s.metrics != nil {
		s.metrics.Route(s.session.Algorithm, len(s.session.Route))
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return s.session, budgetErr
}

func (s *Simulation) finishRun(r dmn.RunResult) {
	s.session.Runs = append(s.session.Runs, r)
	if s.metrics != nil {
		s.metrics.RunCompleted(s.session.Algorithm, r.Run, r.Ticks)
	}
}

func (s *Simulation) persist(ctx context.Context) error {
	if s.sessions != nil {
		if err := s.sessions.Save(s.session); err != nil {
			s.logger.Error(fmt.Sprintf("Saving session %s: %v", s.session.ID, err))
			return err
		}
		s.logger.Info(fmt.Sprintf("Saved session %s (%d steps)", s.session.ID, len(s.session.Steps)))
	}

	score, ok := s.session.Score()
	if s.scoreboard == nil || !ok {
		return nil
	}
	if err := s.scoreboard.Record(ctx, score); err != nil {
		// The session is already stored; a missed score is not fatal.
		s.logger.Warning(fmt.Sprintf("Recording score of session %s: %v", s.session.ID, err))
	}
	return nil
}
