/*
Package robot implements the per-tick decision engine of a micromouse.

The Engine owns the robot's pose and its cumulative wall knowledge for its
whole lifetime. Each call to NextMove is one tick: the sensor readings refine
the knowledge, the configured strategy picks the next cell, and the engine
turns that cell into a rotation and a forward step, or into a RESET signal
when the current run is over. Run 0 explores; later runs replay what run 0
learned.
*/
package robot

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/beka-birhanu/vinom-mouse/maze"
	"github.com/beka-birhanu/vinom-mouse/strategy"
)

// Engine related errors.
var (
	ErrInvalidSensor   = errors.New("sensor reading must not be negative")
	ErrUnalignedTarget = errors.New("target cell is not orthogonally adjacent")
)

// Phase is the state of the tick state machine.
type Phase int

const (
	Exploring    Phase = iota // Run 0
	Replaying                 // Runs 1 and later
	ResetPending              // A run just completed; state is being reinitialised
)

func (p Phase) String() string {
	switch p {
	case Exploring:
		return "EXPLORING"
	case Replaying:
		return "REPLAYING"
	case ResetPending:
		return "RESET_PENDING"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Command is the engine's answer to one tick.
type Command struct {
	Rotation int  // Relative turn in degrees: -90, 0, 90 or 180
	Movement int  // Cells to move forward after turning: 0 or 1
	Reset    bool // The run is over; Rotation and Movement carry no meaning
}

// ResetCommand signals the end of a run.
var ResetCommand = Command{Reset: true}

// String renders the command the way the maze tester expects it.
func (c Command) String() string {
	if c.Reset {
		return "Reset"
	}
	return fmt.Sprintf("%d,%d", c.Rotation, c.Movement)
}

// Pose is where the robot believes it is.
type Pose struct {
	Position maze.Cell    // Current cell
	Heading  maze.Heading // Current absolute heading
	Run      int          // Run id, 0 while exploring
	Tick     int          // Ticks handled over the engine lifetime
}

// Step is one entry of the journey log, recorded at the start of every tick.
type Step struct {
	Tick     int           `json:"tick" bson:"tick"`
	Position maze.Cell     `json:"position" bson:"position"`
	Heading  maze.Heading  `json:"heading" bson:"heading"`
	Run      int           `json:"run" bson:"run"`
	Maze     maze.Snapshot `json:"maze" bson:"maze"`
}

// Logger receives engine events.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

// Option configures an Engine.
type Option func(*config)

type config struct {
	logger     Logger
	strategies []strategy.Option
}

// WithLogger sets the logger run completions are reported to.
func WithLogger(l Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithHeuristic sets the heuristic of the best-first strategy.
func WithHeuristic(h strategy.Heuristic) Option {
	return func(c *config) {
		c.strategies = append(c.strategies, strategy.WithHeuristic(h))
	}
}

// Engine is the tick state machine of one robot.
type Engine struct {
	algorithm strategy.Strategy
	state     *strategy.State
	knowledge *maze.Knowledge
	pose      Pose
	phase     Phase
	runTicks  int
	journey   []Step
	logger    Logger
}

// New creates an engine for a mazeDim×mazeDim maze driven by the named
// algorithm. The robot starts in the bottom-left cell facing up.
func New(mazeDim int, algorithm string, opts ...Option) (*Engine, error) {
	c := &config{logger: nopLogger{}}
	for _, opt := range opts {
		opt(c)
	}

	knowledge, err := maze.NewKnowledge(mazeDim)
	if err != nil {
		return nil, err
	}

	s, err := strategy.New(algorithm, c.strategies...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		algorithm: s,
		state:     strategy.NewState(mazeDim),
		knowledge: knowledge,
		logger:    c.logger,
	}
	e.algorithm.Reset(e.state)
	e.pose = Pose{Position: e.state.Start, Heading: maze.Up}
	return e, nil
}

// NextMove handles one tick given the left, forward and right sensor
// readings.
func (e *Engine) NextMove(sensors maze.Sensors) (Command, error) {
	for _, reading := range sensors {
		if reading < 0 {
			return Command{}, fmt.Errorf("%w: %v", ErrInvalidSensor, sensors)
		}
	}

	e.journey = append(e.journey, Step{
		Tick:     e.pose.Tick,
		Position: e.pose.Position,
		Heading:  e.pose.Heading,
		Run:      e.pose.Run,
		Maze:     e.knowledge.Snapshot(),
	})
	e.pose.Tick++
	e.runTicks++

	e.knowledge.Sense(e.pose.Position, e.pose.Heading, sensors)
	e.state.Visit(e.pose.Position)
	t := strategy.Tick{
		Knowledge:  e.knowledge,
		Position:   e.pose.Position,
		Heading:    e.pose.Heading,
		Run:        e.pose.Run,
		Neighbours: e.knowledge.Neighbours(e.pose.Position, e.pose.Heading),
	}
	e.algorithm.Observe(e.state, t)

	if e.runComplete(t) {
		e.reset()
		return ResetCommand, nil
	}

	var (
		target maze.Cell
		err    error
	)
	if e.pose.Run == 0 {
		target, err = e.algorithm.Explore(e.state, t)
	} else {
		target, err = e.algorithm.Victory(e.state, t)
	}
	if err != nil {
		return Command{}, fmt.Errorf("%s at %s: %w", e.algorithm.Name(), e.pose.Position, err)
	}

	heading, ok := maze.HeadingBetween(e.pose.Position, target)
	if !ok {
		return Command{}, fmt.Errorf("%w: %s chose %s from %s", ErrUnalignedTarget, e.algorithm.Name(), target, e.pose.Position)
	}

	cmd := Command{Rotation: maze.Rotation(e.pose.Heading, heading), Movement: 1}
	if cmd.Rotation == 180 {
		cmd.Movement = 0
	}

	e.pose.Heading = e.pose.Heading.Turn(cmd.Rotation)
	if cmd.Movement > 0 {
		e.pose.Position = e.pose.Position.Add(e.pose.Heading.Delta())
	}
	return cmd, nil
}

// runComplete asks the strategy while exploring; replays end on any goal cell.
func (e *Engine) runComplete(t strategy.Tick) bool {
	if e.pose.Run == 0 {
		return e.algorithm.RunComplete(e.state, t)
	}
	return e.state.InGoal(t.Position)
}

func (e *Engine) reset() {
	e.phase = ResetPending
	e.logger.Info(fmt.Sprintf("%s run %d complete after %d ticks, victory route %d cells", e.algorithm.Name(), e.pose.Run, e.runTicks, len(e.state.Route)))

	e.algorithm.Reset(e.state)
	e.pose.Run++
	e.pose.Position = e.state.Start
	e.pose.Heading = maze.Up
	e.runTicks = 0
	e.phase = Replaying
}

// Algorithm returns the registry name of the strategy in use.
func (e *Engine) Algorithm() string {
	return e.algorithm.Name()
}

// Pose returns the current pose.
func (e *Engine) Pose() Pose {
	return e.pose
}

// Phase returns the current state of the tick state machine.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Knowledge returns a snapshot of the wall map.
func (e *Engine) Knowledge() maze.Snapshot {
	return e.knowledge.Snapshot()
}

// Render draws the wall map.
func (e *Engine) Render() string {
	return e.knowledge.String()
}

// VictoryRoute returns a copy of the route replayed on runs after the first.
func (e *Engine) VictoryRoute() []maze.Cell {
	return append([]maze.Cell(nil), e.state.Route...)
}

// Journey returns a copy of the journey log.
func (e *Engine) Journey() []Step {
	journey := make([]Step, len(e.journey))
	for i, step := range e.journey {
		step.Maze.Cells = slices.Clone(step.Maze.Cells)
		journey[i] = step
	}
	return journey
}
