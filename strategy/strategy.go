/*
Package strategy implements the move selection algorithms of the robot.

Every algorithm satisfies the Strategy capability set and keeps nothing between
calls except its configuration: all per-run data (visited cells, backtrack
stack, distance field, victory route) lives in a State value that the engine
threads through each call. A tick is therefore a pure transition from
(State, Tick) to (State', target cell), which keeps each algorithm testable in
isolation.

Available algorithms, by registry name:

	dfs                   depth-first search with backtracking
	bestfirst             depth-first search guided by a distance heuristic
	dijkstra              depth-first mapping plus shortest-path relaxation
	floodfill             flood fill with a centre-and-back round trip
	floodfillexploratory  flood fill that validates its route before replaying it
*/
package strategy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/beka-birhanu/vinom-mouse/maze"
)

// Strategy related errors.
var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrUnknownHeuristic = errors.New("unknown heuristic")
	ErrNoMove           = errors.New("no passable move left")
	ErrRouteExhausted   = errors.New("victory route exhausted before reaching the goal")
	ErrNoRoute          = errors.New("goal unreachable from cell")
)

// Algorithm registry names.
const (
	DFS                  = "dfs"
	BestFirst            = "bestfirst"
	Dijkstra             = "dijkstra"
	FloodFill            = "floodfill"
	FloodFillExploratory = "floodfillexploratory"
)

// Tick is the read-only view of the robot handed to a strategy each tick.
type Tick struct {
	Knowledge  *maze.Knowledge // Cumulative wall map, already refined by this tick's sensors
	Position   maze.Cell       // Current cell
	Heading    maze.Heading    // Current heading
	Run        int             // Run id, 0 while exploring
	Neighbours []maze.Cell     // Passable neighbours, forward, right, left, back
}

// Strategy is the capability set shared by every algorithm.
type Strategy interface {
	// Name returns the registry name of the algorithm.
	Name() string

	// Observe absorbs the knowledge refined by the current tick into the
	// state, before completion is judged or a move chosen.
	Observe(s *State, t Tick)

	// Explore chooses the next cell during the exploration run.
	Explore(s *State, t Tick) (maze.Cell, error)

	// Victory chooses the next cell during replay runs.
	Victory(s *State, t Tick) (maze.Cell, error)

	// RunComplete reports whether the exploration run is over. It may update
	// the state, e.g. to compute the victory route or retarget a flood fill.
	RunComplete(s *State, t Tick) bool

	// Reset reinitialises the per-run state when a new run starts.
	Reset(s *State)
}

// State is the mutable data a strategy accumulates across ticks.
type State struct {
	Start     maze.Cell              // Cell every run starts from
	Goals     []maze.Cell            // Goal region at the maze centre, primary first
	Visited   map[maze.Cell]struct{} // Cells entered during the current run
	Stack     []maze.Cell            // Backtrack stack: path from start to the parent of the current cell
	Field     *DistanceField         // Distance field of the field based algorithms
	Route     []maze.Cell            // Victory route, first step after start to goal inclusive
	Cursor    int                    // Next route index to replay
	Targets   []maze.Cell            // Current flood fill target set
	Returning bool                   // Flood fill leg flag, toggled at each reached target
}

// NewState creates the state for a dim×dim maze.
func NewState(dim int) *State {
	s := &State{
		Start: maze.Start,
		Goals: maze.Goals(dim),
		Field: NewDistanceField(dim),
	}
	s.resetRun()
	return s
}

// Visit marks c as visited in the current run.
func (s *State) Visit(c maze.Cell) {
	s.Visited[c] = struct{}{}
}

// IsVisited reports whether c was entered during the current run.
func (s *State) IsVisited(c maze.Cell) bool {
	_, ok := s.Visited[c]
	return ok
}

// InGoal reports whether c belongs to the goal region.
func (s *State) InGoal(c maze.Cell) bool {
	return slices.Contains(s.Goals, c)
}

// resetRun brings back the data every algorithm reinitialises between runs.
// The victory route survives; only its replay cursor rewinds.
func (s *State) resetRun() {
	s.Visited = map[maze.Cell]struct{}{s.Start: {}}
	s.Stack = nil
	s.Cursor = 0
}

// Option configures a strategy built by New.
type Option func(*options)

type options struct {
	heuristic Heuristic
}

// WithHeuristic sets the distance heuristic of the best-first strategy.
func WithHeuristic(h Heuristic) Option {
	return func(o *options) {
		o.heuristic = h
	}
}

// Names lists the registered algorithm names.
func Names() []string {
	return []string{DFS, BestFirst, Dijkstra, FloodFill, FloodFillExploratory}
}

// New returns the strategy registered under name.
func New(name string, opts ...Option) (Strategy, error) {
	o := &options{heuristic: Manhattan}
	for _, opt := range opts {
		opt(o)
	}

	switch name {
	case DFS:
		return &DepthFirst{}, nil
	case BestFirst:
		return &Informed{Heuristic: o.heuristic}, nil
	case Dijkstra:
		return &ShortestPath{}, nil
	case FloodFill:
		return &Flood{}, nil
	case FloodFillExploratory:
		return &ExploratoryFlood{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// uTurn reports whether reaching target from the tick's pose needs a 180°
// turn, in which case the engine only rotates and the decision is repeated on
// the next tick.
func uTurn(t Tick, target maze.Cell) bool {
	h, ok := maze.HeadingBetween(t.Position, target)
	return ok && maze.Rotation(t.Heading, h) == 180
}

// replay returns the next victory route cell. The cursor only advances when
// the robot will actually move into the cell this tick.
func replay(s *State, t Tick) (maze.Cell, error) {
	if s.Cursor >= len(s.Route) {
		return maze.Cell{}, ErrRouteExhausted
	}

	target := s.Route[s.Cursor]
	if !uTurn(t, target) {
		s.Cursor++
	}
	return target, nil
}
