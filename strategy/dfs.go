package strategy

import (
	"slices"

	"github.com/beka-birhanu/vinom-mouse/maze"
)

// DepthFirst is an uninformed depth-first search. It takes the first
// unvisited neighbour, which favours going straight, and backtracks along its
// stack out of dead ends. The run ends as soon as a goal cell is reached.
type DepthFirst struct{}

// Name implements Strategy.
func (d *DepthFirst) Name() string { return DFS }

// Observe implements Strategy. Depth-first search keeps no field.
func (d *DepthFirst) Observe(*State, Tick) {}

// Explore implements Strategy.
func (d *DepthFirst) Explore(s *State, t Tick) (maze.Cell, error) {
	return depthFirst(s, t, func(candidates []maze.Cell) maze.Cell {
		return candidates[0]
	})
}

// Victory implements Strategy.
func (d *DepthFirst) Victory(s *State, t Tick) (maze.Cell, error) {
	return replay(s, t)
}

// RunComplete implements Strategy.
func (d *DepthFirst) RunComplete(s *State, t Tick) bool {
	return stackRouteAtGoal(s, t)
}

// Reset implements Strategy.
func (d *DepthFirst) Reset(s *State) {
	s.resetRun()
}

// depthFirst advances into the cell picked by choose among the unvisited
// neighbours, or backtracks when there is none.
func depthFirst(s *State, t Tick, choose func([]maze.Cell) maze.Cell) (maze.Cell, error) {
	var unvisited []maze.Cell
	for _, n := range t.Neighbours {
		if !s.IsVisited(n) {
			unvisited = append(unvisited, n)
		}
	}

	if len(unvisited) > 0 {
		// A turn-only tick repeats the decision; the cell is already on top.
		if len(s.Stack) == 0 || s.Stack[len(s.Stack)-1] != t.Position {
			s.Stack = append(s.Stack, t.Position)
		}
		return choose(unvisited), nil
	}

	return backtrack(s, t)
}

// backtrack pops the cell the robot came from. When that cell lies behind the
// robot the engine only turns this tick, so the cell goes back on the stack to
// be popped again once the robot faces it.
func backtrack(s *State, t Tick) (maze.Cell, error) {
	if len(s.Stack) == 0 {
		return maze.Cell{}, ErrNoMove
	}

	target := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	if uTurn(t, target) {
		s.Stack = append(s.Stack, target)
	}
	return target, nil
}

// stackRouteAtGoal completes the run on a goal cell, keeping the stacked path
// without its start entry, plus the goal, as the victory route.
func stackRouteAtGoal(s *State, t Tick) bool {
	if !s.InGoal(t.Position) {
		return false
	}

	s.Route = nil
	if len(s.Stack) > 0 {
		s.Route = append(slices.Clone(s.Stack[1:]), t.Position)
	}
	return true
}
