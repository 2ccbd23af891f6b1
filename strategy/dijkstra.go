package strategy

import (
	"github.com/beka-birhanu/vinom-mouse/maze"
)

// ShortestPath maps the maze depth-first while relaxing a start-rooted
// distance field, then replays the shortest known route to the primary goal.
//
// Exploration stops once every cell has been visited, or once the stack has
// run dry with the primary goal already visited.
type ShortestPath struct{}

// Name implements Strategy.
func (d *ShortestPath) Name() string { return Dijkstra }

// Observe relaxes the field outward from the current cell, whose walls were
// just sensed.
func (d *ShortestPath) Observe(s *State, t Tick) {
	if t.Run != 0 {
		return
	}
	s.Field.Seed(s.Start)
	s.Field.RelaxFrom(t.Knowledge, t.Position, s.Visited)
}

// Explore implements Strategy.
func (d *ShortestPath) Explore(s *State, t Tick) (maze.Cell, error) {
	return depthFirst(s, t, func(candidates []maze.Cell) maze.Cell {
		return candidates[0]
	})
}

// Victory implements Strategy.
func (d *ShortestPath) Victory(s *State, t Tick) (maze.Cell, error) {
	return replay(s, t)
}

// RunComplete implements Strategy.
func (d *ShortestPath) RunComplete(s *State, t Tick) bool {
	dim := t.Knowledge.Dim()
	primary := s.Goals[0]
	mapped := len(s.Visited) == dim*dim
	stuck := len(s.Stack) == 0 && s.IsVisited(primary)
	if !mapped && !stuck {
		return false
	}

	route, err := s.Field.Path(primary)
	if err != nil {
		return false
	}
	s.Route = route
	return true
}

// Reset implements Strategy.
func (d *ShortestPath) Reset(s *State) {
	s.resetRun()
	s.Field.Reset()
	s.Field.Seed(s.Start)
}
