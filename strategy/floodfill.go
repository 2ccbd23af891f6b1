package strategy

import (
	"slices"

	"github.com/beka-birhanu/vinom-mouse/maze"
)

// Flood steers by a distance field flooded from its current targets and
// recomputed every tick. Run 0 is a round trip: to the centre, then back to
// the start. Replays descend the field toward the centre.
type Flood struct{}

// Name implements Strategy.
func (f *Flood) Name() string { return FloodFill }

// Observe implements Strategy.
func (f *Flood) Observe(s *State, t Tick) {
	observeFlood(s, t)
}

// Explore implements Strategy.
func (f *Flood) Explore(s *State, t Tick) (maze.Cell, error) {
	return descend(s, t)
}

// Victory implements Strategy.
func (f *Flood) Victory(s *State, t Tick) (maze.Cell, error) {
	return descend(s, t)
}

// RunComplete implements Strategy.
func (f *Flood) RunComplete(s *State, t Tick) bool {
	if !slices.Contains(s.Targets, t.Position) {
		return false
	}
	if s.Returning {
		retarget(s, t, s.Goals)
		if route, err := s.Field.Descend(t.Knowledge, s.Start, maze.Up, s.Goals); err == nil {
			s.Route = route
		}
		return true
	}

	s.Returning = true
	retarget(s, t, []maze.Cell{s.Start})
	return false
}

// Reset implements Strategy.
func (f *Flood) Reset(s *State) {
	resetFlood(s)
}

// ExploratoryFlood is a flood fill that refuses to trust a route it has not
// driven. Each time it reaches a target it simulates the replay route from the
// start; the first unvisited cell on it becomes the next target, and the run
// only ends once the whole simulated route has been visited.
type ExploratoryFlood struct{}

// Name implements Strategy.
func (e *ExploratoryFlood) Name() string { return FloodFillExploratory }

// Observe implements Strategy. A temporary target that newly found walls cut
// off from the robot is dropped in favour of the centre, where the route is
// re-simulated on arrival.
func (e *ExploratoryFlood) Observe(s *State, t Tick) {
	observeFlood(s, t)
	if s.Field.Distance(t.Position) == s.Field.Unknown() && !slices.Equal(s.Targets, s.Goals) {
		retarget(s, t, s.Goals)
	}
}

// Explore implements Strategy.
func (e *ExploratoryFlood) Explore(s *State, t Tick) (maze.Cell, error) {
	return descend(s, t)
}

// Victory implements Strategy.
func (e *ExploratoryFlood) Victory(s *State, t Tick) (maze.Cell, error) {
	return descend(s, t)
}

// RunComplete implements Strategy.
func (e *ExploratoryFlood) RunComplete(s *State, t Tick) bool {
	if !slices.Contains(s.Targets, t.Position) {
		return false
	}

	retarget(s, t, s.Goals)
	route, err := s.Field.Descend(t.Knowledge, s.Start, maze.Up, s.Goals)
	if err != nil {
		return false
	}

	for _, c := range route {
		if !s.IsVisited(c) {
			s.Returning = !s.Returning
			retarget(s, t, []maze.Cell{c})
			return false
		}
	}

	s.Route = route
	return true
}

// Reset implements Strategy.
func (e *ExploratoryFlood) Reset(s *State) {
	resetFlood(s)
}

func observeFlood(s *State, t Tick) {
	if len(s.Targets) == 0 {
		s.Targets = slices.Clone(s.Goals)
	}
	s.Field.Flood(t.Knowledge, s.Targets)
}

func retarget(s *State, t Tick, targets []maze.Cell) {
	s.Targets = slices.Clone(targets)
	s.Field.Flood(t.Knowledge, s.Targets)
}

func resetFlood(s *State) {
	s.resetRun()
	s.Returning = false
	s.Targets = slices.Clone(s.Goals)
}

// descend steps to the neighbour with the lowest field value, visited or not.
func descend(s *State, t Tick) (maze.Cell, error) {
	next, ok := s.Field.lowest(t.Neighbours)
	if !ok {
		return maze.Cell{}, ErrNoMove
	}
	return next, nil
}
