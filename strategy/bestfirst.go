package strategy

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/beka-birhanu/vinom-mouse/maze"
)

// Heuristic estimates the distance between two cells.
type Heuristic func(from, to maze.Cell) float64

// Manhattan is the grid distance between two cells.
func Manhattan(from, to maze.Cell) float64 {
	return math.Abs(float64(from.X-to.X)) + math.Abs(float64(from.Y-to.Y))
}

// Euclidean is the straight line distance between two cells.
func Euclidean(from, to maze.Cell) float64 {
	return math.Hypot(float64(from.X-to.X), float64(from.Y-to.Y))
}

// LegacyEuclidean is the distance formula of earlier solver versions, whose
// vertical term adds the two Y coordinates instead of subtracting them. It is
// not a metric and its intent is unverified; it stays selectable so older
// journeys can be reproduced.
func LegacyEuclidean(from, to maze.Cell) float64 {
	dx := float64(from.X - to.X)
	dy := float64(from.Y + to.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// HeuristicByName resolves "manhattan", "euclidean" or "legacy-euclidean".
func HeuristicByName(name string) (Heuristic, error) {
	switch name {
	case "", "manhattan":
		return Manhattan, nil
	case "euclidean":
		return Euclidean, nil
	case "legacy-euclidean":
		return LegacyEuclidean, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}

// Informed is a best-first flavoured depth-first search: among the unvisited
// neighbours it advances into the one closest to the goal region according to
// Heuristic. Ties keep the forward, right, left, back preference.
type Informed struct {
	Heuristic Heuristic
}

// Name implements Strategy.
func (b *Informed) Name() string { return BestFirst }

// Observe implements Strategy.
func (b *Informed) Observe(*State, Tick) {}

// Explore implements Strategy.
func (b *Informed) Explore(s *State, t Tick) (maze.Cell, error) {
	return depthFirst(s, t, func(candidates []maze.Cell) maze.Cell {
		sorted := slices.Clone(candidates)
		slices.SortStableFunc(sorted, func(a, c maze.Cell) int {
			return cmp.Compare(b.toGoal(s, a), b.toGoal(s, c))
		})
		return sorted[0]
	})
}

// Victory implements Strategy.
func (b *Informed) Victory(s *State, t Tick) (maze.Cell, error) {
	return replay(s, t)
}

// RunComplete implements Strategy.
func (b *Informed) RunComplete(s *State, t Tick) bool {
	return stackRouteAtGoal(s, t)
}

// Reset implements Strategy.
func (b *Informed) Reset(s *State) {
	s.resetRun()
}

// toGoal is the heuristic distance from c to the nearest goal cell.
func (b *Informed) toGoal(s *State, c maze.Cell) float64 {
	h := b.Heuristic
	if h == nil {
		h = Manhattan
	}

	best := math.Inf(1)
	for _, g := range s.Goals {
		best = min(best, h(c, g))
	}
	return best
}
