package strategy

import (
	"fmt"
	"slices"

	"github.com/beka-birhanu/vinom-mouse/maze"
)

// DistanceField labels every cell with a step distance and the cell it was
// reached from. Cells never reached hold Unknown, which is larger than any
// reachable distance.
//
// All relaxations only ever lower a distance. Dijkstra relies on that to
// update the field incrementally as cells are revealed; flood fill starts over
// with Flood whenever walls may have lengthened paths.
type DistanceField struct {
	dim     int
	unknown int
	dist    []int
	parent  []maze.Cell
}

// NewDistanceField creates a field for a dim×dim maze with every cell Unknown.
func NewDistanceField(dim int) *DistanceField {
	f := &DistanceField{
		dim:     dim,
		unknown: dim * dim,
		dist:    make([]int, dim*dim),
		parent:  make([]maze.Cell, dim*dim),
	}
	f.Reset()
	return f
}

// Unknown returns the sentinel distance of unreached cells.
func (f *DistanceField) Unknown() int {
	return f.unknown
}

// Reset marks every cell Unknown.
func (f *DistanceField) Reset() {
	for i := range f.dist {
		f.dist[i] = f.unknown
		f.parent[i] = maze.Cell{X: i / f.dim, Y: i % f.dim}
	}
}

// Distance returns the distance of c, Unknown for cells outside the grid.
func (f *DistanceField) Distance(c maze.Cell) int {
	if !f.inBound(c) {
		return f.unknown
	}
	return f.dist[f.index(c)]
}

// Parent returns the cell c was last relaxed from. ok is false for unreached
// cells and for seeds.
func (f *DistanceField) Parent(c maze.Cell) (p maze.Cell, ok bool) {
	if !f.inBound(c) || f.dist[f.index(c)] == f.unknown {
		return maze.Cell{}, false
	}
	p = f.parent[f.index(c)]
	return p, p != c
}

// Distances returns a copy of the raw distances, indexed x*dim+y.
func (f *DistanceField) Distances() []int {
	return slices.Clone(f.dist)
}

// Seed sets c to distance zero. It reports whether the distance changed.
func (f *DistanceField) Seed(c maze.Cell) bool {
	if !f.inBound(c) || f.dist[f.index(c)] == 0 {
		return false
	}
	f.set(c, 0, c)
	return true
}

// RelaxFrom propagates the distance of origin to its open neighbours and on
// through every visited cell whose distance dropped. Unvisited cells are
// labelled but not expanded: their own walls are still guesses. It returns the
// number of distances lowered.
func (f *DistanceField) RelaxFrom(k *maze.Knowledge, origin maze.Cell, visited map[maze.Cell]struct{}) int {
	lowered := 0
	queue := []maze.Cell{origin}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		next := f.Distance(pos) + 1
		for _, n := range k.Neighbours(pos, maze.Up) {
			if f.Distance(n) <= next {
				continue
			}
			f.set(n, next, pos)
			lowered++
			if _, ok := visited[n]; ok {
				queue = append(queue, n)
			}
		}
	}
	return lowered
}

// Settle seeds goals and relaxes the field to a fixed point, where every
// reached cell other than a goal holds one more than its lowest open
// neighbour. It returns the number of distances changed, zero on a field that
// has already converged.
func (f *DistanceField) Settle(k *maze.Knowledge, goals []maze.Cell) int {
	changed := 0
	for _, g := range goals {
		if f.Seed(g) {
			changed++
		}
	}

	var queue []maze.Cell
	for i, d := range f.dist {
		if d < f.unknown {
			queue = append(queue, maze.Cell{X: i / f.dim, Y: i % f.dim})
		}
	}

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		next := f.Distance(pos) + 1
		for _, n := range k.Neighbours(pos, maze.Up) {
			if f.Distance(n) <= next {
				continue
			}
			f.set(n, next, pos)
			changed++
			queue = append(queue, n)
		}
	}
	return changed
}

// Flood recomputes the field from scratch as step distances to the nearest of
// goals. Cells cut off from every goal stay Unknown.
func (f *DistanceField) Flood(k *maze.Knowledge, goals []maze.Cell) {
	f.Reset()
	f.Settle(k, goals)
}

// Path follows parent pointers back from to and returns the cells from the
// first step after the seed up to to inclusive.
func (f *DistanceField) Path(to maze.Cell) ([]maze.Cell, error) {
	if f.Distance(to) == f.unknown {
		return nil, fmt.Errorf("%w: %s", ErrNoRoute, to)
	}

	var path []maze.Cell
	for node := to; len(path) <= f.unknown; {
		parent, ok := f.Parent(node)
		if !ok {
			slices.Reverse(path)
			return path, nil
		}
		path = append(path, node)
		node = parent
	}
	return nil, fmt.Errorf("%w: parent chain of %s loops", ErrNoRoute, to)
}

// Descend simulates a robot at from, facing heading, greedily stepping to its
// lowest neighbour until it stands on one of goals. Ties go to the neighbour
// the robot would prefer: forward, right, left, back. The returned route
// excludes from.
func (f *DistanceField) Descend(k *maze.Knowledge, from maze.Cell, heading maze.Heading, goals []maze.Cell) ([]maze.Cell, error) {
	var route []maze.Cell
	pos := from
	for !slices.Contains(goals, pos) {
		if len(route) >= f.unknown {
			return nil, fmt.Errorf("%w: %s", ErrNoRoute, from)
		}

		next, ok := f.lowest(k.Neighbours(pos, heading))
		if !ok || f.Distance(next) >= f.Distance(pos) {
			return nil, fmt.Errorf("%w: %s", ErrNoRoute, from)
		}
		heading, _ = maze.HeadingBetween(pos, next)
		route = append(route, next)
		pos = next
	}
	return route, nil
}

// lowest returns the first cell of candidates with the smallest distance.
func (f *DistanceField) lowest(candidates []maze.Cell) (maze.Cell, bool) {
	if len(candidates) == 0 {
		return maze.Cell{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if f.Distance(c) < f.Distance(best) {
			best = c
		}
	}
	return best, true
}

func (f *DistanceField) set(c maze.Cell, dist int, parent maze.Cell) {
	i := f.index(c)
	f.dist[i] = dist
	f.parent[i] = parent
}

func (f *DistanceField) index(c maze.Cell) int {
	return c.X*f.dim + c.Y
}

func (f *DistanceField) inBound(c maze.Cell) bool {
	return c.X >= 0 && c.X < f.dim && c.Y >= 0 && c.Y < f.dim
}
