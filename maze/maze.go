/*
Package maze holds what the robot knows about the maze it is solving.

Knowledge is a square grid of WallMask values. It starts out optimistic: every
edge is assumed open except the perimeter. Sensor readings only ever close
edges, and a closed edge is cleared on both adjoining cells, so the grid is the
cumulative, monotonically refined picture of the maze across every run.

The package also resolves the passable neighbours of a cell in the order the
robot prefers them (forward, right, left, back) and the rotation math that
maps cell-to-cell steps onto headings.
*/
package maze

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrInvalidDimension = errors.New("maze dimension must be positive")
)

// neighbourTurns orders candidate moves forward, right, left, back.
var neighbourTurns = [4]int{0, 90, -90, 180}

// Knowledge is the robot's wall map.
type Knowledge struct {
	dim   int        // Side length of the square maze
	cells []WallMask // Passability per cell, indexed x*dim+y
}

// NewKnowledge creates a fully open map of the given side length whose
// perimeter edges are closed.
func NewKnowledge(dim int) (*Knowledge, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}

	k := &Knowledge{
		dim:   dim,
		cells: make([]WallMask, dim*dim),
	}
	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			mask := PassAll
			if x == 0 {
				mask &^= PassLeft
			}
			if x == dim-1 {
				mask &^= PassRight
			}
			if y == 0 {
				mask &^= PassDown
			}
			if y == dim-1 {
				mask &^= PassUp
			}
			k.cells[x*dim+y] = mask
		}
	}
	return k, nil
}

// Dim returns the side length of the maze.
func (k *Knowledge) Dim() int {
	return k.dim
}

// InBound reports whether c lies inside the grid.
func (k *Knowledge) InBound(c Cell) bool {
	return c.X >= 0 && c.X < k.dim && c.Y >= 0 && c.Y < k.dim
}

// Mask returns the passability bits of c. Out of bound cells are closed.
func (k *Knowledge) Mask(c Cell) WallMask {
	if !k.InBound(c) {
		return 0
	}
	return k.cells[c.X*k.dim+c.Y]
}

// Passable reports whether the edge leaving c along h is open.
func (k *Knowledge) Passable(c Cell, h Heading) bool {
	return k.Mask(c).Open(h)
}

// CloseWall records a wall on the edge leaving c along h. The matching bit of
// the adjoining cell is cleared too; at the perimeter there is no such cell
// and only c is touched.
func (k *Knowledge) CloseWall(c Cell, h Heading) {
	if !k.InBound(c) {
		return
	}
	k.cells[c.X*k.dim+c.Y] &^= h.Bit()

	adjacent := c.Add(h.Delta())
	if !k.InBound(adjacent) {
		return
	}
	k.cells[adjacent.X*k.dim+adjacent.Y] &^= h.Opposite().Bit()
}

// Sense folds one set of sensor readings taken at c while facing h into the
// map. A zero reading means a wall right next to the robot in that direction.
func (k *Knowledge) Sense(c Cell, h Heading, s Sensors) {
	for i, reading := range s {
		if reading == 0 {
			k.CloseWall(c, h.Turn(sensorTurns[i]))
		}
	}
}

// Neighbours returns the cells reachable in one step from c, ordered forward,
// right, left, back relative to the heading h.
func (k *Knowledge) Neighbours(c Cell, h Heading) []Cell {
	neighbours := make([]Cell, 0, len(neighbourTurns))
	for _, turn := range neighbourTurns {
		dir := h.Turn(turn)
		if k.Passable(c, dir) {
			neighbours = append(neighbours, c.Add(dir.Delta()))
		}
	}
	return neighbours
}

// Connected reports whether a and b are adjacent and the edge between them
// is open on both sides.
func (k *Knowledge) Connected(a, b Cell) bool {
	h, ok := HeadingBetween(a, b)
	if !ok {
		return false
	}
	return k.Passable(a, h) && k.Passable(b, h.Opposite())
}

// Clone returns an independent copy of the map.
func (k *Knowledge) Clone() *Knowledge {
	return &Knowledge{dim: k.dim, cells: slices.Clone(k.cells)}
}

// Snapshot returns a copy of the map suitable for logging and persistence.
func (k *Knowledge) Snapshot() Snapshot {
	return Snapshot{Dim: k.dim, Cells: slices.Clone(k.cells)}
}

// String draws the map with north at the top.
func (k *Knowledge) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", k.dim) + "\n")

	for y := k.dim - 1; y >= 0; y-- {
		// Cell row
		cellRow := "|"
		for x := 0; x < k.dim; x++ {
			if k.Passable(Cell{X: x, Y: y}, Right) {
				cellRow += "    "
			} else {
				cellRow += "   |"
			}
		}
		output.WriteString(cellRow + "\n")

		// Wall row below the cells
		wallRow := "+"
		for x := 0; x < k.dim; x++ {
			if k.Passable(Cell{X: x, Y: y}, Down) {
				wallRow += "   +"
			} else {
				wallRow += "---+"
			}
		}
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}

// Snapshot is an immutable copy of a Knowledge grid.
type Snapshot struct {
	Dim   int        `json:"dim" bson:"dim"`
	Cells []WallMask `json:"cells" bson:"cells"` // Passability per cell, indexed x*dim+y
}

// Mask returns the passability bits of c in the snapshot.
func (s Snapshot) Mask(c Cell) WallMask {
	if c.X < 0 || c.X >= s.Dim || c.Y < 0 || c.Y >= s.Dim {
		return 0
	}
	return s.Cells[c.X*s.Dim+c.Y]
}
