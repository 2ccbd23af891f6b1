package maze

import "slices"

// Start is the cell every run begins in, facing Up.
var Start = Cell{X: 0, Y: 0}

// Goals returns the goal region of a dim×dim maze: the four cells nearest the
// centre, primary goal first. Cells falling outside small mazes are dropped
// and duplicates collapsed.
func Goals(dim int) []Cell {
	half := dim / 2
	candidates := []Cell{
		{X: half, Y: half},
		{X: half - 1, Y: half},
		{X: half, Y: half - 1},
		{X: half - 1, Y: half - 1},
	}

	goals := make([]Cell, 0, len(candidates))
	for _, c := range candidates {
		if c.X < 0 || c.Y < 0 || c.X >= dim || c.Y >= dim || slices.Contains(goals, c) {
			continue
		}
		goals = append(goals, c)
	}
	return goals
}
