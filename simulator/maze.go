/*
Package simulator provides the ground-truth maze a robot is driven through.

It plays the part of the physical maze and its sensors: it answers sensor
queries for a pose and applies movement commands, rejecting any move through
a wall. Mazes can be built wall by wall, generated with Wilson's algorithm or
loaded from a layout file.
*/
package simulator

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/beka-birhanu/vinom-mouse/maze"
)

var (
	ErrCollision      = errors.New("move runs into a wall")
	ErrInvalidCommand = errors.New("invalid movement command")
	ErrInvalidLayout  = errors.New("invalid maze layout")
)

var headings = []maze.Heading{maze.Up, maze.Right, maze.Down, maze.Left}

// Maze is a square maze whose walls are fully known.
type Maze struct {
	walls *maze.Knowledge
}

// Open creates a dim×dim maze with walls on the perimeter only.
func Open(dim int) (*Maze, error) {
	walls, err := maze.NewKnowledge(dim)
	if err != nil {
		return nil, err
	}
	return &Maze{walls: walls}, nil
}

// Generate creates a perfect dim×dim maze with Wilson's algorithm: loop-erased
// random walks from unvisited cells are grafted onto the growing tree until it
// spans the grid.
func Generate(dim int, rng *rand.Rand) (*Maze, error) {
	m, err := Open(dim)
	if err != nil {
		return nil, err
	}

	tree := make(map[maze.Cell]struct{})
	openEdges := make(map[[2]maze.Cell]struct{})
	tree[m.randomCell(rng)] = struct{}{}

	for len(tree) < dim*dim {
		start := m.randomUnvisitedCell(rng, tree)
		exits := m.randomWalk(rng, start, tree)

		// Following the last exit of every cell from start erases the loops.
		for cell := start; ; {
			tree[cell] = struct{}{}
			next := exits[cell]
			openEdges[edge(cell, next)] = struct{}{}
			if _, done := tree[next]; done {
				break
			}
			cell = next
		}
	}

	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			c := maze.Cell{X: x, Y: y}
			for _, h := range []maze.Heading{maze.Up, maze.Right} {
				n := c.Add(h.Delta())
				if !m.walls.InBound(n) {
					continue
				}
				if _, open := openEdges[edge(c, n)]; !open {
					m.AddWall(c, h)
				}
			}
		}
	}
	return m, nil
}

// randomCell picks any cell of the grid.
func (m *Maze) randomCell(rng *rand.Rand) maze.Cell {
	return maze.Cell{X: rng.Intn(m.Dim()), Y: rng.Intn(m.Dim())}
}

// randomUnvisitedCell picks a cell not yet part of the tree.
func (m *Maze) randomUnvisitedCell(rng *rand.Rand, tree map[maze.Cell]struct{}) maze.Cell {
	for {
		c := m.randomCell(rng)
		if _, included := tree[c]; !included {
			return c
		}
	}
}

// randomWalk wanders from start until it hits the tree, recording the last
// exit taken from every cell it passed.
func (m *Maze) randomWalk(rng *rand.Rand, start maze.Cell, tree map[maze.Cell]struct{}) map[maze.Cell]maze.Cell {
	exits := make(map[maze.Cell]maze.Cell)
	cell := start
	for {
		var neighbours []maze.Cell
		for _, h := range headings {
			if n := cell.Add(h.Delta()); m.walls.InBound(n) {
				neighbours = append(neighbours, n)
			}
		}
		next := neighbours[rng.Intn(len(neighbours))]
		exits[cell] = next
		if _, included := tree[next]; included {
			return exits
		}
		cell = next
	}
}

// edge is an order independent key for the edge between two cells.
func edge(a, b maze.Cell) [2]maze.Cell {
	if a.X > b.X || (a.X == b.X && a.Y > b.Y) {
		a, b = b, a
	}
	return [2]maze.Cell{a, b}
}

// Dim returns the side length of the maze.
func (m *Maze) Dim() int {
	return m.walls.Dim()
}

// AddWall closes the edge leaving c along h on both sides.
func (m *Maze) AddWall(c maze.Cell, h maze.Heading) {
	m.walls.CloseWall(c, h)
}

// Mask returns the passability bits of c.
func (m *Maze) Mask(c maze.Cell) maze.WallMask {
	return m.walls.Mask(c)
}

// Connected reports whether a and b are adjacent with an open edge between.
func (m *Maze) Connected(a, b maze.Cell) bool {
	return m.walls.Connected(a, b)
}

// Sensors returns the readings of a robot at c facing h: the open cells
// before the nearest wall on its left, ahead and on its right.
func (m *Maze) Sensors(c maze.Cell, h maze.Heading) maze.Sensors {
	var s maze.Sensors
	for i, turn := range []int{-90, 0, 90} {
		dir := h.Turn(turn)
		for pos := c; m.walls.Passable(pos, dir); pos = pos.Add(dir.Delta()) {
			s[i]++
		}
	}
	return s
}

// Apply rotates a robot at c facing h by rotation degrees and moves it
// movement cells forward.
func (m *Maze) Apply(c maze.Cell, h maze.Heading, rotation, movement int) (maze.Cell, maze.Heading, error) {
	if !slices.Contains([]int{-90, 0, 90, 180}, rotation) || movement < 0 || movement > 3 {
		return c, h, fmt.Errorf("%w: rotation %d movement %d", ErrInvalidCommand, rotation, movement)
	}

	h = h.Turn(rotation)
	for i := 0; i < movement; i++ {
		if !m.walls.Passable(c, h) {
			return c, h, fmt.Errorf("%w: %s facing %s", ErrCollision, c, h)
		}
		c = c.Add(h.Delta())
	}
	return c, h, nil
}

// ShortestDistance returns the number of steps of the shortest path from
// from to the nearest of goals, or -1 when none is reachable.
func (m *Maze) ShortestDistance(from maze.Cell, goals []maze.Cell) int {
	dist := map[maze.Cell]int{from: 0}
	queue := []maze.Cell{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if slices.Contains(goals, c) {
			return dist[c]
		}
		for _, h := range headings {
			n := c.Add(h.Delta())
			if _, seen := dist[n]; seen || !m.walls.Passable(c, h) {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

// String draws the maze with north at the top.
func (m *Maze) String() string {
	return m.walls.String()
}
