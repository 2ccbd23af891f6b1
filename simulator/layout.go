package simulator

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-mouse/maze"
	"gopkg.in/yaml.v3"
)

// Layout is the file representation of a maze. Cells[x][y] is the
// passability mask of cell (x, y): up=1, right=2, down=4, left=8.
type Layout struct {
	Dim   int     `yaml:"dim"`
	Cells [][]int `yaml:"cells"`
}

// Load reads a maze layout file. Files ending in .yaml or .yml hold a Layout
// document; anything else is read as the plain tester format: the dimension
// on the first line, then one comma separated line of masks per column.
func Load(path string) (*Maze, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseText(data)
	}
}

// ParseYAML builds a maze from a Layout document.
func ParseYAML(data []byte) (*Maze, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return FromLayout(l)
}

// ParseText builds a maze from the plain tester format.
func ParseText(data []byte) (*Maze, error) {
	var l Layout
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if l.Dim == 0 {
			dim, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("%w: dimension line %q", ErrInvalidLayout, line)
			}
			l.Dim = dim
			continue
		}

		var column []int
		for _, field := range strings.Split(line, ",") {
			mask, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("%w: mask %q", ErrInvalidLayout, field)
			}
			column = append(column, mask)
		}
		l.Cells = append(l.Cells, column)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return FromLayout(l)
}

// FromLayout builds a maze from l. Every edge must agree on both of its cells
// and the perimeter must be closed.
func FromLayout(l Layout) (*Maze, error) {
	if len(l.Cells) != l.Dim {
		return nil, fmt.Errorf("%w: %d columns for dimension %d", ErrInvalidLayout, len(l.Cells), l.Dim)
	}

	m, err := Open(l.Dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	for x, column := range l.Cells {
		if len(column) != l.Dim {
			return nil, fmt.Errorf("%w: column %d has %d cells", ErrInvalidLayout, x, len(column))
		}
		for y, mask := range column {
			if mask < 0 || mask > int(maze.PassAll) {
				return nil, fmt.Errorf("%w: mask %d at (%d,%d)", ErrInvalidLayout, mask, x, y)
			}
			for _, h := range headings {
				if !maze.WallMask(mask).Open(h) {
					m.AddWall(maze.Cell{X: x, Y: y}, h)
				}
			}
		}
	}

	for x, column := range l.Cells {
		for y, mask := range column {
			c := maze.Cell{X: x, Y: y}
			if m.Mask(c) != maze.WallMask(mask) {
				return nil, fmt.Errorf("%w: cell %s disagrees with its neighbours or the perimeter", ErrInvalidLayout, c)
			}
		}
	}
	return m, nil
}

// Layout returns the file representation of the maze.
func (m *Maze) Layout() Layout {
	l := Layout{Dim: m.Dim(), Cells: make([][]int, m.Dim())}
	for x := range l.Cells {
		l.Cells[x] = make([]int, m.Dim())
		for y := range l.Cells[x] {
			l.Cells[x][y] = int(m.Mask(maze.Cell{X: x, Y: y}))
		}
	}
	return l
}
