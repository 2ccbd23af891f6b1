package simulator

import (
	"math/bits"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/beka-birhanu/vinom-mouse/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensors(t *testing.T) {
	m, err := Open(4)
	require.NoError(t, err)
	m.AddWall(maze.Cell{X: 0, Y: 2}, maze.Up)

	assert.Equal(t, maze.Sensors{0, 2, 3}, m.Sensors(maze.Cell{X: 0, Y: 0}, maze.Up))
	assert.Equal(t, maze.Sensors{2, 3, 0}, m.Sensors(maze.Cell{X: 0, Y: 0}, maze.Right))
	assert.Equal(t, maze.Sensors{3, 0, 0}, m.Sensors(maze.Cell{X: 3, Y: 3}, maze.Up))
}

func TestApply(t *testing.T) {
	m, err := Open(3)
	require.NoError(t, err)
	m.AddWall(maze.Cell{X: 0, Y: 0}, maze.Right)

	t.Run("Turn and move", func(t *testing.T) {
		c, h, err := m.Apply(maze.Cell{X: 0, Y: 0}, maze.Up, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, maze.Cell{X: 0, Y: 1}, c)
		assert.Equal(t, maze.Up, h)

		c, h, err = m.Apply(c, h, 90, 1)
		require.NoError(t, err)
		assert.Equal(t, maze.Cell{X: 1, Y: 1}, c)
		assert.Equal(t, maze.Right, h)
	})

	t.Run("Turn in place", func(t *testing.T) {
		c, h, err := m.Apply(maze.Cell{X: 1, Y: 1}, maze.Up, 180, 0)
		require.NoError(t, err)
		assert.Equal(t, maze.Cell{X: 1, Y: 1}, c)
		assert.Equal(t, maze.Down, h)
	})

	t.Run("Collision", func(t *testing.T) {
		_, _, err := m.Apply(maze.Cell{X: 0, Y: 0}, maze.Up, 90, 1)
		assert.ErrorIs(t, err, ErrCollision)
	})

	t.Run("Invalid rotation", func(t *testing.T) {
		_, _, err := m.Apply(maze.Cell{X: 0, Y: 0}, maze.Up, 45, 1)
		assert.ErrorIs(t, err, ErrInvalidCommand)
	})
}

func TestGenerate(t *testing.T) {
	for _, dim := range []int{1, 2, 5, 12} {
		m, err := Generate(dim, rand.New(rand.NewSource(int64(dim))))
		require.NoError(t, err)

		openings := 0
		for x := 0; x < dim; x++ {
			for y := 0; y < dim; y++ {
				c := maze.Cell{X: x, Y: y}
				openings += bits.OnesCount8(uint8(m.Mask(c)))
				assert.NotEqual(t, -1, m.ShortestDistance(maze.Start, []maze.Cell{c}), "cell %s unreachable", c)
			}
		}
		assert.Equal(t, dim*dim-1, openings/2, "a perfect maze is a spanning tree")
	}
}

func TestLayout(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		m, err := Generate(6, rand.New(rand.NewSource(7)))
		require.NoError(t, err)

		back, err := FromLayout(m.Layout())
		require.NoError(t, err)
		assert.Equal(t, m.String(), back.String())
	})

	t.Run("Plain tester format", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "maze.txt")
		require.NoError(t, os.WriteFile(path, []byte("2\n1,4\n3,6\n"), 0o600))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidLayout, "(1,0) opens onto the perimeter")

		require.NoError(t, os.WriteFile(path, []byte("2\n3,4\n9,4\n"), 0o600))
		m, err := Load(path)
		require.NoError(t, err)
		assert.True(t, m.Connected(maze.Cell{X: 0, Y: 0}, maze.Cell{X: 0, Y: 1}))
		assert.True(t, m.Connected(maze.Cell{X: 0, Y: 0}, maze.Cell{X: 1, Y: 0}))
		assert.True(t, m.Connected(maze.Cell{X: 1, Y: 0}, maze.Cell{X: 1, Y: 1}))
		assert.False(t, m.Connected(maze.Cell{X: 0, Y: 1}, maze.Cell{X: 1, Y: 1}))
	})

	t.Run("YAML document", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "maze.yaml")
		doc := "dim: 2\ncells:\n  - [3, 4]\n  - [9, 4]\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		m, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Dim())
		assert.Equal(t, 3, m.ShortestDistance(maze.Cell{X: 0, Y: 1}, []maze.Cell{{X: 1, Y: 1}}))
	})

	t.Run("Open perimeter is rejected", func(t *testing.T) {
		_, err := FromLayout(Layout{Dim: 1, Cells: [][]int{{15}}})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})
}
