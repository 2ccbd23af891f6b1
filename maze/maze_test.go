package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnowledge(t *testing.T) {
	t.Run("Rejects non positive dimension", func(t *testing.T) {
		_, err := NewKnowledge(0)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("Perimeter starts closed", func(t *testing.T) {
		k, err := NewKnowledge(4)
		require.NoError(t, err)

		assert.Equal(t, PassUp|PassRight, k.Mask(Cell{0, 0}))
		assert.Equal(t, PassDown|PassLeft, k.Mask(Cell{3, 3}))
		assert.Equal(t, PassAll, k.Mask(Cell{1, 2}))
		assert.Equal(t, PassAll&^PassLeft, k.Mask(Cell{0, 2}))
		assert.Equal(t, WallMask(0), k.Mask(Cell{4, 0}))
	})
}

func TestCloseWall(t *testing.T) {
	k, err := NewKnowledge(4)
	require.NoError(t, err)

	t.Run("Clears both sides of the edge", func(t *testing.T) {
		k.CloseWall(Cell{1, 1}, Up)
		assert.False(t, k.Passable(Cell{1, 1}, Up))
		assert.False(t, k.Passable(Cell{1, 2}, Down))
		assert.False(t, k.Connected(Cell{1, 1}, Cell{1, 2}))
	})

	t.Run("Perimeter neighbour is skipped", func(t *testing.T) {
		before := k.Mask(Cell{3, 0})
		assert.NotPanics(t, func() { k.CloseWall(Cell{3, 0}, Right) })
		assert.Equal(t, before, k.Mask(Cell{3, 0}))
	})

	t.Run("Out of bound cell is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() { k.CloseWall(Cell{-1, 0}, Up) })
	})
}

func TestSense(t *testing.T) {
	tests := []struct {
		name    string
		heading Heading
		sensors Sensors
		closed  []Heading
	}{
		{name: "Facing up, wall ahead", heading: Up, sensors: Sensors{2, 0, 1}, closed: []Heading{Up}},
		{name: "Facing right, walls left and right", heading: Right, sensors: Sensors{0, 3, 0}, closed: []Heading{Up, Down}},
		{name: "Facing down, wall on the left", heading: Down, sensors: Sensors{0, 1, 1}, closed: []Heading{Right}},
		{name: "Facing left, wall on the right", heading: Left, sensors: Sensors{1, 1, 0}, closed: []Heading{Up}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := NewKnowledge(5)
			require.NoError(t, err)

			c := Cell{2, 2}
			k.Sense(c, tt.heading, tt.sensors)
			for _, h := range []Heading{Up, Right, Down, Left} {
				wantClosed := false
				for _, closed := range tt.closed {
					if closed == h {
						wantClosed = true
					}
				}
				assert.Equal(t, !wantClosed, k.Passable(c, h), "heading %s", h)
			}
		})
	}
}

func TestSenseNeverReopens(t *testing.T) {
	k, err := NewKnowledge(3)
	require.NoError(t, err)

	c := Cell{1, 1}
	k.Sense(c, Up, Sensors{0, 0, 0})
	before := k.Snapshot()

	k.Sense(c, Up, Sensors{1, 1, 1})
	k.Sense(c, Right, Sensors{1, 1, 1})
	assert.Equal(t, before, k.Snapshot())
}

func TestNeighbours(t *testing.T) {
	k, err := NewKnowledge(3)
	require.NoError(t, err)
	c := Cell{1, 1}

	t.Run("Ordered forward, right, left, back", func(t *testing.T) {
		assert.Equal(t, []Cell{{1, 2}, {2, 1}, {0, 1}, {1, 0}}, k.Neighbours(c, Up))
		assert.Equal(t, []Cell{{0, 1}, {1, 2}, {1, 0}, {2, 1}}, k.Neighbours(c, Left))
	})

	t.Run("Walls and perimeter filter candidates", func(t *testing.T) {
		k.CloseWall(c, Right)
		assert.Equal(t, []Cell{{1, 2}, {0, 1}, {1, 0}}, k.Neighbours(c, Up))
		assert.Equal(t, []Cell{{1, 0}, {0, 1}}, k.Neighbours(Cell{0, 0}, Down))
	})
}

func TestRotation(t *testing.T) {
	assert.Equal(t, 0, Rotation(Up, Up))
	assert.Equal(t, 90, Rotation(Up, Right))
	assert.Equal(t, -90, Rotation(Up, Left))
	assert.Equal(t, 180, Rotation(Up, Down))
	assert.Equal(t, 90, Rotation(Left, Up))
	assert.Equal(t, -90, Rotation(Up.Turn(-90), Down))

	h, ok := HeadingBetween(Cell{1, 1}, Cell{1, 0})
	assert.True(t, ok)
	assert.Equal(t, Down, h)

	_, ok = HeadingBetween(Cell{1, 1}, Cell{2, 2})
	assert.False(t, ok)
	_, ok = HeadingBetween(Cell{1, 1}, Cell{1, 1})
	assert.False(t, ok)
}

func TestGoals(t *testing.T) {
	assert.Equal(t, []Cell{{2, 2}, {1, 2}, {2, 1}, {1, 1}}, Goals(4))
	assert.Equal(t, []Cell{{6, 6}, {5, 6}, {6, 5}, {5, 5}}, Goals(12))
	assert.Equal(t, []Cell{{0, 0}}, Goals(1))
	assert.Equal(t, []Cell{{1, 1}, {0, 1}, {1, 0}, {0, 0}}, Goals(2))
}

func TestString(t *testing.T) {
	k, err := NewKnowledge(2)
	require.NoError(t, err)
	k.CloseWall(Cell{0, 0}, Right)

	want := "+---+---+\n" +
		"|       |\n" +
		"+   +   +\n" +
		"|   |   |\n" +
		"+---+---+\n"
	assert.Equal(t, want, k.String())
}
