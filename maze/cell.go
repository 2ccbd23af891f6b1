package maze

import (
	"fmt"
	"strconv"
)

// Cell is the position of a single square of the maze grid.
// X grows to the right and Y grows upward, so the start cell (0, 0) is the
// bottom-left corner.
type Cell struct {
	X int `json:"x" bson:"x"` // Column index of the cell
	Y int `json:"y" bson:"y"` // Row index of the cell, counted from the bottom
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// String renders the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Heading is an absolute compass direction in degrees.
type Heading int

const (
	Up    Heading = 0
	Right Heading = 90
	Down  Heading = 180
	Left  Heading = 270
)

var (
	headingDeltas = map[Heading]Cell{
		Up:    {X: 0, Y: 1},
		Right: {X: 1, Y: 0},
		Down:  {X: 0, Y: -1},
		Left:  {X: -1, Y: 0},
	}

	deltaHeadings = map[Cell]Heading{
		{X: 0, Y: 1}:  Up,
		{X: 1, Y: 0}:  Right,
		{X: 0, Y: -1}: Down,
		{X: -1, Y: 0}: Left,
	}

	headingBits = map[Heading]WallMask{
		Up:    PassUp,
		Right: PassRight,
		Down:  PassDown,
		Left:  PassLeft,
	}
)

// Turn returns the heading after rotating by deg degrees clockwise.
// Negative values rotate counter-clockwise.
func (h Heading) Turn(deg int) Heading {
	return Heading(((int(h)+deg)%360 + 360) % 360)
}

// Opposite returns the heading pointing the other way.
func (h Heading) Opposite() Heading {
	return h.Turn(180)
}

// Delta returns the unit step taken when moving one cell along h.
func (h Heading) Delta() Cell {
	return headingDeltas[h]
}

// Bit returns the WallMask bit for h.
func (h Heading) Bit() WallMask {
	return headingBits[h]
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("heading(%d)", int(h))
	}
}

// HeadingBetween returns the heading leading from one cell to an orthogonally
// adjacent one. ok is false when the cells are not adjacent.
func HeadingBetween(from, to Cell) (h Heading, ok bool) {
	h, ok = deltaHeadings[Cell{X: to.X - from.X, Y: to.Y - from.Y}]
	return h, ok
}

// Rotation returns the relative turn in degrees needed to face want while
// facing have: one of 0, 90, -90 or 180.
func Rotation(have, want Heading) int {
	switch (int(want) - int(have) + 360) % 360 {
	case 90:
		return 90
	case 180:
		return 180
	case 270:
		return -90
	default:
		return 0
	}
}

// WallMask holds one passability bit per absolute direction.
// A set bit means the edge is open.
type WallMask uint8

const (
	PassUp    WallMask = 1 << iota // Edge towards Y+1 is open
	PassRight                      // Edge towards X+1 is open
	PassDown                       // Edge towards Y-1 is open
	PassLeft                       // Edge towards X-1 is open

	PassAll = PassUp | PassRight | PassDown | PassLeft
)

// Open reports whether the edge along h is passable.
func (m WallMask) Open(h Heading) bool {
	return m&h.Bit() != 0
}

// MarshalJSON encodes the mask as a number so that mask slices render as
// JSON arrays instead of base64 strings.
func (m WallMask) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(m), 10), nil
}

// Sensors holds one reading per sensor: the number of open cells before a
// wall on the left, straight ahead and on the right of the robot.
type Sensors [3]int

// Sensor indexes.
const (
	SensorLeft = iota
	SensorForward
	SensorRight
)

// sensorTurns is the rotation of each sensor relative to the robot heading.
var sensorTurns = [3]int{-90, 0, 90}
