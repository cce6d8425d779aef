package state

import (
	"math"

	"legend-of-kiro/internal/world"
)

// Facing is one of the four cardinal directions.
type Facing string

const (
	FacingUp    Facing = "up"
	FacingDown  Facing = "down"
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

var facingUnits = map[Facing]world.Vec2{
	FacingUp:    {X: 0, Y: -1},
	FacingDown:  {X: 0, Y: 1},
	FacingLeft:  {X: -1, Y: 0},
	FacingRight: {X: 1, Y: 0},
}

// Unit is the axis-aligned unit vector for f.
func (f Facing) Unit() world.Vec2 {
	return facingUnits[f]
}

// Angle is the screen-space heading of f (y grows downward).
func (f Facing) Angle() float64 {
	u := f.Unit()
	return math.Atan2(u.Y, u.X)
}

func (f Facing) Valid() bool {
	_, ok := facingUnits[f]
	return ok
}
