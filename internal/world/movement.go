package world

// EscapeDistance is the magnitude of each escape offset.
const EscapeDistance = 5.0

// EscapeOffsets are tried in order when a body ends a tick embedded in an
// obstacle.
var EscapeOffsets = [8]Vec2{
	{X: EscapeDistance, Y: 0},
	{X: -EscapeDistance, Y: 0},
	{X: 0, Y: EscapeDistance},
	{X: 0, Y: -EscapeDistance},
	{X: EscapeDistance, Y: EscapeDistance},
	{X: -EscapeDistance, Y: EscapeDistance},
	{X: EscapeDistance, Y: -EscapeDistance},
	{X: -EscapeDistance, Y: -EscapeDistance},
}

// Body describes the size of a box-shaped mover centered on its position.
type Body struct {
	Width  float64
	Height float64
}

// Box returns the bounding box of the body centered on pos.
func (b Body) Box(pos Vec2) Rect {
	return CenteredRect(pos, b.Width, b.Height)
}

// MoveSeparated applies vel one axis at a time. A candidate that would
// overlap an obstacle is rejected on that axis only and its velocity
// component is zeroed.
func MoveSeparated(b Body, pos, vel Vec2, obstacles Obstacles) (Vec2, Vec2) {
	next := Vec2{X: pos.X + vel.X, Y: pos.Y}
	if obstacles.Blocks(b.Box(next)) {
		vel.X = 0
	} else {
		pos = next
	}
	next = Vec2{X: pos.X, Y: pos.Y + vel.Y}
	if obstacles.Blocks(b.Box(next)) {
		vel.Y = 0
	} else {
		pos = next
	}
	return pos, vel
}

// Nudge applies a positional correction axis by axis, dropping any axis the
// obstacles would block.
func Nudge(b Body, pos, delta Vec2, obstacles Obstacles) Vec2 {
	if next := (Vec2{X: pos.X + delta.X, Y: pos.Y}); !obstacles.Blocks(b.Box(next)) {
		pos = next
	}
	if next := (Vec2{X: pos.X, Y: pos.Y + delta.Y}); !obstacles.Blocks(b.Box(next)) {
		pos = next
	}
	return pos
}

// ClampToWorld keeps the body's box entirely inside the world.
func ClampToWorld(b Body, pos Vec2) Vec2 {
	return Vec2{
		X: Clamp(pos.X, b.Width/2, Width-b.Width/2),
		Y: Clamp(pos.Y, b.Height/2, Height-b.Height/2),
	}
}

// Unstick tries EscapeOffsets and returns the first free position. When no
// offset resolves the overlap pos is returned unchanged with ok false.
func Unstick(b Body, pos Vec2, obstacles Obstacles) (Vec2, bool) {
	if !obstacles.Blocks(b.Box(pos)) {
		return pos, true
	}
	for _, offset := range EscapeOffsets {
		candidate := pos.Add(offset)
		if !obstacles.Blocks(b.Box(candidate)) {
			return candidate, true
		}
	}
	return pos, false
}

// SeparationPush returns the displacement that would resolve the overlap of
// two circles of combined radius minDist, pointing from a toward b. The
// zero vector is returned when they do not overlap or share a center.
func SeparationPush(a, b Vec2, minDist float64) Vec2 {
	delta := b.Sub(a)
	dist := delta.Len()
	if dist <= 0 || dist >= minDist {
		return Vec2{}
	}
	return delta.Scale((minDist - dist) / dist)
}
