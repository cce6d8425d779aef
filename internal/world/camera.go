package world

// Camera is the top-left corner of the viewport in world coordinates.
type Camera struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// CameraOn centers the viewport on target, clamped so it never shows
// anything outside the world.
func CameraOn(target Vec2) Camera {
	return Camera{
		X: Clamp(target.X-ViewportWidth/2, 0, Width-ViewportWidth),
		Y: Clamp(target.Y-ViewportHeight/2, 0, Height-ViewportHeight),
	}
}

func (c Camera) WorldToScreen(p Vec2) Vec2 {
	return Vec2{X: p.X - c.X, Y: p.Y - c.Y}
}

// Visible reports whether any part of r falls inside the viewport.
func (c Camera) Visible(r Rect) bool {
	return r.Overlaps(Rect{X: c.X, Y: c.Y, Width: ViewportWidth, Height: ViewportHeight})
}
