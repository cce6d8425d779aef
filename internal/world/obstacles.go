package world

// ObstacleKind is a cosmetic tag; every obstacle blocks movement the same way.
type ObstacleKind string

const (
	ObstacleTree     ObstacleKind = "tree"
	ObstacleMountain ObstacleKind = "mountain"
)

// Obstacle is a static rectangle. It never moves after creation.
type Obstacle struct {
	ID   string       `json:"id" msgpack:"id"`
	Kind ObstacleKind `json:"kind" msgpack:"kind"`
	Rect
}

// Obstacles is the session's obstacle registry.
type Obstacles []Obstacle

// Blocks reports whether r overlaps any obstacle.
func (o Obstacles) Blocks(r Rect) bool {
	for i := range o {
		if o[i].Rect.Overlaps(r) {
			return true
		}
	}
	return false
}

// BlocksBody reports whether a body of the given size centered on c overlaps
// any obstacle.
func (o Obstacles) BlocksBody(c Vec2, width, height float64) bool {
	return o.Blocks(CenteredRect(c, width, height))
}
