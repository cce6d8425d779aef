package state

import "legend-of-kiro/internal/world"

// ProjectileKind tags who fired a projectile.
type ProjectileKind string

const (
	ProjectileArrow ProjectileKind = "arrow"
	ProjectileBolt  ProjectileKind = "bolt"
)

// Projectile is an arrow or bolt in flight, owned by the entity that fired it.
type Projectile struct {
	Kind     ProjectileKind `json:"kind" msgpack:"kind"`
	Pos      world.Vec2     `json:"pos" msgpack:"pos"`
	Vel      world.Vec2     `json:"vel" msgpack:"vel"`
	Traveled float64        `json:"traveled" msgpack:"traveled"`
	Damage   float64        `json:"damage" msgpack:"damage"`
}

// Advance moves the projectile one tick along its velocity.
func (p *Projectile) Advance() {
	p.Pos = p.Pos.Add(p.Vel)
	p.Traveled += p.Vel.Len()
}

// Spent reports whether the projectile has outrun maxTravel or left the world.
func (p *Projectile) Spent(maxTravel float64) bool {
	return p.Traveled > maxTravel || !world.InBounds(p.Pos)
}
