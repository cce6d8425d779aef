package state

import (
	"math"

	"legend-of-kiro/internal/world"
)

// Input is the held state of the four logical direction keys.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Steer sets velocity and facing from held keys. A held vertical key wins
// over horizontal ones; horizontal velocity then only decays by friction.
func (p *Player) Steer(in Input) {
	speed := PlayerSpeed * p.Status.SpeedFactor()

	vertical := false
	switch {
	case in.Up:
		p.Vel.Y = -speed
		p.Facing = FacingUp
		vertical = true
	case in.Down:
		p.Vel.Y = speed
		p.Facing = FacingDown
		vertical = true
	default:
		p.Vel.Y = 0
	}

	if !vertical {
		switch {
		case in.Left:
			p.Vel.X = -speed
			p.Facing = FacingLeft
		case in.Right:
			p.Vel.X = speed
			p.Facing = FacingRight
		}
	}

	p.Vel.X *= Friction
	if math.Abs(p.Vel.X) < VelocitySnap {
		p.Vel.X = 0
	}
}

// Move commits velocity against obstacles, clamps to the world, takes half
// of each living enemy's overlap as a soft push, and finally tries to escape
// any obstacle the pushes left it in. It returns false when the player ends
// embedded.
func (p *Player) Move(obstacles world.Obstacles, enemies []*Enemy) bool {
	body := p.Body()
	p.Pos, p.Vel = world.MoveSeparated(body, p.Pos, p.Vel, obstacles)
	p.Pos = world.ClampToWorld(body, p.Pos)

	for _, e := range enemies {
		if e == nil || !e.Alive {
			continue
		}
		push := world.SeparationPush(p.Pos, e.Pos, PlayerSize/2+e.Size/2)
		if push == (world.Vec2{}) {
			continue
		}
		p.Pos = world.Nudge(body, p.Pos, push.Scale(-0.5), obstacles)
	}

	p.Pos = world.ClampToWorld(body, p.Pos)
	var free bool
	p.Pos, free = world.Unstick(body, p.Pos, obstacles)
	return free
}
