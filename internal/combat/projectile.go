package combat

import (
	"math"

	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

// SpawnArrow launches an arrow from origin along the facing axis.
func SpawnArrow(origin world.Vec2, facing state.Facing, damage float64) state.Projectile {
	return state.Projectile{
		Kind:   state.ProjectileArrow,
		Pos:    origin,
		Vel:    facing.Unit().Scale(state.ArrowSpeed),
		Damage: damage,
	}
}

// AimBolt launches a bolt from origin toward target's current position.
func AimBolt(origin, target world.Vec2, damage float64) state.Projectile {
	angle := math.Atan2(target.Y-origin.Y, target.X-origin.X)
	return state.Projectile{
		Kind:   state.ProjectileBolt,
		Pos:    origin,
		Vel:    world.Vec2{X: math.Cos(angle) * state.BoltSpeed, Y: math.Sin(angle) * state.BoltSpeed},
		Damage: damage,
	}
}

// ArrowPhaseConfig bundles the callbacks for the player's projectile phase.
type ArrowPhaseConfig struct {
	// OnHit fires when an arrow strikes an enemy.
	OnHit func(arrow state.Projectile, enemy *state.Enemy, defeated bool)
	// OnExpire fires when an arrow outruns its range or leaves the world.
	OnExpire func(arrow state.Projectile)
}

// AdvanceArrows moves every arrow one tick, drops spent ones and resolves
// hits. An arrow strikes at most one enemy: the first living one, in enemy
// order, whose center lies within half its size. The surviving arrows are
// returned in their original order, reusing the input slice.
func AdvanceArrows(arrows []state.Projectile, enemies []*state.Enemy, cfg ArrowPhaseConfig) []state.Projectile {
	kept := arrows[:0]
	for _, arrow := range arrows {
		arrow.Advance()
		if arrow.Spent(state.ArrowMaxTravel) {
			if cfg.OnExpire != nil {
				cfg.OnExpire(arrow)
			}
			continue
		}
		if target := firstStruck(arrow, enemies); target != nil {
			defeated := target.TakeDamage(arrow.Damage)
			if cfg.OnHit != nil {
				cfg.OnHit(arrow, target, defeated)
			}
			continue
		}
		kept = append(kept, arrow)
	}
	clearTail(arrows, len(kept))
	return kept
}

func firstStruck(arrow state.Projectile, enemies []*state.Enemy) *state.Enemy {
	for _, enemy := range enemies {
		if enemy == nil || !enemy.Alive {
			continue
		}
		if world.Within(enemy.Pos, arrow.Pos, enemy.Size/2) {
			return enemy
		}
	}
	return nil
}

// AdvanceBolts moves every bolt one tick. A bolt whose position comes within
// hitRadius of target calls onHit and is consumed; otherwise spent bolts are
// dropped.
func AdvanceBolts(bolts []state.Projectile, target world.Vec2, hitRadius float64, onHit func(bolt state.Projectile)) []state.Projectile {
	kept := bolts[:0]
	for _, bolt := range bolts {
		bolt.Advance()
		if world.Within(target, bolt.Pos, hitRadius) {
			if onHit != nil {
				onHit(bolt)
			}
			continue
		}
		if bolt.Spent(state.BoltMaxTravel) {
			continue
		}
		kept = append(kept, bolt)
	}
	clearTail(bolts, len(kept))
	return kept
}

func clearTail(list []state.Projectile, from int) {
	for i := from; i < len(list); i++ {
		list[i] = state.Projectile{}
	}
}
