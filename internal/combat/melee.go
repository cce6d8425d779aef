package combat

import (
	"math"

	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

// MeleeArc is the full angular width of a melee swing, centered on facing.
const MeleeArc = math.Pi / 3

// MeleeSweepConfig describes one melee swing. OnHit is called for every
// enemy the swing damages, in enemy order, with defeated set on the blow
// that killed it.
type MeleeSweepConfig struct {
	Origin world.Vec2
	Facing state.Facing
	Range  float64
	Damage float64

	OnHit func(enemy *state.Enemy, defeated bool)
}

// MeleeSweepResult summarises a swing.
type MeleeSweepResult struct {
	Hits     int
	Defeated int
}

// InFacingArc reports whether target lies within half of MeleeArc of the
// facing direction as seen from origin.
func InFacingArc(origin, target world.Vec2, facing state.Facing) bool {
	delta := target.Sub(origin)
	if delta == (world.Vec2{}) {
		return true
	}
	diff := world.WrapAngle(math.Atan2(delta.Y, delta.X) - facing.Angle())
	return math.Abs(diff) < MeleeArc/2
}

// ResolveMeleeSweep damages every living enemy strictly inside range and
// the facing arc. Damage lands immediately.
func ResolveMeleeSweep(cfg MeleeSweepConfig, enemies []*state.Enemy) MeleeSweepResult {
	result := MeleeSweepResult{}
	for _, enemy := range enemies {
		if enemy == nil || !enemy.Alive {
			continue
		}
		if !world.Within(cfg.Origin, enemy.Pos, cfg.Range) {
			continue
		}
		if !InFacingArc(cfg.Origin, enemy.Pos, cfg.Facing) {
			continue
		}
		defeated := enemy.TakeDamage(cfg.Damage)
		result.Hits++
		if defeated {
			result.Defeated++
		}
		if cfg.OnHit != nil {
			cfg.OnHit(enemy, defeated)
		}
	}
	return result
}
