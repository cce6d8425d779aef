package ai

import (
	"legend-of-kiro/internal/combat"
	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

// Step runs one tick of enemy behavior: timers, seek or wander, movement,
// separation from the crowd, bolt flight, then the kind-specific attack.
// Defeated enemies are skipped entirely.
func Step(e *state.Enemy, cfg StepConfig) StepResult {
	result := StepResult{}
	if e == nil || !e.Alive {
		return result
	}
	profile := e.Profile()

	e.AdvanceTimers()
	result.Mode = steer(e, profile, cfg)

	e.Pos = world.ClampToWorld(e.Body(), e.Pos.Add(e.Vel))
	Separate(e, cfg.Crowd)

	if profile.Behavior == state.BehaviorRanged {
		e.Bolts = combat.AdvanceBolts(e.Bolts, cfg.Player, state.PlayerSize/2, func(bolt state.Projectile) {
			if cfg.Hooks.DamagePlayer != nil {
				cfg.Hooks.DamagePlayer(e, bolt.Damage, state.ProjectileBolt)
			}
		})
	}

	dist := world.Distance(e.Pos, cfg.Player)
	switch profile.Behavior {
	case state.BehaviorRanged:
		if dist > state.KoboldMinRange && dist < state.KoboldMaxRange && e.Ready() {
			e.BeginAttack()
			bolt := combat.AimBolt(e.Pos, cfg.Player, state.EnemyContactDmg)
			e.Bolts = append(e.Bolts, bolt)
			result.Fired = true
			if cfg.Hooks.Fired != nil {
				cfg.Hooks.Fired(e, bolt)
			}
		}
	default:
		contact := state.PlayerSize/2 + e.Size/2
		if dist < contact {
			push := world.SeparationPush(e.Pos, cfg.Player, contact)
			e.Pos = e.Pos.Sub(push.Scale(0.5))
			if e.Ready() {
				e.BeginAttack()
				result.Attacked = true
				if cfg.Hooks.DamagePlayer != nil {
					cfg.Hooks.DamagePlayer(e, state.EnemyContactDmg, "")
				}
			}
		}
	}
	return result
}

func steer(e *state.Enemy, profile state.EnemyProfile, cfg StepConfig) Mode {
	delta := cfg.Player.Sub(e.Pos)
	dist := delta.Len()
	if dist < state.SeekRadius {
		if dist > 0 {
			e.Vel = delta.Scale(profile.Speed / dist)
		} else {
			e.Vel = world.Vec2{}
		}
		return ModeSeeking
	}

	e.WanderTicks--
	if e.WanderTicks <= 0 && cfg.RNG != nil {
		e.Vel = world.Vec2{
			X: (cfg.RNG.Float64() - 0.5) * profile.Speed * 2,
			Y: (cfg.RNG.Float64() - 0.5) * profile.Speed * 2,
		}
		e.WanderTicks = state.WanderRetarget
	}
	return ModeWandering
}

// Separate splits the overlap between e and every other living enemy in
// crowd equally between the two. Enemies ignore obstacles.
func Separate(e *state.Enemy, crowd []*state.Enemy) {
	for _, other := range crowd {
		if other == nil || other == e || !other.Alive {
			continue
		}
		push := world.SeparationPush(e.Pos, other.Pos, e.Size/2+other.Size/2)
		if push == (world.Vec2{}) {
			continue
		}
		half := push.Scale(0.5)
		e.Pos = e.Pos.Sub(half)
		other.Pos = other.Pos.Add(half)
	}
}
