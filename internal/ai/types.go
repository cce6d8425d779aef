package ai

import (
	"math/rand"

	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

// Mode is the movement state an enemy chose this tick.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSeeking
	ModeWandering
)

func (m Mode) String() string {
	switch m {
	case ModeSeeking:
		return "seeking"
	case ModeWandering:
		return "wandering"
	default:
		return "idle"
	}
}

// Hooks bundles the callbacks an enemy step uses to reach the player and
// the event log without importing the session.
type Hooks struct {
	// DamagePlayer applies contact or bolt damage from enemy to the player.
	DamagePlayer func(enemy *state.Enemy, amount float64, source state.ProjectileKind)
	// Fired is told about every bolt a kobold launches.
	Fired func(enemy *state.Enemy, bolt state.Projectile)
}

// StepConfig carries what one enemy needs to read during its update.
type StepConfig struct {
	Player world.Vec2
	// Crowd is the full enemy collection, used for pairwise separation.
	Crowd []*state.Enemy
	RNG   *rand.Rand
	Hooks Hooks
}

// StepResult reports what the enemy did.
type StepResult struct {
	Mode     Mode
	Fired    bool
	Attacked bool
}
