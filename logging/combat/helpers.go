package combat

import (
	"context"

	"legend-of-kiro/logging"
)

const (
	// EventDamage is emitted when an attack reduces a target's health.
	EventDamage logging.EventType = "combat.damage"
	// EventDefeat is emitted when an enemy or the player is defeated.
	EventDefeat logging.EventType = "combat.defeat"
	// EventMeleeSweep is emitted when a melee swing resolves.
	EventMeleeSweep logging.EventType = "combat.melee_sweep"
	// EventProjectileFired is emitted when an arrow or bolt is launched.
	EventProjectileFired logging.EventType = "combat.projectile_fired"
)

// DamagePayload captures the amount dealt to a single target.
type DamagePayload struct {
	Source       string  `json:"source"`
	Amount       float64 `json:"amount"`
	TargetHealth float64 `json:"targetHealth"`
}

// DefeatPayload describes the fatal blow.
type DefeatPayload struct {
	Source string `json:"source,omitempty"`
	Score  int    `json:"score,omitempty"`
}

// MeleeSweepPayload lists the weapon and how many enemies the swing reached.
type MeleeSweepPayload struct {
	Weapon string  `json:"weapon"`
	Damage float64 `json:"damage"`
	Range  float64 `json:"range"`
	Hits   int     `json:"hits"`
}

// ProjectileFiredPayload describes a launched projectile.
type ProjectileFiredPayload struct {
	Projectile string  `json:"projectile"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	Damage     float64 `json:"damage"`
}

// Damage publishes a combat damage event for a single target.
func Damage(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DamagePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDamage,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	})
}

// Defeat publishes a defeat event for the eliminated target.
func Defeat(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DefeatPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDefeat,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	})
}

// MeleeSweep publishes the outcome of a melee swing.
func MeleeSweep(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, targets []logging.EntityRef, payload MeleeSweepPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMeleeSweep,
		Tick:     tick,
		Actor:    actor,
		Targets:  targets,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	})
}

// ProjectileFired publishes a projectile launch.
func ProjectileFired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ProjectileFiredPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileFired,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	})
}
