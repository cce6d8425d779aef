package state

import (
	"math"

	"legend-of-kiro/internal/world"
)

// Enemy is a goblin, kobold or the boss. Pos is the body center.
type Enemy struct {
	ID          string       `json:"id" msgpack:"id"`
	Kind        EnemyKind    `json:"kind" msgpack:"kind"`
	Pos         world.Vec2   `json:"pos" msgpack:"pos"`
	Vel         world.Vec2   `json:"vel" msgpack:"vel"`
	Size        float64      `json:"size" msgpack:"size"`
	Health      float64      `json:"health" msgpack:"health"`
	MaxHealth   float64      `json:"maxHealth" msgpack:"maxHealth"`
	Alive       bool         `json:"alive" msgpack:"alive"`
	Cooldown    int          `json:"cooldown" msgpack:"cooldown"`
	Attacking   bool         `json:"attacking" msgpack:"attacking"`
	AttackTicks int          `json:"attackTicks" msgpack:"attackTicks"`
	WanderTicks int          `json:"-" msgpack:"-"`
	Bolts       []Projectile `json:"bolts,omitempty" msgpack:"bolts"`
}

// NewEnemy builds a living enemy of kind centered on pos.
func NewEnemy(id string, kind EnemyKind, pos world.Vec2) *Enemy {
	profile := kind.Profile()
	return &Enemy{
		ID:        id,
		Kind:      kind,
		Pos:       pos,
		Size:      profile.Size,
		Health:    profile.Health,
		MaxHealth: profile.Health,
		Alive:     true,
	}
}

func (e *Enemy) Profile() EnemyProfile {
	return e.Kind.Profile()
}

func (e *Enemy) Body() world.Body {
	return world.Body{Width: e.Size, Height: e.Size}
}

// TakeDamage reduces health. It reports true only on the call that defeats
// the enemy; hits on a defeated enemy are ignored.
func (e *Enemy) TakeDamage(amount float64) bool {
	if e == nil || !e.Alive || amount <= 0 {
		return false
	}
	e.Health = math.Max(0, e.Health-amount)
	if e.Health > 0 {
		return false
	}
	e.Alive = false
	e.Vel = world.Vec2{}
	e.Attacking = false
	e.AttackTicks = 0
	e.Bolts = nil
	return true
}

// AdvanceTimers runs the attack animation and cooldown for one tick.
func (e *Enemy) AdvanceTimers() {
	if e.Attacking {
		e.AttackTicks++
		if e.AttackTicks >= EnemyAttackTicks {
			e.Attacking = false
			e.AttackTicks = 0
		}
	}
	if e.Cooldown > 0 {
		e.Cooldown--
	}
}

func (e *Enemy) Ready() bool {
	return e.Cooldown == 0
}

// BeginAttack consumes the cooldown and opens the animation window.
func (e *Enemy) BeginAttack() {
	e.Attacking = true
	e.AttackTicks = 0
	e.Cooldown = e.Profile().Cooldown
}
