package state

import (
	"math"

	"legend-of-kiro/internal/world"
)

// Player is the single controllable character. Pos is the body center.
type Player struct {
	Pos       world.Vec2 `json:"pos" msgpack:"pos"`
	Vel       world.Vec2 `json:"vel" msgpack:"vel"`
	Health    float64    `json:"health" msgpack:"health"`
	MaxHealth float64    `json:"maxHealth" msgpack:"maxHealth"`

	Invulnerable      bool `json:"invulnerable" msgpack:"invulnerable"`
	InvulnerableTicks int  `json:"invulnerableTicks" msgpack:"invulnerableTicks"`

	Facing Facing      `json:"facing" msgpack:"facing"`
	Weapon Weapon      `json:"weapon" msgpack:"weapon"`
	Stats  WeaponStats `json:"stats" msgpack:"stats"`

	Status      StatusEffect `json:"status,omitempty" msgpack:"status"`
	StatusTicks int          `json:"statusTicks,omitempty" msgpack:"statusTicks"`

	Attacking      bool `json:"attacking" msgpack:"attacking"`
	AttackTicks    int  `json:"attackTicks" msgpack:"attackTicks"`
	AttackDuration int  `json:"attackDuration" msgpack:"attackDuration"`
	Cooldown       int  `json:"cooldown" msgpack:"cooldown"`

	Arrows []Projectile `json:"arrows,omitempty" msgpack:"arrows"`
}

// NewPlayer returns a full-health sword wielder facing up at pos.
func NewPlayer(pos world.Vec2) *Player {
	p := &Player{
		Pos:            pos,
		Health:         PlayerMaxHealth,
		MaxHealth:      PlayerMaxHealth,
		Facing:         FacingUp,
		Weapon:         WeaponSword,
		AttackDuration: MeleeAttackTicks,
	}
	p.RecomputeStats()
	return p
}

func (p *Player) Body() world.Body {
	return world.Body{Width: PlayerSize, Height: PlayerSize}
}

func (p *Player) Box() world.Rect {
	return p.Body().Box(p.Pos)
}

// RecomputeStats derives Stats from the weapon and active status effect.
func (p *Player) RecomputeStats() {
	p.Stats = p.Status.Modify(p.Weapon.BaseStats())
}

// EquipWeapon swaps the weapon, keeping any active potion modifiers.
func (p *Player) EquipWeapon(w Weapon) {
	if !w.Valid() {
		return
	}
	p.Weapon = w
	p.RecomputeStats()
}

// DrinkPotion replaces any active effect and restarts its timer. Blue also
// raises the invulnerability flag for the same duration.
func (p *Player) DrinkPotion(effect StatusEffect) {
	if !effect.Valid() || !effect.Active() {
		return
	}
	p.Status = effect
	p.StatusTicks = PotionDuration
	if effect.Immune() {
		p.Invulnerable = true
		p.InvulnerableTicks = PotionDuration
	}
	p.RecomputeStats()
}

// TakeDamage applies amount unless the player is immune or invulnerable. It
// reports whether health changed.
func (p *Player) TakeDamage(amount float64) bool {
	if p.Status.Immune() || p.Invulnerable || amount <= 0 {
		return false
	}
	p.Health = math.Max(0, p.Health-amount)
	p.Invulnerable = true
	p.InvulnerableTicks = HitInvulnerable
	return true
}

// Dead reports whether health has run out.
func (p *Player) Dead() bool {
	return p.Health <= 0
}

// Heal raises health by amount, capped at MaxHealth. It reports whether
// health changed.
func (p *Player) Heal(amount float64) bool {
	next := math.Min(p.MaxHealth, p.Health+amount)
	if next == p.Health {
		return false
	}
	p.Health = next
	return true
}

// AddHeartContainer raises MaxHealth by one and fully heals.
func (p *Player) AddHeartContainer() {
	p.MaxHealth++
	p.Health = p.MaxHealth
}

// AdvanceTimers runs the attack animation, cooldown and potion countdowns
// for one tick. It returns the effect that expired this tick, if any.
func (p *Player) AdvanceTimers() StatusEffect {
	if p.Attacking {
		p.AttackTicks++
		if p.AttackTicks >= p.AttackDuration {
			p.Attacking = false
			p.AttackTicks = 0
		}
	}
	if p.Cooldown > 0 {
		p.Cooldown--
	}
	expired := StatusNone
	if p.Status.Active() {
		p.StatusTicks--
		if p.StatusTicks <= 0 {
			expired = p.Status
			p.Status = StatusNone
			p.StatusTicks = 0
			p.RecomputeStats()
		}
	}
	return expired
}

// AdvanceInvulnerability counts down the invulnerability window.
func (p *Player) AdvanceInvulnerability() {
	if !p.Invulnerable {
		return
	}
	p.InvulnerableTicks--
	if p.InvulnerableTicks <= 0 {
		p.Invulnerable = false
		p.InvulnerableTicks = 0
	}
}

// Ready reports whether the attack cooldown has elapsed.
func (p *Player) Ready() bool {
	return p.Cooldown == 0
}

// BeginAttack consumes the cooldown and opens the animation window for the
// equipped weapon.
func (p *Player) BeginAttack() {
	p.Cooldown = p.Stats.Cooldown
	p.Attacking = true
	p.AttackTicks = 0
	p.AttackDuration = p.Weapon.AttackTicks()
}
