package state

// Weapon is the player's equipped weapon.
type Weapon string

const (
	WeaponSword     Weapon = "sword"
	WeaponBow       Weapon = "bow"
	WeaponBattleaxe Weapon = "battleaxe"
)

// WeaponStats is the damage/range/cooldown triplet. Cooldown is in ticks.
type WeaponStats struct {
	Damage   float64 `json:"damage" msgpack:"damage"`
	Range    float64 `json:"range" msgpack:"range"`
	Cooldown int     `json:"cooldown" msgpack:"cooldown"`
}

var weaponTable = map[Weapon]WeaponStats{
	WeaponSword:     {Damage: 2, Range: 45, Cooldown: 15},
	WeaponBow:       {Damage: 1, Range: 300, Cooldown: 15},
	WeaponBattleaxe: {Damage: 6, Range: 60, Cooldown: 30},
}

// BaseStats returns the unmodified stats of w.
func (w Weapon) BaseStats() WeaponStats {
	return weaponTable[w]
}

// Ranged reports whether attacks with w spawn projectiles.
func (w Weapon) Ranged() bool {
	return w == WeaponBow
}

// AttackTicks is the length of the attack animation window for w.
func (w Weapon) AttackTicks() int {
	if w.Ranged() {
		return BowAttackTicks
	}
	return MeleeAttackTicks
}

func (w Weapon) Valid() bool {
	_, ok := weaponTable[w]
	return ok
}
