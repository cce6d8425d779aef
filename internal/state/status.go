package state

// StatusEffect is the single active potion effect, if any.
type StatusEffect string

const (
	StatusNone   StatusEffect = ""
	StatusRed    StatusEffect = "red"
	StatusGreen  StatusEffect = "green"
	StatusYellow StatusEffect = "yellow"
	StatusBlue   StatusEffect = "blue"
)

type statusProfile struct {
	damageFactor  float64
	halveCooldown bool
	speedFactor   float64
	immune        bool
}

var statusTable = map[StatusEffect]statusProfile{
	StatusNone:   {damageFactor: 1, speedFactor: 1},
	StatusRed:    {damageFactor: 2, speedFactor: 1},
	StatusGreen:  {damageFactor: 1, speedFactor: 1, halveCooldown: true},
	StatusYellow: {damageFactor: 1, speedFactor: 2},
	StatusBlue:   {damageFactor: 1, speedFactor: 1, immune: true},
}

// Modify applies the effect to base weapon stats.
func (s StatusEffect) Modify(base WeaponStats) WeaponStats {
	p := statusTable[s]
	out := base
	out.Damage *= p.damageFactor
	if p.halveCooldown {
		out.Cooldown /= 2
	}
	return out
}

// SpeedFactor scales the player's movement speed.
func (s StatusEffect) SpeedFactor() float64 {
	return statusTable[s].speedFactor
}

// Immune reports whether the effect blocks all incoming damage.
func (s StatusEffect) Immune() bool {
	return statusTable[s].immune
}

func (s StatusEffect) Active() bool {
	return s != StatusNone
}

func (s StatusEffect) Valid() bool {
	_, ok := statusTable[s]
	return ok
}
