package state

import "legend-of-kiro/internal/world"

// CollectibleKind selects the pickup effect.
type CollectibleKind string

const (
	CollectibleHeart          CollectibleKind = "heart"
	CollectibleHeartContainer CollectibleKind = "heart_container"
	CollectibleCoinPouch      CollectibleKind = "coin_pouch"
	CollectibleBow            CollectibleKind = "bow"
	CollectibleBattleaxe      CollectibleKind = "battleaxe"
	CollectibleRedPotion      CollectibleKind = "red_potion"
	CollectibleGreenPotion    CollectibleKind = "green_potion"
	CollectibleYellowPotion   CollectibleKind = "yellow_potion"
	CollectibleBluePotion     CollectibleKind = "blue_potion"
)

// PickupEffect describes what consuming a collectible does. Exactly one
// field is meaningful per kind.
type PickupEffect struct {
	Heal      float64
	Container bool
	Score     int
	Weapon    Weapon
	Potion    StatusEffect
}

var pickupTable = map[CollectibleKind]PickupEffect{
	CollectibleHeart:          {Heal: HeartHealAmount},
	CollectibleHeartContainer: {Container: true},
	CollectibleCoinPouch:      {Score: CoinPouchScore},
	CollectibleBow:            {Weapon: WeaponBow},
	CollectibleBattleaxe:      {Weapon: WeaponBattleaxe},
	CollectibleRedPotion:      {Potion: StatusRed},
	CollectibleGreenPotion:    {Potion: StatusGreen},
	CollectibleYellowPotion:   {Potion: StatusYellow},
	CollectibleBluePotion:     {Potion: StatusBlue},
}

func (k CollectibleKind) Effect() PickupEffect {
	return pickupTable[k]
}

func (k CollectibleKind) Valid() bool {
	_, ok := pickupTable[k]
	return ok
}

func ParseCollectibleKind(name string) (CollectibleKind, bool) {
	k := CollectibleKind(name)
	return k, k.Valid()
}

// Collectible is a one-shot pickup.
type Collectible struct {
	ID        string          `json:"id" msgpack:"id"`
	Kind      CollectibleKind `json:"kind" msgpack:"kind"`
	Pos       world.Vec2      `json:"pos" msgpack:"pos"`
	Collected bool            `json:"collected" msgpack:"collected"`
}

// Touches reports whether the player body centered on p reaches the
// collectible.
func (c *Collectible) Touches(p world.Vec2) bool {
	return world.Within(c.Pos, p, PlayerSize/2+CollectibleSize/2)
}

// Collect marks c collected and reports whether this call did so.
func (c *Collectible) Collect() bool {
	if c == nil || c.Collected {
		return false
	}
	c.Collected = true
	return true
}
