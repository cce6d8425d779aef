package state

// EnemyKind selects an enemy's stats and behavior.
type EnemyKind string

const (
	EnemyBlue        EnemyKind = "blue"
	EnemyRed         EnemyKind = "red"
	EnemyWhite       EnemyKind = "white"
	EnemyBlueKobold  EnemyKind = "blue_kobold"
	EnemyRedKobold   EnemyKind = "red_kobold"
	EnemyWhiteKobold EnemyKind = "white_kobold"
	EnemyBoss        EnemyKind = "boss"
)

// Behavior distinguishes contact attackers from bolt shooters.
type Behavior int

const (
	BehaviorMelee Behavior = iota
	BehaviorRanged
)

func (b Behavior) String() string {
	if b == BehaviorRanged {
		return "ranged"
	}
	return "melee"
}

// EnemyProfile is the per-kind stat block.
type EnemyProfile struct {
	Health   float64
	Speed    float64
	Size     float64
	Behavior Behavior
	Cooldown int
	Score    int
	Boss     bool
}

var enemyTable = map[EnemyKind]EnemyProfile{
	EnemyBlue:        {Health: 2, Speed: 1.5, Size: EnemySize, Behavior: BehaviorMelee, Cooldown: MeleeCooldown, Score: EnemyDefeatScore},
	EnemyRed:         {Health: 4, Speed: 1.3, Size: EnemySize, Behavior: BehaviorMelee, Cooldown: MeleeCooldown, Score: EnemyDefeatScore},
	EnemyWhite:       {Health: 6, Speed: 1.1, Size: EnemySize, Behavior: BehaviorMelee, Cooldown: MeleeCooldown, Score: EnemyDefeatScore},
	EnemyBlueKobold:  {Health: 2, Speed: 0.75, Size: EnemySize, Behavior: BehaviorRanged, Cooldown: RangedCooldown, Score: EnemyDefeatScore},
	EnemyRedKobold:   {Health: 4, Speed: 0.65, Size: EnemySize, Behavior: BehaviorRanged, Cooldown: RangedCooldown, Score: EnemyDefeatScore},
	EnemyWhiteKobold: {Health: 6, Speed: 0.55, Size: EnemySize, Behavior: BehaviorRanged, Cooldown: RangedCooldown, Score: EnemyDefeatScore},
	EnemyBoss:        {Health: 50, Speed: 1, Size: BossSize, Behavior: BehaviorMelee, Cooldown: MeleeCooldown, Score: BossDefeatScore, Boss: true},
}

func (k EnemyKind) Profile() EnemyProfile {
	return enemyTable[k]
}

func (k EnemyKind) Valid() bool {
	_, ok := enemyTable[k]
	return ok
}

// ParseEnemyKind validates a kind name coming from population data or the wire.
func ParseEnemyKind(name string) (EnemyKind, bool) {
	k := EnemyKind(name)
	return k, k.Valid()
}
