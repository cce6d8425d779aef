package state

// Player tuning. Durations are in ticks.
const (
	PlayerSize       = 45.0
	PlayerSpeed      = 3.0
	PlayerMaxHealth  = 4.0
	Friction         = 0.85
	VelocitySnap     = 0.1
	HitInvulnerable  = 60
	PotionDuration   = 300
	MeleeAttackTicks = 15
	BowAttackTicks   = 10
)

const (
	ArrowSpeed     = 8.0
	ArrowMaxTravel = 300.0
	BoltSpeed      = 5.0
	BoltMaxTravel  = 400.0
)

// Enemy tuning.
const (
	EnemySize        = 30.0
	BossSize         = 60.0
	EnemyContactDmg  = 0.5
	EnemyAttackTicks = 20
	MeleeCooldown    = 60
	RangedCooldown   = 90
	SeekRadius       = 200.0
	WanderRetarget   = 60
	KoboldMinRange   = 80.0
	KoboldMaxRange   = 250.0
)

const (
	CollectibleSize  = 20.0
	HeartHealAmount  = 1.0
	CoinPouchScore   = 500
	EnemyDefeatScore = 100
	BossDefeatScore  = 1000
)
