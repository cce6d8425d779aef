package world

const (
	// Width and Height bound the playable world in world units.
	Width  = 1200.0
	Height = 4800.0

	ViewportWidth  = 600.0
	ViewportHeight = 600.0

	BorderTreeWidth      = 40.0
	BorderTreeHeight     = 50.0
	BorderMountainWidth  = 50.0
	BorderMountainHeight = 40.0
	BorderSpacing        = 60.0

	InteriorObstacleSize = 40.0

	// SpawnMarginX keeps random placements away from the side borders.
	SpawnMarginX = 200.0
	// WideBandMargin and InnerBandMargin bound random placements vertically.
	WideBandMargin  = 400.0
	InnerBandMargin = 600.0
)

// PlayerSpawn is the player's starting center.
var PlayerSpawn = Vec2{X: Width / 2, Y: Height - 100}

// BossSpawn is the boss's starting center.
var BossSpawn = Vec2{X: Width / 2, Y: 150}
