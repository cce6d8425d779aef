package world

import (
	"fmt"
	"math/rand"
)

// Band selects the vertical range a random placement is drawn from.
type Band int

const (
	// BandWide spans [WideBandMargin, Height-WideBandMargin).
	BandWide Band = iota
	// BandInner spans [InnerBandMargin, Height-InnerBandMargin).
	BandInner
)

func (b Band) yRange() (float64, float64) {
	switch b {
	case BandInner:
		return InnerBandMargin, Height - InnerBandMargin
	default:
		return WideBandMargin, Height - WideBandMargin
	}
}

// SpawnGroup places Count entities of Kind inside Band.
type SpawnGroup struct {
	Kind  string
	Count int
	Band  Band
}

// Population lists what the population routine places, in placement order.
type Population struct {
	InteriorObstacles int
	Collectibles      []SpawnGroup
	Enemies           []SpawnGroup
	BossKind          string
}

// DefaultPopulation is the full world: 258 obstacles, 34 collectibles and
// 16 enemies including the boss.
func DefaultPopulation() Population {
	return Population{
		InteriorObstacles: 60,
		Collectibles: []SpawnGroup{
			{Kind: "heart", Count: 20, Band: BandWide},
			{Kind: "heart_container", Count: 3, Band: BandInner},
			{Kind: "coin_pouch", Count: 3, Band: BandInner},
			{Kind: "bow", Count: 1, Band: BandInner},
			{Kind: "battleaxe", Count: 1, Band: BandInner},
			{Kind: "red_potion", Count: 1, Band: BandInner},
			{Kind: "green_potion", Count: 1, Band: BandInner},
			{Kind: "yellow_potion", Count: 1, Band: BandInner},
			{Kind: "blue_potion", Count: 1, Band: BandInner},
			{Kind: "red_potion", Count: 1, Band: BandInner},
			{Kind: "green_potion", Count: 1, Band: BandInner},
		},
		Enemies: []SpawnGroup{
			{Kind: "blue", Count: 3, Band: BandInner},
			{Kind: "red", Count: 3, Band: BandInner},
			{Kind: "white", Count: 3, Band: BandInner},
			{Kind: "blue_kobold", Count: 2, Band: BandInner},
			{Kind: "red_kobold", Count: 2, Band: BandInner},
			{Kind: "white_kobold", Count: 2, Band: BandInner},
		},
		BossKind: "boss",
	}
}

// Empty reports whether p places nothing beyond the border.
func (p Population) Empty() bool {
	return p.InteriorObstacles == 0 && len(p.Collectibles) == 0 && len(p.Enemies) == 0 && p.BossKind == ""
}

func (p Population) normalized() Population {
	if p.InteriorObstacles < 0 {
		p.InteriorObstacles = 0
	}
	return p
}

// Spawner receives every placement the population routine makes.
type Spawner interface {
	AddObstacle(Obstacle)
	SpawnCollectibleAt(kind string, pos Vec2)
	SpawnEnemyAt(kind string, pos Vec2)
}

// BorderObstacles rings the world with trees on the sides and mountains on
// the top and bottom edges.
func BorderObstacles() Obstacles {
	sides := int(Height) / int(BorderSpacing)
	edges := int(Width-2*BorderTreeWidth)/int(BorderSpacing) + 1
	obstacles := make(Obstacles, 0, 2*sides+2*edges)
	for y := 0.0; y < Height; y += BorderSpacing {
		obstacles = append(obstacles,
			Obstacle{Kind: ObstacleTree, Rect: Rect{X: 0, Y: y, Width: BorderTreeWidth, Height: BorderTreeHeight}},
			Obstacle{Kind: ObstacleTree, Rect: Rect{X: Width - BorderTreeWidth, Y: y, Width: BorderTreeWidth, Height: BorderTreeHeight}},
		)
	}
	for x := BorderTreeWidth; x < Width-BorderTreeWidth; x += BorderSpacing {
		obstacles = append(obstacles,
			Obstacle{Kind: ObstacleMountain, Rect: Rect{X: x, Y: 0, Width: BorderMountainWidth, Height: BorderMountainHeight}},
			Obstacle{Kind: ObstacleMountain, Rect: Rect{X: x, Y: Height - BorderMountainHeight, Width: BorderMountainWidth, Height: BorderMountainHeight}},
		)
	}
	return obstacles
}

// Populate runs the population routine against spawner. Placements are
// independent uniform rolls; nothing prevents overlaps between them.
func Populate(rng *rand.Rand, pop Population, spawner Spawner) {
	if spawner == nil {
		return
	}
	if rng == nil {
		rng = TimeSeededRNG()
	}
	pop = pop.normalized()

	count := 0
	nextID := func() string {
		count++
		return fmt.Sprintf("obstacle-%d", count)
	}
	for _, obstacle := range BorderObstacles() {
		obstacle.ID = nextID()
		spawner.AddObstacle(obstacle)
	}
	for i := 0; i < pop.InteriorObstacles; i++ {
		x := Between(rng, SpawnMarginX, Width-SpawnMarginX)
		y := Between(rng, WideBandMargin, Height-WideBandMargin)
		kind := ObstacleMountain
		if rng.Float64() > 0.5 {
			kind = ObstacleTree
		}
		spawner.AddObstacle(Obstacle{
			ID:   nextID(),
			Kind: kind,
			Rect: Rect{X: x, Y: y, Width: InteriorObstacleSize, Height: InteriorObstacleSize},
		})
	}

	for _, group := range pop.Collectibles {
		for i := 0; i < group.Count; i++ {
			spawner.SpawnCollectibleAt(group.Kind, randomPoint(rng, group.Band))
		}
	}
	for _, group := range pop.Enemies {
		for i := 0; i < group.Count; i++ {
			spawner.SpawnEnemyAt(group.Kind, randomPoint(rng, group.Band))
		}
	}
	if pop.BossKind != "" {
		spawner.SpawnEnemyAt(pop.BossKind, BossSpawn)
	}
}

func randomPoint(rng *rand.Rand, band Band) Vec2 {
	minY, maxY := band.yRange()
	return Vec2{
		X: Between(rng, SpawnMarginX, Width-SpawnMarginX),
		Y: Between(rng, minY, maxY),
	}
}
