package combat

import (
	"math"
	"testing"

	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

func TestMeleeSweepKillsBlueGoblinInFront(t *testing.T) {
	player := state.NewPlayer(world.Vec2{X: 600, Y: 600})
	enemy := state.NewEnemy("e1", state.EnemyBlue, world.Vec2{X: 600, Y: 570})

	var defeatedCalls int
	result := ResolveMeleeSweep(MeleeSweepConfig{
		Origin: player.Pos,
		Facing: state.FacingUp,
		Range:  player.Stats.Range,
		Damage: player.Stats.Damage,
		OnHit: func(e *state.Enemy, defeated bool) {
			if defeated {
				defeatedCalls++
			}
		},
	}, []*state.Enemy{enemy})

	if result.Hits != 1 || result.Defeated != 1 || defeatedCalls != 1 {
		t.Fatalf("sweep result mismatch: %+v calls=%d", result, defeatedCalls)
	}
	if enemy.Alive || enemy.Health != 0 {
		t.Fatalf("enemy should be defeated: %+v", enemy)
	}
}

func TestMeleeSweepSkipsEnemyBehindOrOutOfRange(t *testing.T) {
	origin := world.Vec2{X: 600, Y: 600}
	behind := state.NewEnemy("behind", state.EnemyWhite, world.Vec2{X: 600, Y: 630})
	far := state.NewEnemy("far", state.EnemyWhite, world.Vec2{X: 600, Y: 550})
	wide := state.NewEnemy("wide", state.EnemyWhite, world.Vec2{X: 630, Y: 580})

	result := ResolveMeleeSweep(MeleeSweepConfig{Origin: origin, Facing: state.FacingUp, Range: 45, Damage: 2},
		[]*state.Enemy{behind, far, wide})
	if result.Hits != 0 {
		t.Fatalf("expected no hits, got %+v", result)
	}
	for _, e := range []*state.Enemy{behind, far, wide} {
		if e.Health != e.MaxHealth {
			t.Fatalf("enemy %s was damaged", e.ID)
		}
	}
}

func TestInFacingArcUsesHalfArc(t *testing.T) {
	origin := world.Vec2{}
	inside := world.Vec2{X: math.Cos(math.Pi / 8), Y: math.Sin(math.Pi / 8)}
	outside := world.Vec2{X: math.Cos(math.Pi / 4), Y: math.Sin(math.Pi / 4)}
	if !InFacingArc(origin, inside, state.FacingRight) {
		t.Fatalf("22.5 degrees off facing should be inside the arc")
	}
	if InFacingArc(origin, outside, state.FacingRight) {
		t.Fatalf("45 degrees off facing should be outside the arc")
	}
	// Facing left straddles the ±π seam.
	seam := world.Vec2{X: -1, Y: 0.1}
	if !InFacingArc(origin, seam, state.FacingLeft) {
		t.Fatalf("angle wrap failed near π")
	}
}

func TestArrowTravelsAlongFacing(t *testing.T) {
	origin := world.Vec2{X: 600, Y: 2400}
	arrows := []state.Projectile{SpawnArrow(origin, state.FacingUp, 1)}
	if arrows[0].Vel != (world.Vec2{X: 0, Y: -state.ArrowSpeed}) {
		t.Fatalf("arrow velocity mismatch: %+v", arrows[0].Vel)
	}
	const n = 10
	for i := 0; i < n; i++ {
		arrows = AdvanceArrows(arrows, nil, ArrowPhaseConfig{})
	}
	if len(arrows) != 1 {
		t.Fatalf("arrow culled early")
	}
	want := world.Vec2{X: 600, Y: 2400 - n*state.ArrowSpeed}
	if arrows[0].Pos != want || arrows[0].Traveled != n*state.ArrowSpeed {
		t.Fatalf("arrow after %d ticks: %+v", n, arrows[0])
	}
}

func TestArrowCulledAfterMaxTravel(t *testing.T) {
	arrows := []state.Projectile{SpawnArrow(world.Vec2{X: 600, Y: 2400}, state.FacingDown, 1)}
	expired := 0
	for i := 0; i < 40 && len(arrows) > 0; i++ {
		arrows = AdvanceArrows(arrows, nil, ArrowPhaseConfig{OnExpire: func(state.Projectile) { expired++ }})
	}
	if len(arrows) != 0 || expired != 1 {
		t.Fatalf("arrow should expire once past %v: left=%d expired=%d", state.ArrowMaxTravel, len(arrows), expired)
	}
}

func TestArrowHitsFirstEnemyOnly(t *testing.T) {
	first := state.NewEnemy("first", state.EnemyWhite, world.Vec2{X: 100, Y: 92})
	second := state.NewEnemy("second", state.EnemyWhite, world.Vec2{X: 100, Y: 92})
	arrows := []state.Projectile{SpawnArrow(world.Vec2{X: 100, Y: 100}, state.FacingUp, 3)}

	var struck []string
	arrows = AdvanceArrows(arrows, []*state.Enemy{first, second}, ArrowPhaseConfig{
		OnHit: func(_ state.Projectile, e *state.Enemy, _ bool) { struck = append(struck, e.ID) },
	})
	if len(arrows) != 0 {
		t.Fatalf("arrow should be consumed")
	}
	if len(struck) != 1 || struck[0] != "first" {
		t.Fatalf("hit order mismatch: %v", struck)
	}
	if first.Health != 3 || second.Health != 6 {
		t.Fatalf("damage mismatch: first=%v second=%v", first.Health, second.Health)
	}
}

func TestBoltAimsAtCurrentPositionAndHits(t *testing.T) {
	target := world.Vec2{X: 200, Y: 100}
	bolt := AimBolt(world.Vec2{X: 100, Y: 100}, target, state.EnemyContactDmg)
	if math.Abs(bolt.Vel.X-state.BoltSpeed) > 1e-9 || math.Abs(bolt.Vel.Y) > 1e-9 {
		t.Fatalf("bolt velocity mismatch: %+v", bolt.Vel)
	}
	bolts := []state.Projectile{bolt}
	hits := 0
	for i := 0; i < 30 && len(bolts) > 0; i++ {
		bolts = AdvanceBolts(bolts, target, state.PlayerSize/2, func(state.Projectile) { hits++ })
	}
	if hits != 1 || len(bolts) != 0 {
		t.Fatalf("bolt should hit once: hits=%d left=%d", hits, len(bolts))
	}
}
