package render

import (
	"testing"

	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

func TestHearts(t *testing.T) {
	cases := []struct {
		health, max float64
		want        []float64
	}{
		{4, 4, []float64{1, 1, 1, 1}},
		{3.5, 4, []float64{1, 1, 1, 0.5}},
		{0.5, 5, []float64{0.5, 0, 0, 0, 0}},
		{0, 4, []float64{0, 0, 0, 0}},
	}
	for _, tc := range cases {
		got := Hearts(tc.health, tc.max)
		if len(got) != len(tc.want) {
			t.Fatalf("Hearts(%.1f, %.1f): got %v, want %v", tc.health, tc.max, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("Hearts(%.1f, %.1f): got %v, want %v", tc.health, tc.max, got, tc.want)
			}
		}
	}
}

func snapshotAt(pos world.Vec2, phase sim.Phase) sim.Snapshot {
	player := state.NewPlayer(pos)
	return sim.Snapshot{Phase: phase, Player: *player, Camera: world.CameraOn(pos)}
}

func TestComposeCentersPlayerAndCullsOffscreen(t *testing.T) {
	snap := snapshotAt(world.Vec2{X: 600, Y: 2400}, sim.PhaseRunning)
	snap.Obstacles = []world.Obstacle{
		{ID: "near", Kind: world.ObstacleTree, Rect: world.Rect{X: 500, Y: 2300, Width: 40, Height: 40}},
		{ID: "far", Kind: world.ObstacleMountain, Rect: world.Rect{X: 500, Y: 100, Width: 40, Height: 40}},
	}
	scene := Compose(snap, HUD{Health: 4, MaxHealth: 4})

	if len(scene.Shapes) != 2 {
		t.Fatalf("shapes: got %d, want 2 (visible obstacle + player)", len(scene.Shapes))
	}
	tree := scene.Shapes[0]
	if tree.X != 200 || tree.Y != 200 || tree.Glyph != '♣' {
		t.Fatalf("tree shape: got %+v", tree)
	}
	player := scene.Shapes[1]
	if player.X != 277.5 || player.Y != 277.5 || player.Glyph != '@' {
		t.Fatalf("player shape: got %+v", player)
	}
	if scene.Overlay != nil {
		t.Fatalf("running scene has overlay %+v", scene.Overlay)
	}
}

func TestComposeOverlays(t *testing.T) {
	for phase, title := range map[sim.Phase]string{
		sim.PhaseNotStarted: "LEGEND OF KIRO",
		sim.PhaseLost:       "GAME OVER",
		sim.PhaseWon:        "VICTORY",
	} {
		scene := Compose(snapshotAt(world.PlayerSpawn, phase), HUD{})
		if scene.Overlay == nil || scene.Overlay.Title != title {
			t.Fatalf("%s overlay: got %+v, want %q", phase, scene.Overlay, title)
		}
	}
}

func TestComposeBlinksInvulnerablePlayer(t *testing.T) {
	snap := snapshotAt(world.PlayerSpawn, sim.PhaseRunning)
	snap.Player.Invulnerable = true
	snap.Tick = blinkTicks
	if scene := Compose(snap, HUD{}); len(scene.Shapes) != 0 {
		t.Fatalf("expected player hidden on blink tick, got %+v", scene.Shapes)
	}
	snap.Tick = 0
	if scene := Compose(snap, HUD{}); len(scene.Shapes) != 1 {
		t.Fatalf("expected player drawn, got %d shapes", len(scene.Shapes))
	}
}

func TestHUDTrackerChainsHooks(t *testing.T) {
	tracker := NewHUDTracker()
	var forwarded int
	hooks := tracker.Hooks(sim.Hooks{ScoreChanged: func(score int) { forwarded = score }})
	hooks.HealthChanged(2.5, 5)
	hooks.ScoreChanged(600)

	hud := tracker.HUD()
	if hud.Health != 2.5 || hud.MaxHealth != 5 || hud.Score != 600 {
		t.Fatalf("hud: got %+v", hud)
	}
	if forwarded != 600 {
		t.Fatalf("forwarded score: got %d, want 600", forwarded)
	}
}
