package sim

import (
	"testing"

	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
	"legend-of-kiro/logging/combat"
	"legend-of-kiro/logging/economy"
	"legend-of-kiro/logging/lifecycle"
	"legend-of-kiro/logging/sinks"
)

type hookRecorder struct {
	health []float64
	scores []int
}

func newTestSession(t *testing.T, autoStart bool) (*Session, *sinks.Memory, *hookRecorder) {
	t.Helper()
	events := sinks.NewMemory()
	rec := &hookRecorder{}
	cfg := DefaultConfig()
	cfg.AutoStart = autoStart
	s := New(cfg, Deps{
		Publisher: events,
		RNG:       world.DeterministicFactory("seed-42"),
		Hooks: Hooks{
			HealthChanged: func(health, _ float64) { rec.health = append(rec.health, health) },
			ScoreChanged:  func(score int) { rec.scores = append(rec.scores, score) },
		},
	})
	return s, events, rec
}

// clearScene empties the world around the player so a scenario controls
// every entity.
func clearScene(s *Session) {
	s.enemies = nil
	s.collectibles = nil
	s.obstacles = nil
}

func addEnemy(s *Session, kind state.EnemyKind, offset world.Vec2) *state.Enemy {
	e := state.NewEnemy("test-"+string(kind), kind, s.player.Pos.Add(offset))
	s.enemies = append(s.enemies, e)
	return e
}

func TestNewSessionPopulatesDefaultWorld(t *testing.T) {
	s, _, _ := newTestSession(t, false)
	if got := len(s.obstacles); got != 258 {
		t.Fatalf("obstacles: got %d, want 258", got)
	}
	if got := len(s.collectibles); got != 34 {
		t.Fatalf("collectibles: got %d, want 34", got)
	}
	if got := len(s.enemies); got != 16 {
		t.Fatalf("enemies: got %d, want 16", got)
	}
	if s.Boss() == nil || s.Boss().Pos != world.BossSpawn {
		t.Fatalf("boss missing or misplaced: %+v", s.Boss())
	}
	if s.Phase() != PhaseNotStarted {
		t.Fatalf("phase: got %s, want %s", s.Phase(), PhaseNotStarted)
	}
}

func TestTickIgnoredBeforeStart(t *testing.T) {
	s, _, _ := newTestSession(t, false)
	s.SetKey(KeyUp, false)
	s.Tick()
	if s.TickCount() != 0 {
		t.Fatalf("tick count: got %d, want 0", s.TickCount())
	}
}

func TestFirstKeyStartsAndIsConsumed(t *testing.T) {
	s, events, _ := newTestSession(t, false)
	s.SetKey(KeyAttack, true)
	if s.Phase() != PhaseRunning {
		t.Fatalf("phase: got %s, want %s", s.Phase(), PhaseRunning)
	}
	if s.player.Attacking {
		t.Fatalf("starting key must not attack")
	}
	if got := len(events.OfType(lifecycle.EventSessionStarted)); got != 1 {
		t.Fatalf("session_started events: got %d, want 1", got)
	}
}

func TestAutoStartBeginsRunning(t *testing.T) {
	s, events, _ := newTestSession(t, true)
	if s.Phase() != PhaseRunning {
		t.Fatalf("phase: got %s, want %s", s.Phase(), PhaseRunning)
	}
	if got := len(events.OfType(lifecycle.EventSessionStarted)); got != 1 {
		t.Fatalf("session_started events: got %d, want 1", got)
	}
}

func TestSwordDefeatsBlueEnemy(t *testing.T) {
	s, events, rec := newTestSession(t, true)
	clearScene(s)
	enemy := addEnemy(s, state.EnemyBlue, world.Vec2{Y: -30})

	if !s.Attack() {
		t.Fatalf("expected attack to fire")
	}
	if enemy.Alive {
		t.Fatalf("expected enemy defeated, health %.1f", enemy.Health)
	}
	if s.Score() != state.EnemyDefeatScore {
		t.Fatalf("score: got %d, want %d", s.Score(), state.EnemyDefeatScore)
	}
	if len(rec.scores) != 1 || rec.scores[0] != state.EnemyDefeatScore {
		t.Fatalf("score hook: got %v", rec.scores)
	}
	if got := len(events.OfType(combat.EventDefeat)); got != 1 {
		t.Fatalf("defeat events: got %d, want 1", got)
	}
	if s.Attack() {
		t.Fatalf("expected second attack to be ignored during cooldown")
	}
}

func TestSwordMissesEnemyBehindPlayer(t *testing.T) {
	s, _, _ := newTestSession(t, true)
	clearScene(s)
	enemy := addEnemy(s, state.EnemyBlue, world.Vec2{Y: 30})
	s.Attack()
	if enemy.Health != enemy.MaxHealth {
		t.Fatalf("enemy behind player took damage: %.1f", enemy.Health)
	}
}

func TestBossDefeatWins(t *testing.T) {
	s, events, _ := newTestSession(t, true)
	clearScene(s)
	boss := addEnemy(s, state.EnemyBoss, world.Vec2{Y: -40})
	boss.Health = 1

	s.Attack()
	if s.Phase() != PhaseWon {
		t.Fatalf("phase: got %s, want %s", s.Phase(), PhaseWon)
	}
	if s.Score() != state.BossDefeatScore {
		t.Fatalf("score: got %d, want %d", s.Score(), state.BossDefeatScore)
	}
	ended := events.OfType(lifecycle.EventSessionEnded)
	if len(ended) != 1 {
		t.Fatalf("session_ended events: got %d, want 1", len(ended))
	}
	before := s.TickCount()
	s.Tick()
	if s.TickCount() != before {
		t.Fatalf("tick advanced after win")
	}
}

func TestPlayerDeathLoses(t *testing.T) {
	s, _, rec := newTestSession(t, true)
	clearScene(s)
	enemy := addEnemy(s, state.EnemyRed, world.Vec2{X: 200})
	s.player.Health = state.EnemyContactDmg

	s.damagePlayer(enemy, state.EnemyContactDmg, "")
	if s.Phase() != PhaseLost {
		t.Fatalf("phase: got %s, want %s", s.Phase(), PhaseLost)
	}
	if s.player.Health != 0 {
		t.Fatalf("health: got %.2f, want 0", s.player.Health)
	}
	if len(rec.health) != 1 || rec.health[0] != 0 {
		t.Fatalf("health hook: got %v", rec.health)
	}
	if s.Attack() {
		t.Fatalf("attack accepted after loss")
	}
}

func TestBluePotionBlocksDamage(t *testing.T) {
	s, _, rec := newTestSession(t, true)
	clearScene(s)
	enemy := addEnemy(s, state.EnemyBlue, world.Vec2{X: 200})
	s.collectibles = []*state.Collectible{{ID: "item-test", Kind: state.CollectibleBluePotion, Pos: s.player.Pos}}

	s.Tick()
	if s.player.Status != state.StatusBlue {
		t.Fatalf("status: got %q, want %q", s.player.Status, state.StatusBlue)
	}
	s.player.Invulnerable = false
	s.player.InvulnerableTicks = 0
	s.damagePlayer(enemy, state.EnemyContactDmg, "")
	if s.player.Health != state.PlayerMaxHealth {
		t.Fatalf("health: got %.2f, want %.2f", s.player.Health, float64(state.PlayerMaxHealth))
	}
	if len(rec.health) != 0 {
		t.Fatalf("health hook fired without a change: %v", rec.health)
	}
}

func TestContactDamageStartsInvulnerability(t *testing.T) {
	s, _, _ := newTestSession(t, true)
	clearScene(s)
	enemy := addEnemy(s, state.EnemyBlue, world.Vec2{X: 200})

	s.damagePlayer(enemy, state.EnemyContactDmg, "")
	s.damagePlayer(enemy, state.EnemyContactDmg, "")
	want := state.PlayerMaxHealth - state.EnemyContactDmg
	if s.player.Health != want {
		t.Fatalf("health: got %.2f, want %.2f", s.player.Health, want)
	}
	if !s.player.Invulnerable {
		t.Fatalf("expected invulnerability after a hit")
	}
}

func TestCoinPouchAddsScoreOnce(t *testing.T) {
	s, events, _ := newTestSession(t, true)
	clearScene(s)
	s.collectibles = []*state.Collectible{{ID: "item-test", Kind: state.CollectibleCoinPouch, Pos: s.player.Pos}}

	s.Tick()
	s.Tick()
	if s.Score() != state.CoinPouchScore {
		t.Fatalf("score: got %d, want %d", s.Score(), state.CoinPouchScore)
	}
	if got := len(events.OfType(economy.EventItemCollected)); got != 1 {
		t.Fatalf("item_collected events: got %d, want 1", got)
	}
	if snap := s.Snapshot(); len(snap.Collectibles) != 0 {
		t.Fatalf("collected item still in snapshot")
	}
}

func TestHeartAtFullHealthSkipsHook(t *testing.T) {
	s, _, rec := newTestSession(t, true)
	clearScene(s)
	s.collectibles = []*state.Collectible{{ID: "item-test", Kind: state.CollectibleHeart, Pos: s.player.Pos}}
	s.Tick()
	if len(rec.health) != 0 {
		t.Fatalf("health hook fired at full health: %v", rec.health)
	}
	if !s.collectibles[0].Collected {
		t.Fatalf("heart should be consumed even at full health")
	}
}

func TestBowFiresArrowInFacingDirection(t *testing.T) {
	s, _, _ := newTestSession(t, true)
	clearScene(s)
	s.player.EquipWeapon(state.WeaponBow)

	if !s.Attack() {
		t.Fatalf("expected bow attack")
	}
	if len(s.player.Arrows) != 1 {
		t.Fatalf("arrows: got %d, want 1", len(s.player.Arrows))
	}
	arrow := s.player.Arrows[0]
	if arrow.Vel != (world.Vec2{Y: -state.ArrowSpeed}) {
		t.Fatalf("arrow velocity: got %+v", arrow.Vel)
	}
	for i := 0; i < 40; i++ {
		s.Tick()
	}
	if len(s.player.Arrows) != 0 {
		t.Fatalf("arrow survived past max travel: %+v", s.player.Arrows)
	}
}

func TestRestartRepopulatesAndResetsScore(t *testing.T) {
	s, events, rec := newTestSession(t, false)
	s.Start()
	s.addScore(700, "test")
	s.player.Health = 1
	s.Tick()
	events.Reset()

	s.Restart()
	if s.Score() != 0 || s.TickCount() != 0 {
		t.Fatalf("score/tick: got %d/%d, want 0/0", s.Score(), s.TickCount())
	}
	if s.player.Health != state.PlayerMaxHealth {
		t.Fatalf("health: got %.1f", s.player.Health)
	}
	if len(s.obstacles) != 258 || len(s.collectibles) != 34 || len(s.enemies) != 16 {
		t.Fatalf("population: got %d/%d/%d", len(s.obstacles), len(s.collectibles), len(s.enemies))
	}
	if s.Phase() != PhaseNotStarted {
		t.Fatalf("phase: got %s, want %s", s.Phase(), PhaseNotStarted)
	}
	if got := len(events.OfType(lifecycle.EventSessionRestarted)); got != 1 {
		t.Fatalf("restart events: got %d, want 1", got)
	}
	if got := len(events.OfType(lifecycle.EventSessionStarted)); got != 0 {
		t.Fatalf("restart onto the start screen should not start: got %d started events", got)
	}
	if rec.scores[len(rec.scores)-1] != 0 {
		t.Fatalf("score hook not reset: %v", rec.scores)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _, _ := newTestSession(t, true)
	snap := s.Snapshot()
	if len(snap.Enemies) != 16 {
		t.Fatalf("enemies: got %d, want 16", len(snap.Enemies))
	}
	snap.Enemies[0].Health = -1
	snap.Player.Health = -1
	if s.enemies[0].Health == -1 || s.player.Health == -1 {
		t.Fatalf("snapshot mutation leaked into session")
	}
	if snap.Camera != world.CameraOn(s.player.Pos) {
		t.Fatalf("camera: got %+v", snap.Camera)
	}
}

func TestHeldKeyMovesPlayer(t *testing.T) {
	s, _, _ := newTestSession(t, true)
	clearScene(s)
	start := s.player.Pos
	s.SetKey(KeyLeft, true)
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if s.player.Pos.X >= start.X {
		t.Fatalf("player did not move left: %+v -> %+v", start, s.player.Pos)
	}
	if s.player.Facing != state.FacingLeft {
		t.Fatalf("facing: got %s, want %s", s.player.Facing, state.FacingLeft)
	}
	if s.camera != world.CameraOn(s.player.Pos) {
		t.Fatalf("camera did not follow player")
	}
}
