package sim

import (
	"context"
	"fmt"
	"math/rand"

	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
	"legend-of-kiro/logging"
	"legend-of-kiro/logging/lifecycle"
)

const (
	ticksMetricKey          = "sim_ticks_total"
	embeddedMetricKey       = "sim_player_embedded_total"
	enemiesDefeatedKey      = "sim_enemies_defeated_total"
	unknownSpawnMetricKey   = "sim_unknown_spawn_kind_total"
	collectiblesMetricKey   = "sim_collectibles_collected_total"
	sessionsEndedMetricKey  = "sim_sessions_ended_total"
	sessionRestartMetricKey = "sim_session_restarts_total"
)

var playerRef = logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer}

// Session owns one game: the player, every enemy, obstacle and collectible,
// the camera and the score. It is not safe for concurrent use; Loop
// serialises access when a session is driven from several goroutines.
type Session struct {
	cfg  Config
	deps Deps
	ctx  context.Context

	phase Phase
	tick  uint64
	score int
	keys  keyState

	player       *state.Player
	enemies      []*state.Enemy
	obstacles    world.Obstacles
	collectibles []*state.Collectible
	camera       world.Camera
	rng          *rand.Rand

	nextEnemyID       int
	nextCollectibleID int
}

// New builds and populates a fresh session.
func New(cfg Config, deps Deps) *Session {
	s := &Session{
		cfg:  cfg.normalized(),
		deps: deps.normalized(),
		ctx:  context.Background(),
		keys: make(keyState),
	}
	s.populate()
	s.phase = s.initialPhase()
	if s.phase == PhaseRunning {
		lifecycle.SessionStarted(s.ctx, s.deps.Publisher, s.tick, playerRef, nil)
	}
	return s
}

func (s *Session) initialPhase() Phase {
	if s.cfg.AutoStart {
		return PhaseRunning
	}
	return PhaseNotStarted
}

func (s *Session) populate() {
	s.player = state.NewPlayer(world.PlayerSpawn)
	s.enemies = nil
	s.obstacles = nil
	s.collectibles = nil
	s.nextEnemyID = 0
	s.nextCollectibleID = 0
	s.rng = s.deps.RNG()
	world.Populate(s.rng, s.cfg.Population, s)
	s.camera = world.CameraOn(s.player.Pos)
}

// AddObstacle implements world.Spawner.
func (s *Session) AddObstacle(o world.Obstacle) {
	s.obstacles = append(s.obstacles, o)
}

// SpawnEnemyAt implements world.Spawner.
func (s *Session) SpawnEnemyAt(kind string, pos world.Vec2) {
	k, ok := state.ParseEnemyKind(kind)
	if !ok {
		s.deps.Logger.Printf("skipping unknown enemy kind %q", kind)
		s.deps.Metrics.Add(unknownSpawnMetricKey, 1)
		return
	}
	s.nextEnemyID++
	s.enemies = append(s.enemies, state.NewEnemy(fmt.Sprintf("enemy-%d", s.nextEnemyID), k, pos))
}

// SpawnCollectibleAt implements world.Spawner.
func (s *Session) SpawnCollectibleAt(kind string, pos world.Vec2) {
	k, ok := state.ParseCollectibleKind(kind)
	if !ok {
		s.deps.Logger.Printf("skipping unknown collectible kind %q", kind)
		s.deps.Metrics.Add(unknownSpawnMetricKey, 1)
		return
	}
	s.nextCollectibleID++
	s.collectibles = append(s.collectibles, &state.Collectible{
		ID:   fmt.Sprintf("item-%d", s.nextCollectibleID),
		Kind: k,
		Pos:  pos,
	})
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) TickCount() uint64 {
	return s.tick
}

// SetKey records the held state of key. A transition from released to held
// is also delivered to Press as a key-down edge.
func (s *Session) SetKey(key Key, held bool) {
	if _, ok := knownKeys[key]; !ok {
		return
	}
	was := s.keys[key]
	s.keys[key] = held
	if held && !was {
		s.Press(key)
	}
}

// Press handles a key-down edge. On the start screen any key starts the
// session and is otherwise consumed; while running the attack key attacks.
func (s *Session) Press(key Key) {
	if s.phase == PhaseNotStarted {
		s.Start()
		return
	}
	if key == KeyAttack {
		s.Attack()
	}
}

// Start leaves the start screen. It reports whether the phase changed.
func (s *Session) Start() bool {
	if s.phase != PhaseNotStarted {
		return false
	}
	s.phase = PhaseRunning
	lifecycle.SessionStarted(s.ctx, s.deps.Publisher, s.tick, playerRef, nil)
	return true
}

// Restart discards the world and repopulates it with fresh rolls. Score
// resets to zero and health to the starting maximum.
func (s *Session) Restart() {
	s.score = 0
	s.tick = 0
	s.populate()
	s.phase = s.initialPhase()
	s.deps.Metrics.Add(sessionRestartMetricKey, 1)
	lifecycle.SessionRestarted(s.ctx, s.deps.Publisher, s.tick, playerRef, lifecycle.SessionRestartedPayload{
		Enemies:      len(s.enemies),
		Obstacles:    len(s.obstacles),
		Collectibles: len(s.collectibles),
	}, nil)
	s.notifyHealth()
	s.notifyScore()
	if s.phase == PhaseRunning {
		lifecycle.SessionStarted(s.ctx, s.deps.Publisher, s.tick, playerRef, nil)
	}
}

// Tick runs one fixed-order update pass. Nothing changes unless the session
// is running, and a pass stops at the first win or loss.
func (s *Session) Tick() {
	if s.phase != PhaseRunning {
		return
	}
	s.tick++
	s.deps.Metrics.Add(ticksMetricKey, 1)

	phases := [...]func(){
		s.updatePlayer,
		s.updateEnemies,
		s.updateCollectibles,
		s.updateProjectiles,
	}
	for _, run := range phases {
		run()
		if s.phase != PhaseRunning {
			return
		}
	}
	s.camera = world.CameraOn(s.player.Pos)
}

func (s *Session) finish(outcome Phase) {
	if s.phase != PhaseRunning {
		return
	}
	s.phase = outcome
	s.deps.Metrics.Add(sessionsEndedMetricKey, 1)
	lifecycle.SessionEnded(s.ctx, s.deps.Publisher, s.tick, playerRef, lifecycle.SessionEndedPayload{
		Outcome: string(outcome),
		Score:   s.score,
	}, nil)
}

func (s *Session) notifyHealth() {
	if s.deps.Hooks.HealthChanged != nil {
		s.deps.Hooks.HealthChanged(s.player.Health, s.player.MaxHealth)
	}
}

func (s *Session) notifyScore() {
	if s.deps.Hooks.ScoreChanged != nil {
		s.deps.Hooks.ScoreChanged(s.score)
	}
}

func enemyRef(e *state.Enemy) logging.EntityRef {
	return logging.EntityRef{ID: e.ID, Kind: logging.EntityKindEnemy}
}
