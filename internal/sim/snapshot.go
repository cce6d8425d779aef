package sim

import (
	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

// Snapshot is a read-only copy of everything a renderer draws. Defeated
// enemies and collected items are left out. Obstacles share the session's
// backing array, which is never mutated in place.
type Snapshot struct {
	Phase        Phase               `json:"phase" msgpack:"phase"`
	Tick         uint64              `json:"tick" msgpack:"tick"`
	Score        int                 `json:"score" msgpack:"score"`
	Player       state.Player        `json:"player" msgpack:"player"`
	Enemies      []state.Enemy       `json:"enemies" msgpack:"enemies"`
	Obstacles    []world.Obstacle    `json:"obstacles" msgpack:"obstacles"`
	Collectibles []state.Collectible `json:"collectibles" msgpack:"collectibles"`
	Camera       world.Camera        `json:"camera" msgpack:"camera"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     s.phase,
		Tick:      s.tick,
		Score:     s.score,
		Player:    *s.player,
		Obstacles: s.obstacles,
		Camera:    s.camera,
	}
	snap.Player.Arrows = append([]state.Projectile(nil), s.player.Arrows...)

	snap.Enemies = make([]state.Enemy, 0, len(s.enemies))
	for _, e := range s.enemies {
		if !e.Alive {
			continue
		}
		copied := *e
		copied.Bolts = append([]state.Projectile(nil), e.Bolts...)
		snap.Enemies = append(snap.Enemies, copied)
	}

	snap.Collectibles = make([]state.Collectible, 0, len(s.collectibles))
	for _, c := range s.collectibles {
		if c.Collected {
			continue
		}
		snap.Collectibles = append(snap.Collectibles, *c)
	}
	return snap
}

// Boss returns the boss enemy, if one was spawned.
func (s *Session) Boss() *state.Enemy {
	for _, e := range s.enemies {
		if e.Profile().Boss {
			return e
		}
	}
	return nil
}
