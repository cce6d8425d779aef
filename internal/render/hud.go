package render

import (
	"sync"

	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/state"
)

// HUD holds the heads-up display values.
type HUD struct {
	Health    float64
	MaxHealth float64
	Score     int
}

// HUDTracker keeps the HUD current from session hooks. It is safe to read
// from a render goroutine while the session goroutine writes.
type HUDTracker struct {
	mu  sync.Mutex
	hud HUD
}

func NewHUDTracker() *HUDTracker {
	return &HUDTracker{hud: HUD{Health: state.PlayerMaxHealth, MaxHealth: state.PlayerMaxHealth}}
}

// Hooks returns session hooks that feed the tracker, chained in front of
// next.
func (t *HUDTracker) Hooks(next sim.Hooks) sim.Hooks {
	return sim.Hooks{
		HealthChanged: func(health, maxHealth float64) {
			t.mu.Lock()
			t.hud.Health = health
			t.hud.MaxHealth = maxHealth
			t.mu.Unlock()
			if next.HealthChanged != nil {
				next.HealthChanged(health, maxHealth)
			}
		},
		ScoreChanged: func(score int) {
			t.mu.Lock()
			t.hud.Score = score
			t.mu.Unlock()
			if next.ScoreChanged != nil {
				next.ScoreChanged(score)
			}
		},
	}
}

func (t *HUDTracker) HUD() HUD {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hud
}
