package sim

import (
	"legend-of-kiro/internal/telemetry"
	"legend-of-kiro/internal/world"
	"legend-of-kiro/logging"
)

// Hooks are the collaborator callbacks for HUD refreshes.
type Hooks struct {
	// HealthChanged fires whenever health or max health changes.
	HealthChanged func(health, maxHealth float64)
	// ScoreChanged fires whenever the score changes.
	ScoreChanged func(score int)
}

// Deps carries shared infrastructure dependencies required by a session.
type Deps struct {
	Publisher logging.Publisher
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Clock     logging.Clock
	// RNG supplies one random source per population pass. It defaults to a
	// wall-clock seed so every restart rolls a new layout.
	RNG   world.RNGFactory
	Hooks Hooks
}

func (d Deps) normalized() Deps {
	if d.Publisher == nil {
		d.Publisher = logging.NopPublisher()
	}
	if d.Logger == nil {
		d.Logger = telemetry.Discard()
	}
	if d.Metrics == nil {
		d.Metrics = telemetry.WrapMetrics(nil)
	}
	if d.Clock == nil {
		d.Clock = logging.SystemClock{}
	}
	if d.RNG == nil {
		d.RNG = world.TimeSeededRNG
	}
	return d
}
