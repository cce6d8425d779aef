package economy

import (
	"context"

	"legend-of-kiro/logging"
)

const (
	// EventItemCollected is emitted when the player picks up a collectible.
	EventItemCollected logging.EventType = "economy.item_collected"
	// EventScoreChanged is emitted whenever the session score moves.
	EventScoreChanged logging.EventType = "economy.score_changed"
)

// ItemCollectedPayload names the collectible that was consumed.
type ItemCollectedPayload struct {
	Item string  `json:"item"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ScoreChangedPayload captures the delta and the resulting total.
type ScoreChangedPayload struct {
	Delta  int    `json:"delta"`
	Total  int    `json:"total"`
	Reason string `json:"reason"`
}

// ItemCollected publishes a collectible pickup.
func ItemCollected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, item logging.EntityRef, payload ItemCollectedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemCollected,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{item},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}

// ScoreChanged publishes a score update.
func ScoreChanged(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ScoreChangedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventScoreChanged,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}
