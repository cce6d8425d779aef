package status_effects

import (
	"context"

	"legend-of-kiro/logging"
)

const (
	// EventApplied is emitted when a potion effect becomes active.
	EventApplied logging.EventType = "status_effects.applied"
	// EventExpired is emitted when a potion timer runs out.
	EventExpired logging.EventType = "status_effects.expired"
)

// Payload names the effect and its remaining duration.
type Payload struct {
	Effect        string `json:"effect"`
	DurationTicks int    `json:"durationTicks,omitempty"`
}

// Applied publishes a status effect application.
func Applied(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload Payload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventApplied,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryStatus,
		Payload:  payload,
		Extra:    extra,
	})
}

// Expired publishes a status effect expiry.
func Expired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload Payload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventExpired,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryStatus,
		Payload:  payload,
		Extra:    extra,
	})
}
