package lifecycle

import (
	"context"

	"legend-of-kiro/logging"
)

const (
	// EventSessionStarted is emitted when a session leaves the start screen.
	EventSessionStarted logging.EventType = "lifecycle.session_started"
	// EventSessionEnded is emitted on the first terminal transition.
	EventSessionEnded logging.EventType = "lifecycle.session_ended"
	// EventSessionRestarted is emitted after the world is repopulated.
	EventSessionRestarted logging.EventType = "lifecycle.session_restarted"
	// EventClientConnected is emitted when a remote client attaches to a session.
	EventClientConnected logging.EventType = "lifecycle.client_connected"
	// EventClientDisconnected is emitted when a remote client goes away.
	EventClientDisconnected logging.EventType = "lifecycle.client_disconnected"
)

// SessionEndedPayload records how the session finished.
type SessionEndedPayload struct {
	Outcome string `json:"outcome"`
	Score   int    `json:"score"`
}

// SessionRestartedPayload records the repopulated world.
type SessionRestartedPayload struct {
	Enemies      int `json:"enemies"`
	Obstacles    int `json:"obstacles"`
	Collectibles int `json:"collectibles"`
}

// ClientPayload identifies a transport connection.
type ClientPayload struct {
	Remote string `json:"remote,omitempty"`
	Codec  string `json:"codec,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func publish(ctx context.Context, pub logging.Publisher, eventType logging.EventType, tick uint64, actor logging.EntityRef, payload any, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     eventType,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// SessionStarted publishes a session start.
func SessionStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, extra map[string]any) {
	publish(ctx, pub, EventSessionStarted, tick, actor, nil, extra)
}

// SessionEnded publishes a win or loss.
func SessionEnded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SessionEndedPayload, extra map[string]any) {
	publish(ctx, pub, EventSessionEnded, tick, actor, payload, extra)
}

// SessionRestarted publishes a restart.
func SessionRestarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SessionRestartedPayload, extra map[string]any) {
	publish(ctx, pub, EventSessionRestarted, tick, actor, payload, extra)
}

// ClientConnected publishes a transport attach.
func ClientConnected(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload ClientPayload, extra map[string]any) {
	publish(ctx, pub, EventClientConnected, 0, actor, payload, extra)
}

// ClientDisconnected publishes a transport detach.
func ClientDisconnected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ClientPayload, extra map[string]any) {
	publish(ctx, pub, EventClientDisconnected, tick, actor, payload, extra)
}
