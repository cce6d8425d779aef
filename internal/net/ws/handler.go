package ws

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"legend-of-kiro/internal/net/proto"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/telemetry"
	"legend-of-kiro/internal/world"
	"legend-of-kiro/logging"
	"legend-of-kiro/logging/lifecycle"
)

const (
	connectionsMetricKey     = "ws_connections_total"
	activeSessionsMetricKey  = "ws_active_sessions"
	malformedMetricKey       = "ws_malformed_messages_total"
	frameWriteErrorMetricKey = "ws_frame_write_errors_total"

	writeWait = 5 * time.Second
)

// HandlerConfig wires a handler to shared infrastructure. Every field is
// optional.
type HandlerConfig struct {
	Logger    telemetry.Logger
	Publisher logging.Publisher
	Metrics   *logging.Metrics
	Clock     logging.Clock
	Session   sim.Config
	Loop      sim.LoopConfig
	RNG       world.RNGFactory
	Registry  *Registry
}

// Handler upgrades requests to websocket connections and runs one game
// session per connection.
type Handler struct {
	cfg      HandlerConfig
	metrics  telemetry.Metrics
	upgrader websocket.Upgrader
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = telemetry.Discard()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = logging.NopPublisher()
	}
	if cfg.Clock == nil {
		cfg.Clock = logging.SystemClock{}
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	return &Handler{
		cfg:     cfg,
		metrics: telemetry.WrapMetrics(cfg.Metrics),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

// Registry exposes the live-session registry for diagnostics.
func (h *Handler) Registry() *Registry {
	return h.cfg.Registry
}

// Handle serves GET /ws. The codec query parameter selects the frame encoding.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	codec, err := proto.CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		nethttp.Error(w, err.Error(), nethttp.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.cfg.Logger.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	id := uuid.NewString()
	pub := logging.WithFields(h.cfg.Publisher, map[string]any{"session": id})
	c := &connection{
		id:     id,
		conn:   conn,
		codec:  codec,
		logger: h.cfg.Logger,
		metric: h.metrics,
	}

	session := sim.New(h.cfg.Session, sim.Deps{
		Publisher: pub,
		Logger:    h.cfg.Logger,
		Metrics:   h.metrics,
		Clock:     h.cfg.Clock,
		RNG:       h.cfg.RNG,
		Hooks: sim.Hooks{
			HealthChanged: c.sendHealth,
			ScoreChanged:  c.sendScore,
		},
	})
	ctx, cancel := context.WithCancel(r.Context())
	c.cancel = cancel
	c.loop = sim.NewLoop(session, h.cfg.Loop, sim.LoopHooks{
		AfterStep: c.afterStep,
	})

	h.cfg.Registry.add(id, codec.Name(), c.loop, h.cfg.Clock.Now())
	h.metrics.Add(connectionsMetricKey, 1)
	h.metrics.Store(activeSessionsMetricKey, uint64(h.cfg.Registry.Len()))
	ref := logging.EntityRef{ID: id, Kind: logging.EntityKindSession}
	lifecycle.ClientConnected(ctx, pub, ref, lifecycle.ClientPayload{Remote: r.RemoteAddr, Codec: codec.Name()}, nil)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	snap := c.loop.Snapshot()
	c.send(proto.StateFrame(id, snap))
	c.sendHUD(proto.HUD{Health: snap.Player.Health, MaxHealth: snap.Player.MaxHealth, Score: snap.Score})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.loop.Run(ctx)
	}()

	reason := c.readLoop(ctx, h)

	cancel()
	<-done
	h.cfg.Registry.remove(id)
	h.metrics.Store(activeSessionsMetricKey, uint64(h.cfg.Registry.Len()))
	lifecycle.ClientDisconnected(context.Background(), pub, c.loop.Status().Tick, ref, lifecycle.ClientPayload{
		Remote: r.RemoteAddr,
		Codec:  codec.Name(),
		Reason: reason,
	}, nil)
}

// readLoop stages client commands until the connection fails. It returns
// the disconnect reason.
func (c *connection) readLoop(ctx context.Context, h *Handler) string {
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return "cancelled"
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "closed"
			}
			return "read_failed"
		}

		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.metrics.Add(malformedMetricKey, 1)
			h.cfg.Logger.Printf("discarding malformed message from %s: %v", c.id, err)
			continue
		}
		cmd, ok := proto.ClientCommand(msg)
		if !ok {
			h.metrics.Add(malformedMetricKey, 1)
			h.cfg.Logger.Printf("unknown message type %q from %s", msg.Type, c.id)
			continue
		}
		cmd.IssuedAt = h.cfg.Clock.Now()
		c.loop.Enqueue(cmd)
	}
}
