package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"legend-of-kiro/internal/net/proto"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/telemetry"
)

// connection pairs one websocket with the session it drives. Frames are
// written from the loop goroutine; the handler goroutine only reads.
type connection struct {
	id     string
	conn   *websocket.Conn
	codec  proto.Codec
	logger telemetry.Logger
	metric telemetry.Metrics
	loop   *sim.Loop
	cancel context.CancelFunc

	writeMu sync.Mutex
	hud     proto.HUD
}

func (c *connection) afterStep(result sim.LoopStepResult) {
	c.send(proto.StateFrame(c.id, result.Snapshot))
}

func (c *connection) sendHealth(health, maxHealth float64) {
	c.hud.Health = health
	c.hud.MaxHealth = maxHealth
	c.sendHUD(c.hud)
}

func (c *connection) sendScore(score int) {
	c.hud.Score = score
	c.sendHUD(c.hud)
}

func (c *connection) sendHUD(hud proto.HUD) {
	c.hud = hud
	c.send(proto.HUDFrame(c.id, hud))
}

// send encodes and writes a frame. A failed write cancels the session.
func (c *connection) send(frame proto.Frame) {
	data, err := c.codec.Encode(frame)
	if err != nil {
		c.logger.Printf("failed to encode %s frame for %s: %v", frame.Type, c.id, err)
		return
	}
	messageType := websocket.TextMessage
	if c.codec.Binary() {
		messageType = websocket.BinaryMessage
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(messageType, data); err != nil {
		c.metric.Add(frameWriteErrorMetricKey, 1)
		c.logger.Printf("write failed for %s: %v", c.id, err)
		if c.cancel != nil {
			c.cancel()
		}
	}
}
