package ws

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"legend-of-kiro/internal/net/proto"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/world"
	"legend-of-kiro/logging/lifecycle"
	"legend-of-kiro/logging/sinks"
)

func newTestServer(t *testing.T) (*Handler, *httptest.Server, *sinks.Memory) {
	t.Helper()
	events := sinks.NewMemory()
	handler := NewHandler(HandlerConfig{
		Publisher: events,
		Loop:      sim.LoopConfig{TickRate: 200},
		RNG:       world.DeterministicFactory("seed-11"),
	})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	t.Cleanup(srv.Close)
	return handler, srv, events
}

func websocketURL(t *testing.T, raw, codec string) string {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse server url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/ws"
	if codec != "" {
		u.RawQuery = url.Values{"codec": []string{codec}}.Encode()
	}
	return u.String()
}

func dial(t *testing.T, srv *httptest.Server, codec string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, codec), nil)
	if resp != nil {
		resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn, codec proto.Codec) proto.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	frame, err := codec.Decode(payload)
	if err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}
	return frame
}

func TestHandleSendsInitialStateAndHUD(t *testing.T) {
	_, srv, events := newTestServer(t)
	conn := dial(t, srv, "")
	codec, _ := proto.CodecByName(proto.CodecJSON)

	first := readFrame(t, conn, codec)
	if first.Type != proto.TypeState || first.Snapshot == nil {
		t.Fatalf("expected initial state frame, got %+v", first)
	}
	if first.Snapshot.Phase != sim.PhaseNotStarted {
		t.Fatalf("phase: got %s, want %s", first.Snapshot.Phase, sim.PhaseNotStarted)
	}
	if len(first.Snapshot.Obstacles) != 258 {
		t.Fatalf("obstacles: got %d, want 258", len(first.Snapshot.Obstacles))
	}
	hud := readFrame(t, conn, codec)
	if hud.Type != proto.TypeHUD || hud.HUD == nil || hud.HUD.Health != 4 {
		t.Fatalf("expected hud frame, got %+v", hud)
	}
	if hud.Session != first.Session || first.Session == "" {
		t.Fatalf("session ids differ: %q vs %q", first.Session, hud.Session)
	}
	if got := len(events.OfType(lifecycle.EventClientConnected)); got != 1 {
		t.Fatalf("client_connected events: got %d, want 1", got)
	}
}

func TestHandleAppliesClientCommands(t *testing.T) {
	_, srv, _ := newTestServer(t)
	conn := dial(t, srv, proto.CodecMsgpack)
	codec, _ := proto.CodecByName(proto.CodecMsgpack)
	readFrame(t, conn, codec)
	readFrame(t, conn, codec)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"ver":1,"type":"press","key":"up"}`)); err != nil {
		t.Fatalf("write press: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		frame := readFrame(t, conn, codec)
		if frame.Type == proto.TypeState && frame.Snapshot.Phase == sim.PhaseRunning && frame.Snapshot.Tick > 0 {
			return
		}
	}
	t.Fatalf("session never started running")
}

func TestHandleRejectsUnknownCodec(t *testing.T) {
	_, srv, _ := newTestServer(t)
	_, resp, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, "xml"), nil)
	if err == nil {
		t.Fatalf("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 response, got %+v", resp)
	}
	resp.Body.Close()
}

func TestHandleUnregistersOnClose(t *testing.T) {
	handler, srv, events := newTestServer(t)
	conn := dial(t, srv, "")
	codec, _ := proto.CodecByName(proto.CodecJSON)
	readFrame(t, conn, codec)

	if handler.Registry().Len() != 1 {
		t.Fatalf("registry: got %d sessions, want 1", handler.Registry().Len())
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for handler.Registry().Len() != 0 || len(events.OfType(lifecycle.EventClientDisconnected)) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("session not released after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
