package proto

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"legend-of-kiro/internal/sim"
)

const (
	// Version tracks the wire-protocol revision expected by clients.
	Version = 1

	// Inbound message types.
	TypeKey     = "key"
	TypePress   = "press"
	TypeRestart = "restart"

	// Outbound frame types.
	TypeState = "state"
	TypeHUD   = "hud"
)

// ClientMessage captures an inbound websocket message from the client.
type ClientMessage struct {
	Ver  int    `json:"ver" jsonschema:"description=Protocol version; must equal the server's"`
	Type string `json:"type" jsonschema:"enum=key,enum=press,enum=restart"`
	Key  string `json:"key,omitempty" jsonschema:"enum=up,enum=down,enum=left,enum=right,enum=attack"`
	Held bool   `json:"held,omitempty"`
}

// DecodeClientMessage converts raw websocket payloads into a structured message.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, fmt.Errorf("decode client message: %w", err)
	}
	if msg.Ver == 0 {
		return msg, fmt.Errorf("client message missing protocol version")
	}
	if msg.Ver != Version {
		return msg, fmt.Errorf("unsupported client protocol version %d", msg.Ver)
	}
	return msg, nil
}

// ClientCommand maps a message onto the session command it carries.
func ClientCommand(msg ClientMessage) (sim.Command, bool) {
	switch msg.Type {
	case TypeKey:
		key, ok := sim.ParseKey(msg.Key)
		if !ok {
			return sim.Command{}, false
		}
		return sim.Command{Type: sim.CommandKey, Key: key, Held: msg.Held}, true
	case TypePress:
		key, ok := sim.ParseKey(msg.Key)
		if !ok {
			return sim.Command{}, false
		}
		return sim.Command{Type: sim.CommandPress, Key: key}, true
	case TypeRestart:
		return sim.Command{Type: sim.CommandRestart}, true
	default:
		return sim.Command{}, false
	}
}

// HUD carries the values shown in the heads-up display.
type HUD struct {
	Health    float64 `json:"health" msgpack:"health"`
	MaxHealth float64 `json:"maxHealth" msgpack:"maxHealth"`
	Score     int     `json:"score" msgpack:"score"`
}

// Frame is one server-to-client message.
type Frame struct {
	Ver      int           `json:"ver" msgpack:"ver"`
	Type     string        `json:"type" msgpack:"type" jsonschema:"enum=state,enum=hud"`
	Session  string        `json:"session" msgpack:"session"`
	Snapshot *sim.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	HUD      *HUD          `json:"hud,omitempty" msgpack:"hud,omitempty"`
}

// StateFrame wraps a snapshot for session.
func StateFrame(session string, snap sim.Snapshot) Frame {
	return Frame{Ver: Version, Type: TypeState, Session: session, Snapshot: &snap}
}

// HUDFrame wraps a HUD refresh for session.
func HUDFrame(session string, hud HUD) Frame {
	return Frame{Ver: Version, Type: TypeHUD, Session: session, HUD: &hud}
}

// Codec turns frames into websocket payloads.
type Codec interface {
	Name() string
	// Binary reports whether payloads go out as binary websocket messages.
	Binary() bool
	Encode(Frame) ([]byte, error)
	Decode([]byte) (Frame, error)
}

const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// CodecByName resolves a codec query value. The empty name selects JSON.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return jsonCodec{}, nil
	case CodecMsgpack:
		return msgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecJSON }
func (jsonCodec) Binary() bool { return false }

func (jsonCodec) Encode(frame Frame) ([]byte, error) {
	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("encode json frame: %w", err)
	}
	return data, nil
}

func (jsonCodec) Decode(data []byte) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return Frame{}, fmt.Errorf("decode json frame: %w", err)
	}
	return frame, nil
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return CodecMsgpack }
func (msgpackCodec) Binary() bool { return true }

func (msgpackCodec) Encode(frame Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&frame)
	if err != nil {
		return nil, fmt.Errorf("encode msgpack frame: %w", err)
	}
	return data, nil
}

func (msgpackCodec) Decode(data []byte) (Frame, error) {
	var frame Frame
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		return Frame{}, fmt.Errorf("decode msgpack frame: %w", err)
	}
	return frame, nil
}
