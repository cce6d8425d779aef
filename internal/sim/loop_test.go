package sim

import (
	"context"
	"testing"
	"time"

	"legend-of-kiro/internal/world"
	"legend-of-kiro/logging/simulation"
	"legend-of-kiro/logging/sinks"
)

func TestCommandBufferWraparound(t *testing.T) {
	buffer := NewCommandBuffer(3, nil)
	cmds := []Command{
		{Type: CommandKey, Key: KeyUp},
		{Type: CommandKey, Key: KeyDown},
		{Type: CommandPress, Key: KeyAttack},
	}
	for _, cmd := range cmds {
		if !buffer.Push(cmd) {
			t.Fatalf("expected push to succeed for %+v", cmd)
		}
	}
	if buffer.Push(Command{Type: CommandRestart}) {
		t.Fatalf("expected push to fail when buffer full")
	}
	drained := buffer.Drain()
	if len(drained) != len(cmds) {
		t.Fatalf("got %d commands, want %d", len(drained), len(cmds))
	}
	for i, cmd := range drained {
		if cmd != cmds[i] {
			t.Fatalf("drain order: got %+v, want %+v", cmd, cmds[i])
		}
	}
	buffer.Push(Command{Type: CommandKey, Key: KeyLeft})
	buffer.Push(Command{Type: CommandKey, Key: KeyRight})
	wrapped := buffer.Drain()
	if len(wrapped) != 2 || wrapped[0].Key != KeyLeft || wrapped[1].Key != KeyRight {
		t.Fatalf("unexpected order after wraparound: %+v", wrapped)
	}
	if buffer.Len() != 0 {
		t.Fatalf("len after drain: got %d, want 0", buffer.Len())
	}
}

func TestCommandBufferCoalescesRepeatedKeys(t *testing.T) {
	buffer := NewCommandBuffer(2, nil)
	held := Command{Type: CommandKey, Key: KeyUp, Held: true}
	for i := 0; i < 5; i++ {
		if !buffer.Push(held) {
			t.Fatalf("repeat %d rejected", i)
		}
	}
	if got := buffer.Len(); got != 1 {
		t.Fatalf("staged after repeats: got %d want 1", got)
	}
	if !buffer.Push(Command{Type: CommandKey, Key: KeyUp, Held: false}) {
		t.Fatalf("release rejected")
	}
	if !buffer.Push(Command{Type: CommandKey, Key: KeyUp, Held: false}) {
		t.Fatalf("repeated release should coalesce even when full")
	}
	if buffer.Push(Command{Type: CommandKey, Key: KeyUp, Held: true}) {
		t.Fatalf("expected a fresh press to be rejected when full")
	}
	drained := buffer.Drain()
	if len(drained) != 2 || !drained[0].Held || drained[1].Held {
		t.Fatalf("drained: got %+v", drained)
	}
}

func TestNilCommandBuffer(t *testing.T) {
	var buffer *CommandBuffer
	if buffer.Push(Command{}) || buffer.Drain() != nil || buffer.Len() != 0 || buffer.Capacity() != 0 {
		t.Fatalf("nil buffer should reject everything")
	}
}

func newTestLoop(t *testing.T, capacity int, hooks LoopHooks) (*Loop, *Session, *sinks.Memory) {
	t.Helper()
	events := sinks.NewMemory()
	cfg := DefaultConfig()
	s := New(cfg, Deps{Publisher: events, RNG: world.DeterministicFactory("seed-7")})
	return NewLoop(s, LoopConfig{CommandCapacity: capacity}, hooks), s, events
}

func TestLoopAdvanceAppliesCommandsBeforeTick(t *testing.T) {
	loop, s, _ := newTestLoop(t, 8, LoopHooks{})
	loop.Enqueue(Command{Type: CommandPress, Key: KeyUp})
	loop.Enqueue(Command{Type: CommandKey, Key: KeyUp, Held: true})

	result := loop.Advance(time.Unix(0, 0))
	if result.Phase != PhaseRunning {
		t.Fatalf("phase: got %s, want %s", result.Phase, PhaseRunning)
	}
	if result.Tick != 1 || s.TickCount() != 1 {
		t.Fatalf("tick: got %d, want 1", result.Tick)
	}
	if len(result.Commands) != 2 {
		t.Fatalf("commands: got %d, want 2", len(result.Commands))
	}
	if result.Snapshot.Player.Pos.Y >= world.PlayerSpawn.Y {
		t.Fatalf("held up key did not move player: %+v", result.Snapshot.Player.Pos)
	}
	for _, cmd := range result.Commands {
		if cmd.IssuedAt.IsZero() {
			t.Fatalf("enqueue should stamp commands: %+v", cmd)
		}
	}
}

func TestLoopRejectsWhenFull(t *testing.T) {
	var dropped []string
	loop, _, events := newTestLoop(t, 1, LoopHooks{
		OnCommandDrop: func(reason string, _ Command) { dropped = append(dropped, reason) },
	})
	if ok, _ := loop.Enqueue(Command{Type: CommandRestart}); !ok {
		t.Fatalf("expected first command to be accepted")
	}
	ok, reason := loop.Enqueue(Command{Type: CommandRestart})
	if ok || reason != CommandRejectQueueFull {
		t.Fatalf("got ok=%v reason=%q, want rejection %q", ok, reason, CommandRejectQueueFull)
	}
	if len(dropped) != 1 {
		t.Fatalf("drop hook calls: got %d, want 1", len(dropped))
	}
	if got := len(events.OfType(simulation.EventCommandDropped)); got != 1 {
		t.Fatalf("command_dropped events: got %d, want 1", got)
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := make(chan LoopStepResult, 4)
	loop, _, _ := newTestLoop(t, 8, LoopHooks{
		AfterStep: func(result LoopStepResult) {
			select {
			case steps <- result:
			default:
			}
		},
	})
	loop.config.TickRate = 200

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case result := <-steps:
		if result.Budget != 5*time.Millisecond {
			t.Fatalf("budget: got %s, want 5ms", result.Budget)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("loop never stepped")
	}
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("run error: got %v, want %v", err, context.Canceled)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not stop after cancel")
	}
}

func TestLoopOverrunPublishesWarning(t *testing.T) {
	loop, _, events := newTestLoop(t, 8, LoopHooks{})
	loop.observeBudget(context.Background(), LoopStepResult{Tick: 3, Duration: 40 * time.Millisecond, Budget: 10 * time.Millisecond})
	loop.observeBudget(context.Background(), LoopStepResult{Tick: 4, Duration: 20 * time.Millisecond, Budget: 10 * time.Millisecond})

	overruns := events.OfType(simulation.EventTickBudgetOverrun)
	if len(overruns) != 2 {
		t.Fatalf("overrun events: got %d, want 2", len(overruns))
	}
	payload, ok := overruns[1].Payload.(simulation.TickBudgetOverrunPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", overruns[1].Payload)
	}
	if payload.Streak != 2 || payload.Ratio != 2 {
		t.Fatalf("payload: got %+v", payload)
	}
	loop.observeBudget(context.Background(), LoopStepResult{Duration: time.Millisecond, Budget: 10 * time.Millisecond})
	if loop.overrunStreak != 0 {
		t.Fatalf("streak not reset: %d", loop.overrunStreak)
	}
}

func TestNilLoop(t *testing.T) {
	if NewLoop(nil, LoopConfig{}, LoopHooks{}) != nil {
		t.Fatalf("expected nil loop for nil session")
	}
	var loop *Loop
	if ok, reason := loop.Enqueue(Command{}); ok || reason != CommandRejectStopped {
		t.Fatalf("nil loop accepted command")
	}
}
