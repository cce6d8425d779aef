// Package terminal runs a session in a tcell screen.
package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"legend-of-kiro/internal/render"
	"legend-of-kiro/internal/sim"
)

// DefaultHoldWindow keeps a direction held after its last key event.
// Terminals report presses and autorepeat but never releases.
const DefaultHoldWindow = 180 * time.Millisecond

type Config struct {
	TickRate   int
	HoldWindow time.Duration
}

func (c Config) normalized() Config {
	if c.TickRate <= 0 {
		c.TickRate = sim.DefaultTickRate
	}
	if c.HoldWindow <= 0 {
		c.HoldWindow = DefaultHoldWindow
	}
	return c
}

// Frontend feeds terminal key events into a session loop and paints each
// step.
type Frontend struct {
	screen tcell.Screen
	cfg    Config
	loop   *sim.Loop
	hud    *render.HUDTracker
	holds  map[sim.Key]time.Time
	phase  sim.Phase
}

// New builds the session with HUD hooks installed in front of deps.Hooks.
// The caller owns screen initialisation and Fini.
func New(screen tcell.Screen, cfg Config, simCfg sim.Config, deps sim.Deps) *Frontend {
	cfg = cfg.normalized()
	tracker := render.NewHUDTracker()
	deps.Hooks = tracker.Hooks(deps.Hooks)
	session := sim.New(simCfg, deps)
	return &Frontend{
		screen: screen,
		cfg:    cfg,
		loop:   sim.NewLoop(session, sim.LoopConfig{TickRate: cfg.TickRate}, sim.LoopHooks{}),
		hud:    tracker,
		holds:  make(map[sim.Key]time.Time),
		phase:  session.Phase(),
	}
}

// Run polls input and steps the session until ctx is cancelled or the
// player quits.
func (f *Frontend) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go f.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Second / time.Duration(f.cfg.TickRate))
	defer ticker.Stop()

	f.paint(f.loop.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !f.handleKey(ev, time.Now()) {
					return nil
				}
			case *tcell.EventResize:
				f.screen.Sync()
			}
		case now := <-ticker.C:
			f.releaseExpired(now)
			result := f.loop.Advance(now)
			f.phase = result.Phase
			f.paint(result.Snapshot)
		}
	}
}

func (f *Frontend) paint(snap sim.Snapshot) {
	Paint(f.screen, render.Compose(snap, f.hud.HUD()))
	f.screen.Show()
}

// handleKey stages the commands for one key event. It returns false when
// the player asked to quit.
func (f *Frontend) handleKey(ev *tcell.EventKey, now time.Time) bool {
	action := translate(ev)
	switch action.kind {
	case actionQuit:
		return false
	case actionRestart:
		if f.phase.Terminal() {
			f.releaseAll(now)
			f.loop.Enqueue(sim.Command{Type: sim.CommandRestart, IssuedAt: now})
			return true
		}
		f.startOnAnyKey(now)
	case actionHold:
		if _, held := f.holds[action.key]; !held {
			f.loop.Enqueue(sim.Command{Type: sim.CommandKey, Key: action.key, Held: true, IssuedAt: now})
		}
		f.holds[action.key] = now.Add(f.cfg.HoldWindow)
	case actionPress:
		f.loop.Enqueue(sim.Command{Type: sim.CommandPress, Key: action.key, IssuedAt: now})
	default:
		f.startOnAnyKey(now)
	}
	return true
}

func (f *Frontend) startOnAnyKey(now time.Time) {
	if f.phase == sim.PhaseNotStarted {
		f.loop.Enqueue(sim.Command{Type: sim.CommandPress, Key: sim.KeyAttack, IssuedAt: now})
	}
}

// releaseAll stages a release for every held direction so a restarted
// session does not inherit movement.
func (f *Frontend) releaseAll(now time.Time) {
	for key := range f.holds {
		delete(f.holds, key)
		f.loop.Enqueue(sim.Command{Type: sim.CommandKey, Key: key, Held: false, IssuedAt: now})
	}
}

// releaseExpired releases directions whose hold window has lapsed.
func (f *Frontend) releaseExpired(now time.Time) {
	for key, until := range f.holds {
		if now.Before(until) {
			continue
		}
		delete(f.holds, key)
		f.loop.Enqueue(sim.Command{Type: sim.CommandKey, Key: key, Held: false, IssuedAt: now})
	}
}

type actionKind int

const (
	actionNone actionKind = iota
	actionQuit
	actionRestart
	actionHold
	actionPress
)

type keyAction struct {
	kind actionKind
	key  sim.Key
}

func translate(ev *tcell.EventKey) keyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyAction{kind: actionQuit}
	case tcell.KeyUp:
		return keyAction{kind: actionHold, key: sim.KeyUp}
	case tcell.KeyDown:
		return keyAction{kind: actionHold, key: sim.KeyDown}
	case tcell.KeyLeft:
		return keyAction{kind: actionHold, key: sim.KeyLeft}
	case tcell.KeyRight:
		return keyAction{kind: actionHold, key: sim.KeyRight}
	case tcell.KeyEnter:
		return keyAction{kind: actionPress, key: sim.KeyAttack}
	case tcell.KeyRune:
	default:
		return keyAction{}
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return keyAction{kind: actionQuit}
	case 'r', 'R':
		return keyAction{kind: actionRestart}
	case 'w', 'k':
		return keyAction{kind: actionHold, key: sim.KeyUp}
	case 's', 'j':
		return keyAction{kind: actionHold, key: sim.KeyDown}
	case 'a', 'h':
		return keyAction{kind: actionHold, key: sim.KeyLeft}
	case 'd', 'l':
		return keyAction{kind: actionHold, key: sim.KeyRight}
	case ' ':
		return keyAction{kind: actionPress, key: sim.KeyAttack}
	default:
		return keyAction{}
	}
}
