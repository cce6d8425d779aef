package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"legend-of-kiro/internal/telemetry"
	"legend-of-kiro/logging/simulation"
)

const (
	// DefaultTickRate matches the display refresh the game was tuned for.
	DefaultTickRate        = 60
	DefaultCommandCapacity = 64

	// CommandRejectQueueFull indicates the command ring is saturated.
	CommandRejectQueueFull = "queue_full"
	// CommandRejectStopped indicates the loop is nil or already stopped.
	CommandRejectStopped = "stopped"

	overrunMetricKey = "sim_tick_budget_overrun_total"
)

// LoopConfig tunes the command ring and the tick rate.
type LoopConfig struct {
	TickRate        int `yaml:"tickRate"`
	CommandCapacity int `yaml:"commandCapacity"`
}

func (c LoopConfig) normalized() LoopConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.CommandCapacity <= 0 {
		c.CommandCapacity = DefaultCommandCapacity
	}
	return c
}

// Budget is the wall-clock time available to one step.
func (c LoopConfig) Budget() time.Duration {
	return time.Second / time.Duration(c.normalized().TickRate)
}

// LoopHooks are invoked on the loop goroutine.
type LoopHooks struct {
	AfterStep     func(LoopStepResult)
	OnCommandDrop func(reason string, cmd Command)
}

// LoopStepResult describes one completed step.
type LoopStepResult struct {
	Tick     uint64
	Now      time.Time
	Phase    Phase
	Snapshot Snapshot
	Commands []Command
	Duration time.Duration
	Budget   time.Duration
}

// Loop stages input from any goroutine and applies it to a session at the
// start of each fixed-rate step.
type Loop struct {
	session *Session
	buffer  *CommandBuffer
	hooks   LoopHooks
	config  LoopConfig
	logger  telemetry.Logger
	metrics telemetry.Metrics

	stepMu        sync.Mutex
	overrunStreak uint64
	lastTick      atomic.Uint64
}

// NewLoop wraps session with a command ring. It returns nil for a nil session.
func NewLoop(session *Session, cfg LoopConfig, hooks LoopHooks) *Loop {
	if session == nil {
		return nil
	}
	cfg = cfg.normalized()
	return &Loop{
		session: session,
		buffer:  NewCommandBuffer(cfg.CommandCapacity, session.deps.Metrics),
		hooks:   hooks,
		config:  cfg,
		logger:  session.deps.Logger,
		metrics: session.deps.Metrics,
	}
}

func (l *Loop) Config() LoopConfig {
	if l == nil {
		return LoopConfig{}
	}
	return l.config
}

func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	return l.buffer.Len()
}

// Enqueue stages a command for the next step.
func (l *Loop) Enqueue(cmd Command) (bool, string) {
	if l == nil {
		return false, CommandRejectStopped
	}
	if cmd.IssuedAt.IsZero() {
		cmd.IssuedAt = l.session.deps.Clock.Now()
	}
	if l.buffer.Push(cmd) {
		return true, ""
	}
	l.reportDrop(CommandRejectQueueFull, cmd)
	return false, CommandRejectQueueFull
}

// Snapshot copies the session state between steps.
func (l *Loop) Snapshot() Snapshot {
	if l == nil {
		return Snapshot{}
	}
	l.stepMu.Lock()
	defer l.stepMu.Unlock()
	return l.session.Snapshot()
}

// Advance drains staged commands, applies them and runs one tick.
func (l *Loop) Advance(now time.Time) LoopStepResult {
	if l == nil {
		return LoopStepResult{}
	}
	l.stepMu.Lock()
	defer l.stepMu.Unlock()
	commands := l.buffer.Drain()
	l.session.Apply(commands)
	l.session.Tick()
	l.lastTick.Store(l.session.TickCount())
	return LoopStepResult{
		Tick:     l.session.TickCount(),
		Now:      now,
		Phase:    l.session.Phase(),
		Snapshot: l.session.Snapshot(),
		Commands: commands,
	}
}

// Run steps the session at the configured rate until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil {
		return nil
	}
	budget := l.config.Budget()
	ticker := time.NewTicker(budget)
	defer ticker.Stop()

	l.stepMu.Lock()
	l.session.ctx = ctx
	l.stepMu.Unlock()
	clock := l.session.deps.Clock

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := clock.Now()
			result := l.Advance(start)
			result.Duration = clock.Now().Sub(start)
			result.Budget = budget
			l.observeBudget(ctx, result)
			if l.hooks.AfterStep != nil {
				l.hooks.AfterStep(result)
			}
		}
	}
}

func (l *Loop) observeBudget(ctx context.Context, result LoopStepResult) {
	if result.Budget <= 0 || result.Duration <= result.Budget {
		l.overrunStreak = 0
		return
	}
	l.overrunStreak++
	l.metrics.Add(overrunMetricKey, 1)
	simulation.TickBudgetOverrun(ctx, l.session.deps.Publisher, result.Tick, simulation.TickBudgetOverrunPayload{
		DurationMillis: result.Duration.Milliseconds(),
		BudgetMillis:   result.Budget.Milliseconds(),
		Ratio:          float64(result.Duration) / float64(result.Budget),
		Streak:         l.overrunStreak,
	}, nil)
}

func (l *Loop) reportDrop(reason string, cmd Command) {
	if l.hooks.OnCommandDrop != nil {
		l.hooks.OnCommandDrop(reason, cmd)
	}
	simulation.CommandDropped(context.Background(), l.session.deps.Publisher, l.lastTick.Load(), simulation.CommandDroppedPayload{
		Command: string(cmd.Type),
		Reason:  reason,
	}, nil)
	l.logger.Printf("[backpressure] dropping command type=%s key=%s", cmd.Type, cmd.Key)
}

// Status is the lightweight summary reported by diagnostics.
type Status struct {
	Phase Phase  `json:"phase"`
	Tick  uint64 `json:"tick"`
	Score int    `json:"score"`
}

// Status reads the session summary between steps.
func (l *Loop) Status() Status {
	if l == nil {
		return Status{}
	}
	l.stepMu.Lock()
	defer l.stepMu.Unlock()
	return Status{Phase: l.session.Phase(), Tick: l.session.TickCount(), Score: l.session.Score()}
}
