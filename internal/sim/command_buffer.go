package sim

import (
	"sync"

	"legend-of-kiro/internal/telemetry"
)

const (
	commandBufferOccupancyMetricKey = "sim_command_buffer_occupancy"
	commandBufferOverflowMetricKey  = "sim_command_buffer_overflow_total"
	commandBufferCoalescedMetricKey = "sim_command_buffer_coalesced_total"
)

// CommandBuffer stages input between ticks in a fixed-size ring. Producers
// may push concurrently; one consumer drains.
//
// Key auto-repeat produces runs of identical held-state commands. A key
// command equal to the most recently staged one is folded into it rather
// than taking a slot.
type CommandBuffer struct {
	mu      sync.Mutex
	ring    []Command
	start   int
	size    int
	metrics telemetry.Metrics
}

// NewCommandBuffer allocates a ring of the given capacity (at least one
// slot). A nil metrics sink disables reporting.
func NewCommandBuffer(capacity int, metrics telemetry.Metrics) *CommandBuffer {
	return &CommandBuffer{
		ring:    make([]Command, max(capacity, 1)),
		metrics: metrics,
	}
}

func (b *CommandBuffer) Capacity() int {
	if b == nil {
		return 0
	}
	return len(b.ring)
}

// Push stages cmd and reports false when the ring is full.
func (b *CommandBuffer) Push(cmd Command) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size > 0 && cmd.Type == CommandKey {
		last := &b.ring[b.slot(b.size-1)]
		if last.Type == CommandKey && last.Key == cmd.Key && last.Held == cmd.Held {
			b.count(commandBufferCoalescedMetricKey)
			return true
		}
	}
	if b.size == len(b.ring) {
		b.count(commandBufferOverflowMetricKey)
		return false
	}
	b.ring[b.slot(b.size)] = cmd
	b.size++
	b.reportOccupancy()
	return true
}

// Drain hands back the staged commands oldest first and empties the ring.
func (b *CommandBuffer) Drain() []Command {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.size == 0 {
		return nil
	}
	out := make([]Command, b.size)
	for i := range out {
		idx := b.slot(i)
		out[i] = b.ring[idx]
		b.ring[idx] = Command{}
	}
	b.start = b.slot(b.size)
	b.size = 0
	b.reportOccupancy()
	return out
}

func (b *CommandBuffer) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

func (b *CommandBuffer) slot(offset int) int {
	return (b.start + offset) % len(b.ring)
}

func (b *CommandBuffer) count(key string) {
	if b.metrics != nil {
		b.metrics.Add(key, 1)
	}
}

func (b *CommandBuffer) reportOccupancy() {
	if b.metrics != nil {
		b.metrics.Store(commandBufferOccupancyMetricKey, uint64(b.size))
	}
}
