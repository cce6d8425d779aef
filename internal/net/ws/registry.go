package ws

import (
	"sort"
	"sync"
	"time"

	"legend-of-kiro/internal/sim"
)

// SessionInfo is the diagnostics view of one connected session.
type SessionInfo struct {
	ID          string `json:"id"`
	Codec       string `json:"codec"`
	ConnectedAt int64  `json:"connectedAt"`
	sim.Status
}

type registryEntry struct {
	loop        *sim.Loop
	codec       string
	connectedAt time.Time
}

// Registry tracks live sessions so diagnostics can list them.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]registryEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]registryEntry)}
}

func (r *Registry) add(id, codec string, loop *sim.Loop, now time.Time) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sessions[id] = registryEntry{loop: loop, codec: codec, connectedAt: now}
	r.mu.Unlock()
}

func (r *Registry) remove(id string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Snapshot lists live sessions ordered by id.
func (r *Registry) Snapshot() []SessionInfo {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	entries := make(map[string]registryEntry, len(r.sessions))
	for id, entry := range r.sessions {
		entries[id] = entry
	}
	r.mu.Unlock()

	out := make([]SessionInfo, 0, len(entries))
	for id, entry := range entries {
		out = append(out, SessionInfo{
			ID:          id,
			Codec:       entry.codec,
			ConnectedAt: entry.connectedAt.UnixMilli(),
			Status:      entry.loop.Status(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
