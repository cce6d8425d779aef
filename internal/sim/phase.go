package sim

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseLost       Phase = "lost"
	PhaseWon        Phase = "won"
)

// Terminal reports whether only a restart can leave p.
func (p Phase) Terminal() bool {
	return p == PhaseLost || p == PhaseWon
}
