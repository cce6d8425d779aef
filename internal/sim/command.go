package sim

import "time"

// CommandType enumerates the inputs a session accepts between ticks.
type CommandType string

const (
	CommandKey     CommandType = "key"
	CommandPress   CommandType = "press"
	CommandRestart CommandType = "restart"
)

// Command is an input captured for processing at the start of the next tick.
type Command struct {
	Type     CommandType `json:"type"`
	Key      Key         `json:"key,omitempty"`
	Held     bool        `json:"held,omitempty"`
	IssuedAt time.Time   `json:"issuedAt"`
}

// Apply feeds commands to the session in order.
func (s *Session) Apply(cmds []Command) {
	for _, cmd := range cmds {
		switch cmd.Type {
		case CommandKey:
			s.SetKey(cmd.Key, cmd.Held)
		case CommandPress:
			s.Press(cmd.Key)
		case CommandRestart:
			s.Restart()
		default:
			s.deps.Logger.Printf("ignoring unknown command type %q", cmd.Type)
		}
	}
}
