package sim

import "legend-of-kiro/internal/state"

// Key is a logical input key.
type Key string

const (
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyAttack Key = "attack"
)

var knownKeys = map[Key]struct{}{
	KeyUp: {}, KeyDown: {}, KeyLeft: {}, KeyRight: {}, KeyAttack: {},
}

// ParseKey validates a key name.
func ParseKey(name string) (Key, bool) {
	k := Key(name)
	_, ok := knownKeys[k]
	return k, ok
}

type keyState map[Key]bool

func (k keyState) input() state.Input {
	return state.Input{Up: k[KeyUp], Down: k[KeyDown], Left: k[KeyLeft], Right: k[KeyRight]}
}
