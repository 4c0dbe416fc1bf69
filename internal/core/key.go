package core

import "strings"

// Key is one of the four directional keys the engine understands.
// Hosts translate their own key events (terminal, browser) into Keys.
type Key int

const (
	KeyNone Key = iota
	KeyUp       // jump towards the top row
	KeyDown     // fall towards the bottom row
	KeyLeft
	KeyRight
)

// NumKeys is the number of distinct Key values, KeyNone included.
const NumKeys = int(KeyRight) + 1

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "none"
	}
}

// Vertical reports whether the key drives vertical motion.
func (k Key) Vertical() bool {
	return k == KeyUp || k == KeyDown
}

// ParseKey maps a key name to a Key. Accepts the names produced by String
// as well as browser-style "ArrowUp" names. Unknown names yield KeyNone.
func ParseKey(name string) Key {
	switch strings.ToLower(strings.TrimPrefix(name, "Arrow")) {
	case "up", "w":
		return KeyUp
	case "down", "s":
		return KeyDown
	case "left", "a":
		return KeyLeft
	case "right", "d":
		return KeyRight
	default:
		return KeyNone
	}
}
