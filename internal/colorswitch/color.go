// Package colorswitch implements the game state machine of Color Switch:
// switch orientation, ball colors, score and the match/mismatch rules that
// decide what happens when a ball reaches the switch.
//
// The package has no rendering, physics or storage code. Those concerns are
// reached through the Presenter and ScoreStore interfaces so the rules can be
// exercised directly in tests.
package colorswitch

import "fmt"

// Color is one of the four switch/ball colors.
// The declaration order is the cyclic rotation order of the switch.
type Color int

const (
	Red Color = iota
	Yellow
	Green
	Blue
)

// NumColors is the size of the color domain.
const NumColors = 4

// Colors lists every color in rotation order.
var Colors = [NumColors]Color{Red, Yellow, Green, Blue}

// ColorFromIndex converts an index in [0, NumColors) to a Color.
// Any other index is a programming error and panics.
func ColorFromIndex(i int) Color {
	if i < 0 || i >= NumColors {
		panic(fmt.Sprintf("colorswitch: color index %d out of range [0,%d)", i, NumColors))
	}
	return Colors[i]
}

// Next returns the color that faces the ball after one quarter turn.
func (c Color) Next() Color {
	return Color((int(c) + 1) % NumColors)
}

// Valid reports whether c is one of the four defined colors.
func (c Color) Valid() bool {
	return c >= Red && c <= Blue
}

// String returns a human-readable color name.
func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "Unknown"
	}
}
