package tui

import "github.com/vovakirdan/colorswitch/internal/core"

// Game is what the shell drives: pure logic, no Bubble Tea.
type Game interface {
	// Reset starts a new session sized to the screen.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns score, end of session and pause.
	State() core.GameState
}

// Resizer is implemented by games that can re-lay out without restarting.
type Resizer interface {
	Resize(width, height int)
}

// Ender is implemented by games that can end their session early.
type Ender interface {
	End()
}

// GameFactory creates a fresh game for each trip from the menu.
type GameFactory func() Game
