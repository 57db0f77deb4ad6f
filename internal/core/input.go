package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionTap            // Space, Enter, Up, mouse click - rotate the switch
	ActionPause          // P - pause/unpause
	ActionBack           // B, Escape - back to menu
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionConfirm        // Enter - confirm in menus
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTap:
		return "Tap"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one simulation tick.
// Taps are counted rather than flagged: two presses between ticks rotate twice.
type InputFrame struct {
	counts map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{counts: make(map[Action]int)}
}

// Set records one occurrence of an action.
func (f *InputFrame) Set(a Action) {
	if f.counts == nil {
		f.counts = make(map[Action]int)
	}
	f.counts[a]++
}

// Has returns true if the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.counts[a] > 0
}

// Count returns how many times the action was triggered this frame.
func (f InputFrame) Count(a Action) int {
	return f.counts[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.counts)
}
