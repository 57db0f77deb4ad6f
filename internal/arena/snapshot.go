package arena

import (
	"math"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

// SwitchView describes the switch for a renderer.
type SwitchView struct {
	X, Y, W, H float64
	// Turns is the rotation in quarter turns; fractional while a tween runs.
	Turns float64
}

// Quadrant is a side of the switch, counted clockwise from the side facing the ball.
type Quadrant int

const (
	QuadTop Quadrant = iota
	QuadRight
	QuadBottom
	QuadLeft
)

// ColorAt returns the color shown on quadrant q at the nearest resting angle.
// Each quarter turn brings the color on the right to the top.
func (v SwitchView) ColorAt(q Quadrant) colorswitch.Color {
	return colorFor(int(math.Round(v.Turns)) + int(q))
}

// Rest splits Turns into the last resting position and the progress
// toward the next one, in [0, 1).
func (v SwitchView) Rest() (turns int, frac float64) {
	f := math.Floor(v.Turns)
	return int(f), v.Turns - f
}

// QuadrantColor returns the color on quadrant q when the switch rests at turns.
func QuadrantColor(turns int, q Quadrant) colorswitch.Color {
	return colorFor(turns + int(q))
}

// Angle returns the rotation in radians, counterclockwise.
func (v SwitchView) Angle() float64 {
	return v.Turns * math.Pi / 2
}

// BallView describes the ball for a renderer.
type BallView struct {
	X, Y, W, H float64
	ID         uint64
	Color      colorswitch.Color
	Alpha      float64
	Fading     bool
}

// Snapshot is a read-only copy of the arena state.
type Snapshot struct {
	Width, Height float64
	Switch        SwitchView
	Ball          BallView
	HasBall       bool
}

// Snapshot copies the current state for rendering.
func (a *Arena) Snapshot() Snapshot {
	sw := a.world.Entry(a.sw)
	obj := Body.Get(sw).Object
	snap := Snapshot{
		Width:  a.cfg.Width,
		Height: a.cfg.Height,
		Switch: SwitchView{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H, Turns: Spin.Get(sw).Turns},
	}
	if !a.hasBall {
		return snap
	}

	entry := a.world.Entry(a.ball)
	body := Body.Get(entry)
	snap.HasBall = true
	snap.Ball = BallView{
		X: body.Object.X, Y: body.Object.Y, W: body.Object.W, H: body.Object.H,
		ID:    body.BallID,
		Color: *Tint.Get(entry),
		Alpha: 1,
	}
	if entry.HasComponent(Fade) {
		snap.Ball.Alpha = Fade.Get(entry).Alpha
		snap.Ball.Fading = true
	}
	return snap
}
