package colorswitch

import (
	"math"

	"github.com/vovakirdan/colorswitch/internal/arena"
	cs "github.com/vovakirdan/colorswitch/internal/colorswitch"
	"github.com/vovakirdan/colorswitch/internal/core"
)

// Visual characters for rendering
const (
	SwitchChar    = '█'
	BallChar      = '●'
	BallFadedChar = '○'
)

// cellColors maps game colors to terminal colors.
var cellColors = [cs.NumColors]core.Color{
	cs.Red:    core.ColorRed,
	cs.Yellow: core.ColorYellow,
	cs.Green:  core.ColorGreen,
	cs.Blue:   core.ColorBlue,
}

// CellColor returns the terminal color for c.
func CellColor(c cs.Color) core.Color {
	if !c.Valid() {
		return core.ColorDefault
	}
	return cellColors[c]
}

// Render draws the arena and the score label.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.arena == nil {
		return
	}

	snap := g.arena.Snapshot()
	drawSwitch(dst, snap.Switch, g.layout.HUD)
	if snap.HasBall {
		drawBall(dst, snap.Ball, g.layout.HUD)
	}

	dst.DrawTextCentered(0, HUDText(g.session.Score()), core.ColorBrightWhite)
	if g.paused {
		drawPaused(dst)
	}
}

const pausedText = "PAUSED - press P to resume"

// drawPaused boxes the pause message in the middle of the screen.
func drawPaused(dst *core.Screen) {
	w := len(pausedText) + 4
	box := core.NewRect((dst.Width()-w)/2, dst.Height()/2-1, w, 3)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, pausedText, core.ColorBrightWhite)
}

// drawSwitch splits the switch box into four triangles along its diagonals.
func drawSwitch(dst *core.Screen, v arena.SwitchView, top int) {
	r := core.Around(v.X, v.Y, v.W, v.H)
	cx := v.X + v.W/2
	cy := v.Y + v.H/2

	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			nx := (float64(x) + 0.5 - cx) / (v.W / 2)
			ny := (float64(y) + 0.5 - cy) / (v.H / 2)
			dst.SetColored(x, y+top, SwitchChar, CellColor(v.ColorAt(quadrantOf(nx, ny))))
		}
	}
}

// quadrantOf picks the switch side for a point in normalized box coordinates.
func quadrantOf(nx, ny float64) arena.Quadrant {
	if math.Abs(ny) >= math.Abs(nx) {
		if ny < 0 {
			return arena.QuadTop
		}
		return arena.QuadBottom
	}
	if nx > 0 {
		return arena.QuadRight
	}
	return arena.QuadLeft
}

func drawBall(dst *core.Screen, b arena.BallView, top int) {
	ch := BallChar
	if b.Fading && b.Alpha < 0.5 {
		ch = BallFadedChar
	}
	r := core.Around(b.X, b.Y, b.W, b.H).Offset(0, top)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, ch, CellColor(b.Color))
		}
	}
}
