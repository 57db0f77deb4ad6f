package gui

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/colorswitch/internal/arena"
	"github.com/vovakirdan/colorswitch/internal/core"
	game "github.com/vovakirdan/colorswitch/internal/games/colorswitch"
)

// PlayScene runs one session in the window.
type PlayScene struct {
	app  *App
	game *game.Game
}

// NewPlayScene creates a play scene. The session starts on enter.
func NewPlayScene(app *App) *PlayScene {
	g := game.New(app.Config, app.Store, app.Sound)
	g.SetLogger(app.logger())
	g.SetLayout(game.PixelLayout)
	return &PlayScene{app: app, game: g}
}

// Game exposes the underlying game.
func (s *PlayScene) Game() *game.Game { return s.game }

// OnEnter starts a fresh session.
func (s *PlayScene) OnEnter() {
	s.game.Reset(core.RuntimeConfig{
		ScreenW:  s.app.Width,
		ScreenH:  s.app.Height,
		TickRate: s.app.TPS,
		Seed:     s.app.nextSeed(),
	})
}

// OnExit ends a session left early so its score is kept.
func (s *PlayScene) OnExit() {
	s.game.End()
}

// Update feeds taps to the game and returns to the menu when it ends.
func (s *PlayScene) Update(float64) (Scene, error) {
	in := s.app.Input
	if in.Pressed(ebiten.KeyEscape) {
		return NewMenuScene(s.app), nil
	}

	frame := core.NewInputFrame()
	for range in.Taps() {
		frame.Set(core.ActionTap)
	}
	if in.Pressed(ebiten.KeyP) {
		frame.Set(core.ActionPause)
	}

	if res := s.game.Step(frame); res.State.GameOver {
		return NewMenuScene(s.app), nil
	}
	return nil, nil
}

// Draw renders the switch, the ball and the score.
func (s *PlayScene) Draw(screen *ebiten.Image) {
	p := s.app.Palette
	screen.Fill(p.Background)

	snap := s.game.Snapshot()
	drawSwitch(screen, snap.Switch, p)
	if snap.HasBall {
		b := snap.Ball
		clr := WithAlpha(p.Of(b.Color), b.Alpha)
		vector.DrawFilledCircle(screen, float32(b.X+b.W/2), float32(b.Y+b.H/2), float32(b.W/2), clr, true)
	}

	st := s.game.State()
	drawCentered(screen, game.HUDText(st.Score), s.app.Width/2, 24, p.Text)
	if st.Paused {
		drawCentered(screen, "PAUSED - press P to resume", s.app.Width/2, s.app.Height/2, p.Text)
	}
}

var whitePixel = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
})

// drawSwitch fills the four triangles between the box diagonals, rotated
// counterclockwise by the progress of the running quarter turn.
func drawSwitch(dst *ebiten.Image, v arena.SwitchView, p Palette) {
	turns, frac := v.Rest()
	cx, cy := v.X+v.W/2, v.Y+v.H/2
	hw, hh := v.W/2, v.H/2
	theta := frac * math.Pi / 2
	sin, cos := math.Sincos(theta)

	// Corners clockwise from top-left, relative to the center.
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	quads := [4]arena.Quadrant{arena.QuadTop, arena.QuadRight, arena.QuadBottom, arena.QuadLeft}

	vs := make([]ebiten.Vertex, 0, 12)
	is := make([]uint16, 0, 12)
	for i, q := range quads {
		clr := p.Of(arena.QuadrantColor(turns, q))
		a, b := corners[i], corners[(i+1)%4]
		base := uint16(len(vs))
		for _, pt := range [3][2]float64{{0, 0}, a, b} {
			x := pt[0]*cos + pt[1]*sin
			y := -pt[0]*sin + pt[1]*cos
			vs = append(vs, vertex(cx+x, cy+y, clr))
		}
		is = append(is, base, base+1, base+2)
	}
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func vertex(x, y float64, c color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 1.5, SrcY: 1.5,
		ColorR: float32(c.R) / 0xff,
		ColorG: float32(c.G) / 0xff,
		ColorB: float32(c.B) / 0xff,
		ColorA: float32(c.A) / 0xff,
	}
}
