package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // basicfont is a font.Face
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

var face font.Face = basicfont.Face7x13

// ScoreReader is the part of the store the menu shows.
type ScoreReader interface {
	HighScore() (int, error)
	RecentScore() (int, error)
}

// MenuScene shows the title and the persisted score fields.
type MenuScene struct {
	app *App

	high   int
	recent int
	failed bool
}

// NewMenuScene creates the menu. Scores are read on enter.
func NewMenuScene(app *App) *MenuScene {
	return &MenuScene{app: app}
}

// OnEnter re-reads the scores.
func (m *MenuScene) OnEnter() {
	m.high, m.recent, m.failed = 0, 0, false
	if m.app.Store == nil {
		return
	}
	var err error
	if m.high, err = m.app.Store.HighScore(); err != nil {
		m.failed = true
		m.app.logger().Warn("could not read highscore", "err", err)
	}
	if m.recent, err = m.app.Store.RecentScore(); err != nil {
		m.failed = true
		m.app.logger().Warn("could not read recent score", "err", err)
	}
}

// OnExit does nothing.
func (m *MenuScene) OnExit() {}

// Scores returns what the menu displays.
func (m *MenuScene) Scores() (high, recent int) { return m.high, m.recent }

// Update starts a game on any tap and quits on Escape.
func (m *MenuScene) Update(float64) (Scene, error) {
	if m.app.Input.Pressed(ebiten.KeyEscape) || m.app.Input.Pressed(ebiten.KeyQ) {
		return nil, ebiten.Termination
	}
	if m.app.Input.Taps() > 0 {
		return NewPlayScene(m.app), nil
	}
	return nil, nil
}

// Draw renders the title, scores and hint.
func (m *MenuScene) Draw(screen *ebiten.Image) {
	p := m.app.Palette
	screen.Fill(p.Background)
	w, h := m.app.Width, m.app.Height

	drawTitle(screen, "COLOR SWITCH", w/2, h/3, p)

	// Four swatches under the title.
	size := float32(w) / 16
	x := float32(w)/2 - 2*size
	for c := range colorswitch.NumColors {
		vector.DrawFilledRect(screen, x+float32(c)*size, float32(h/3+16), size-2, size/3, p.Colors[c], false)
	}

	drawCentered(screen, fmt.Sprintf("Highscore   %d", m.high), w/2, h/2, p.Text)
	drawCentered(screen, fmt.Sprintf("RecentScore %d", m.recent), w/2, h/2+20, p.Text)
	if m.failed {
		drawCentered(screen, "scores unavailable", w/2, h/2+44, p.Colors[colorswitch.Red])
	}
	drawCentered(screen, "Click, tap or Space to play   Esc: quit", w/2, h-24, p.Dim)
}

func drawTitle(dst *ebiten.Image, title string, cx, y int, p Palette) {
	x := cx - text.BoundString(face, title).Dx()/2
	i := 0
	for _, r := range title {
		s := string(r)
		if r != ' ' {
			text.Draw(dst, s, face, x, y, p.Colors[i%colorswitch.NumColors])
			i++
		}
		x += font.MeasureString(face, s).Round()
	}
}

func drawCentered(dst *ebiten.Image, s string, cx, y int, clr color.Color) {
	text.Draw(dst, s, face, cx-text.BoundString(face, s).Dx()/2, y, clr)
}
