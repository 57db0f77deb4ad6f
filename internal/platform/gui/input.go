package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is polled once per update.
type Input interface {
	// Taps counts activations since the last update.
	Taps() int
	// Pressed reports a just-pressed key.
	Pressed(k ebiten.Key) bool
}

// ebitenInput reads the real keyboard, mouse and touch screen.
type ebitenInput struct {
	touches []ebiten.TouchID
}

// NewInput returns the window's input source.
func NewInput() Input { return &ebitenInput{} }

func (in *ebitenInput) Taps() int {
	n := 0
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		n++
	}
	for _, k := range []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyArrowUp, ebiten.KeyW} {
		if inpututil.IsKeyJustPressed(k) {
			n++
		}
	}
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	return n + len(in.touches)
}

func (in *ebitenInput) Pressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}
