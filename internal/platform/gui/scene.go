// Package gui is the ebiten window for Color Switch: a menu scene that reads
// the persisted scores and a play scene that drives the same session and arena
// as the terminal shell.
package gui

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the window.
//
// The runner delegates Update and Draw to the current scene. Returning a
// non-nil next scene from Update switches to it.
type Scene interface {
	// Update advances the scene by dt seconds.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced.
	OnExit()
}

// Runner implements ebiten.Game and handles scene transitions.
type Runner struct {
	current Scene
	width   int
	height  int
	dt      float64
}

// NewRunner starts on initial and calls its OnEnter.
func NewRunner(initial Scene, width, height, tps int) *Runner {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	r := &Runner{
		current: initial,
		width:   width,
		height:  height,
		dt:      1.0 / float64(tps),
	}
	r.current.OnEnter()
	return r
}

// Current returns the active scene.
func (r *Runner) Current() Scene { return r.current }

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	next, err := r.current.Update(r.dt)
	if err != nil {
		return err
	}
	if next != nil {
		r.current.OnExit()
		r.current = next
		r.current.OnEnter()
	}
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.current.Draw(screen)
}

// Layout implements ebiten.Game with a fixed logical size.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.width, r.height
}
