// Package colorswitch adapts the Color Switch session and arena to the
// terminal: a fixed-tick Step, rendering into a core.Screen, and the
// sound and difficulty side effects.
package colorswitch

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorswitch/internal/arena"
	"github.com/vovakirdan/colorswitch/internal/audio"
	cs "github.com/vovakirdan/colorswitch/internal/colorswitch"
	"github.com/vovakirdan/colorswitch/internal/config"
	"github.com/vovakirdan/colorswitch/internal/core"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 0.5

// hudRows are reserved at the top of the screen for the score.
const hudRows = 1

// Layout describes the surface the game runs on.
type Layout struct {
	// Aspect is the width of one unit divided by its height.
	Aspect float64
	// HUD is the number of units reserved above the play area.
	HUD int
}

// TerminalLayout fits character cells with a one-row score line.
var TerminalLayout = Layout{Aspect: cellAspect, HUD: hudRows}

// PixelLayout fits square pixels with the score drawn over the play area.
var PixelLayout = Layout{Aspect: 1}

// RunRecorder is implemented by stores that keep a run history.
type RunRecorder interface {
	RecordRun(score int) error
}

// Game is one Color Switch session on a terminal screen.
type Game struct {
	cfg        config.ColorSwitchConfig
	rt         core.RuntimeConfig
	store      cs.ScoreStore
	sound      audio.Player
	logger     *log.Logger
	difficulty *config.DifficultyManager
	layout     Layout

	session *cs.Session
	arena   *arena.Arena

	paused bool
	ticks  int
}

// New creates a game. store and sound may be nil.
func New(cfg config.ColorSwitchConfig, store cs.ScoreStore, sound audio.Player) *Game {
	if sound == nil {
		sound = audio.Nop{}
	}
	return &Game{
		cfg:        cfg,
		store:      store,
		sound:      sound,
		logger:     log.New(io.Discard),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		layout:     TerminalLayout,
	}
}

// SetLayout switches the surface. It takes effect on the next Reset.
func (g *Game) SetLayout(l Layout) {
	if l.Aspect <= 0 {
		l.Aspect = 1
	}
	g.layout = l
	g.arena = nil
}

// SetLogger replaces the discard logger.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "colorswitch" }

// Title returns the display name.
func (g *Game) Title() string { return "Color Switch" }

// Reset starts a fresh session sized to the screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.paused = false
	g.ticks = 0

	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w, h := g.playArea()
	if g.arena == nil {
		g.arena = arena.New(arena.ConfigFrom(g.cfg, w, h, g.layout.Aspect), g.handleContact)
	} else {
		g.arena.Resize(w, h)
		g.arena.Reset()
	}
	g.arena.SetSpeedFactor(g.difficulty.SpeedFactor(0, 0))

	g.session = cs.NewSession(g.store, g, rand.New(rand.NewSource(seed)))
	g.session.Initialize()
	g.logger.Debug("session started", "seed", seed, "width", w, "height", h)
}

func (g *Game) playArea() (w, h float64) {
	return float64(max(1, g.rt.ScreenW)), float64(max(1, g.rt.ScreenH-g.layout.HUD))
}

// Resize re-lays out the arena without restarting the session.
func (g *Game) Resize(width, height int) {
	g.rt.ScreenW, g.rt.ScreenH = width, height
	if g.arena != nil {
		g.arena.Resize(g.playArea())
	}
}

// Step advances the session by one tick. Each tap rotates the switch once.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil || g.session.Phase() == cs.PhaseEnded {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for range in.Count(core.ActionTap) {
		g.session.RotateSwitch()
	}

	g.ticks++
	g.arena.SetSpeedFactor(g.difficulty.SpeedFactor(g.session.Score(), g.ticks))
	g.arena.Step(g.rt.DT())

	return core.StepResult{State: g.State()}
}

// End finishes the session early, persisting the score as a mismatch would.
func (g *Game) End() {
	if g.session == nil {
		return
	}
	// Store errors are logged from SessionEnded.
	_, _ = g.session.EndSession()
}

func (g *Game) handleContact(c cs.Contact) {
	outcome := g.session.HandleContact(c)
	g.logger.Debug("contact", "outcome", outcome, "switch", g.session.Switch(), "score", g.session.Score())
}

// State reports score, end of session and pause.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase() == cs.PhaseEnded,
		Paused:   g.paused,
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *cs.Session { return g.session }

// Snapshot returns the arena state for renderers.
func (g *Game) Snapshot() arena.Snapshot { return g.arena.Snapshot() }

// Presenter hooks. Rendering-side hooks go to the arena.

func (g *Game) RotateSwitch(to cs.Color)           { g.arena.RotateSwitch(to) }
func (g *Game) SpawnBall(b cs.Ball)                { g.arena.SpawnBall(b) }
func (g *Game) FadeOutBall(b cs.Ball, done func()) { g.arena.FadeOutBall(b, done) }
func (g *Game) PlayMatchSound()                    { g.sound.PlayMatch() }
func (g *Game) ScoreChanged(score int) {
	g.logger.Debug("score", "value", score)
}

// SessionEnded records the run. The shell observes State().GameOver and
// goes back to the menu.
func (g *Game) SessionEnded(r cs.Result) {
	if err := g.session.StoreErr(); err != nil {
		g.logger.Warn("could not persist scores", "err", err)
	}
	if rec, ok := g.store.(RunRecorder); ok {
		if err := rec.RecordRun(r.Score); err != nil {
			g.logger.Warn("could not record run", "err", err)
		}
	}
	g.logger.Info("session ended", "score", r.Score, "highscore", r.HighScore, "new_best", r.NewHighScore)
}

var _ cs.Presenter = (*Game)(nil)

// Paused reports whether the pause toggle is on.
func (g *Game) Paused() bool { return g.paused }

// HUDText is the centered score label.
func HUDText(score int) string {
	return fmt.Sprintf(" Score: %d ", score)
}
