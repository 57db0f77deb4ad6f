package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/colorswitch/internal/audio"
	"github.com/vovakirdan/colorswitch/internal/colorswitch"
	"github.com/vovakirdan/colorswitch/internal/config"
)

// Default window size in logical pixels.
const (
	DefaultWidth  = 360
	DefaultHeight = 640
)

// App is shared by the scenes.
type App struct {
	Width, Height int
	TPS           int
	Seed          int64 // 0 picks a time-based seed per game

	Config  config.ColorSwitchConfig
	Palette Palette
	Store   colorswitch.ScoreStore // may be nil
	Sound   audio.Player
	Input   Input
	Logger  *log.Logger

	games int
}

// NewApp fills in defaults and parses the palette.
func NewApp(cfg config.ColorSwitchConfig, store colorswitch.ScoreStore) (*App, error) {
	p, err := ParsePalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	return &App{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		TPS:     ebiten.DefaultTPS,
		Config:  cfg,
		Palette: p,
		Store:   store,
		Sound:   audio.Nop{},
		Input:   NewInput(),
	}, nil
}

func (a *App) logger() *log.Logger {
	if a.Logger == nil {
		a.Logger = log.New(io.Discard)
	}
	return a.Logger
}

// nextSeed offsets a fixed seed by the number of games played.
func (a *App) nextSeed() int64 {
	seed := a.Seed
	if seed != 0 {
		seed += int64(a.games)
	}
	a.games++
	return seed
}

// Run opens the window on the menu and blocks until it closes.
func Run(app *App) error {
	ebiten.SetWindowSize(app.Width, app.Height)
	ebiten.SetWindowTitle("Color Switch")
	ebiten.SetTPS(app.TPS)

	runner := NewRunner(NewMenuScene(app), app.Width, app.Height, app.TPS)
	if err := ebiten.RunGame(runner); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
