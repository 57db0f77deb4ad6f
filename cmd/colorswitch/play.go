package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colorswitch/internal/core"
	game "github.com/vovakirdan/colorswitch/internal/games/colorswitch"
	"github.com/vovakirdan/colorswitch/internal/platform/tui"
	"github.com/vovakirdan/colorswitch/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start Color Switch in the terminal, on the menu.

Controls:
  Space/Enter/Up/Click - Rotate the switch
  P                    - Pause
  Esc/B                - End the run and go back to the menu
  Tab                  - Recent runs (from the menu)
  Ctrl+S               - Save a text screenshot
  Q/Ctrl+C             - Quit

Difficulty options:
  easy   - Start at the base fall speed, speeds up with score
  normal - Start at 30% of the speed-up
  hard   - Start at 70% of the speed-up
  fixed  - No speed-up, stays at the config's initial level

Examples:
  colorswitch play
  colorswitch play --difficulty hard
  colorswitch play --seed 42 --store memory`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore(logger)
	defer store.Close()

	sound := newSound(cfg.Audio, logger)
	defer sound.Close()

	shotDir, err := storage.ExpandHome("~/.colorswitch/screenshots")
	if err != nil {
		shotDir = ""
	}

	logger.Info("starting terminal game", "width", width, "height", height, "fps", flagFPS, "seed", flagSeed)
	return tui.Run(tui.Options{
		Runtime: rt,
		Store:   store,
		NewGame: func() tui.Game {
			g := game.New(cfg, store, sound)
			g.SetLogger(logger)
			return g
		},
		Logger:        logger,
		ScreenshotDir: shotDir,
	})
}
