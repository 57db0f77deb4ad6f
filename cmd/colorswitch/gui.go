package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorswitch/internal/platform/gui"
)

var (
	flagWidth  int
	flagHeight int
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a window",
	Long: `Open Color Switch in a desktop window.

Controls:
  Click/Touch/Space - Rotate the switch
  P                 - Pause
  Esc               - Back to the menu, or quit from the menu

Examples:
  colorswitch gui
  colorswitch gui --width 480 --height 800`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	guiCmd.Flags().IntVar(&flagWidth, "width", gui.DefaultWidth, "Window width in pixels")
	guiCmd.Flags().IntVar(&flagHeight, "height", gui.DefaultHeight, "Window height in pixels")
}

func runGUI(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	defer store.Close()

	app, err := gui.NewApp(cfg, store)
	if err != nil {
		return err
	}
	app.Width, app.Height = flagWidth, flagHeight
	app.TPS = flagFPS
	app.Seed = flagSeed
	app.Logger = logger

	sound := newSound(cfg.Audio, logger)
	defer sound.Close()
	app.Sound = sound

	logger.Info("opening window", "width", app.Width, "height", app.Height)
	return gui.Run(app)
}
