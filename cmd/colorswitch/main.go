// colorswitch is the Color Switch arcade game for the terminal and a desktop window.
//
// Usage:
//
//	colorswitch                 - Play in the terminal (same as "play")
//	colorswitch play            - Play in the terminal
//	colorswitch gui             - Play in a window
//	colorswitch scores          - Show Highscore, RecentScore and recent runs
//	colorswitch reset-scores    - Clear the saved scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible ball colors
//	--db <path>           - Set database path (default: ~/.colorswitch/scores.db)
//	--store <kind>        - Score backend: sqlite, gdata or memory
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--mute                - Disable the match sound
//	--log-file <path>     - Write logs to a file
//	--debug               - Log debug messages
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorswitch/internal/audio"
	"github.com/vovakirdan/colorswitch/internal/config"
	"github.com/vovakirdan/colorswitch/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colorswitch",
	Short: "Color Switch - match the falling ball to the switch",
	Long: `Color Switch is a one-button arcade game. A colored ball falls onto a
four-colored switch; tap to rotate the switch so the color facing the ball
matches it. Every match scores a point, the first mismatch ends the run.

Available commands:
  play          - Play in the terminal (default)
  gui           - Play in a window
  scores        - Show saved scores and recent runs
  reset-scores  - Clear saved scores

Examples:
  colorswitch
  colorswitch --difficulty hard
  colorswitch gui --mute
  colorswitch scores --limit 20`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.colorswitch/scores.db", "Path to scores database")
	pf.StringVar(&flagStore, "store", string(storage.KindSQLite), "Score backend: sqlite, gdata, memory")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagMute, "mute", false, "Disable the match sound")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
}

// newLogger writes to --log-file when set, otherwise to fallback.
// The returned closer must be called on exit.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closer := fallback, func() {}
	if flagLogFile != "" {
		path, err := storage.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w, closer = f, func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "colorswitch",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// loadConfig reads the YAML config and applies --difficulty.
func loadConfig() (config.ColorSwitchConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// openStore opens the selected backend. Play continues without persistence
// when it fails.
func openStore(logger *log.Logger) storage.Backend {
	store, err := storage.OpenBackend(storage.Kind(flagStore), flagDBPath)
	if err != nil {
		logger.Warn("could not open scores, playing without saving", "store", flagStore, "err", err)
		return storage.NewMemoryStore()
	}
	logger.Debug("scores opened", "store", flagStore, "db", flagDBPath)
	return store
}

// newSound opens the speaker unless muted or disabled in config.
func newSound(cfg config.AudioConfig, logger *log.Logger) audio.Player {
	if flagMute || !cfg.Enabled {
		return audio.Nop{}
	}
	sp, err := audio.NewSpeaker(cfg.Frequency, cfg.Volume, logger)
	if err != nil {
		logger.Warn("audio unavailable", "err", err)
		return audio.Nop{}
	}
	return sp
}
