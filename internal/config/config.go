// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// ColorSwitchConfig contains all tunable parameters of the game.
type ColorSwitchConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Layout     LayoutConfig     `yaml:"layout"`
	Animation  AnimationConfig  `yaml:"animation"`
	Palette    PaletteConfig    `yaml:"palette"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the ball's fall. Units are play-area heights.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// LayoutConfig sizes the switch and ball relative to the play area.
type LayoutConfig struct {
	SwitchSize   float64 `yaml:"switch_size"`
	BallSize     float64 `yaml:"ball_size"`
	SwitchOffset float64 `yaml:"switch_offset"`
}

// AnimationConfig holds the durations of the visual effects, in seconds.
type AnimationConfig struct {
	RotateDuration float64 `yaml:"rotate_duration"`
	FadeDuration   float64 `yaml:"fade_duration"`
}

// PaletteConfig holds hex colors for the graphical shell.
type PaletteConfig struct {
	Red        string `yaml:"red"`
	Yellow     string `yaml:"yellow"`
	Green      string `yaml:"green"`
	Blue       string `yaml:"blue"`
	Background string `yaml:"background"`
}

// AudioConfig controls the match sound.
type AudioConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Volume    float64 `yaml:"volume"`
	Frequency float64 `yaml:"frequency"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to fall speed multiplier at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "keep the config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ColorSwitchConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Validate reports the first out-of-range value.
func (c ColorSwitchConfig) Validate() error {
	var errs []error
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity))
	}
	if c.Physics.MaxFallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_fall_speed must be positive, got %v", c.Physics.MaxFallSpeed))
	}
	if c.Layout.SwitchSize <= 0 || c.Layout.SwitchSize > 1 {
		errs = append(errs, fmt.Errorf("layout.switch_size must be in (0, 1], got %v", c.Layout.SwitchSize))
	}
	if c.Layout.BallSize <= 0 || c.Layout.BallSize >= c.Layout.SwitchSize {
		errs = append(errs, fmt.Errorf("layout.ball_size must be positive and smaller than the switch, got %v", c.Layout.BallSize))
	}
	if c.Animation.RotateDuration < 0 || c.Animation.FadeDuration < 0 {
		errs = append(errs, errors.New("animation durations must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
