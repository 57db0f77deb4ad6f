package config

import (
	_ "embed"
)

//go:embed defaults/colorswitch.yaml
var defaultColorSwitchYAML []byte

// DefaultColorSwitchConfig returns the hard-coded configuration.
// It mirrors defaults/colorswitch.yaml and is used if the embedded file cannot be parsed.
func DefaultColorSwitchConfig() ColorSwitchConfig {
	return ColorSwitchConfig{
		Physics: PhysicsConfig{
			Gravity:      0.35,
			MaxFallSpeed: 0.55,
		},
		Layout: LayoutConfig{
			SwitchSize:   0.333,
			BallSize:     0.06,
			SwitchOffset: 1.0,
		},
		Animation: AnimationConfig{
			RotateDuration: 0.25,
			FadeDuration:   0.25,
		},
		Palette: PaletteConfig{
			Red:        "#e74c3c",
			Yellow:     "#f1c40f",
			Green:      "#2ecc71",
			Blue:       "#3498db",
			Background: "#2c3e50",
		},
		Audio: AudioConfig{
			Enabled:   true,
			Volume:    0.6,
			Frequency: 1318.51,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressScore,
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultColorSwitchYAML
}
