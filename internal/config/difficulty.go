package config

import "github.com/vovakirdan/colorswitch/internal/core"

// Progression types.
const (
	ProgressScore = "score"
	ProgressTime  = "time"
	ProgressNone  = "none"
)

// DifficultyManager turns score or elapsed ticks into a fall speed factor.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, start: core.ClampF(cfg.InitialLevel, 0, 1)}
}

// IsEnabled reports whether the level moves during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level is in [0, 1]. It starts at the initial level and reaches 1 at MaxAt
// points or ticks.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.start
	}

	var done int
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = score
	case ProgressTime:
		done = ticks
	default:
		return d.start
	}

	progress := core.ClampF(float64(done)/float64(max(1, d.cfg.Progression.MaxAt)), 0, 1)
	return d.start + progress*(1-d.start)
}

// SpeedFactor returns the multiplier applied to gravity and max fall speed.
// It grows from 1 at level 0 to 1+speed_multiplier at level 1.
func (d *DifficultyManager) SpeedFactor(score, ticks int) float64 {
	return 1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
}
