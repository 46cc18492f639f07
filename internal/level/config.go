package level

import (
	"fmt"

	"lander/internal/curve"
)

type Config struct {
	TileSize    float32  `yaml:"tile_size" json:"tileSize"`
	SpawnHeight float32  `yaml:"spawn_height" json:"spawnHeight"`
	Levels      []Layout `yaml:"levels" json:"levels"`

	Sequence SequenceConfig `yaml:"sequence" json:"sequence"`
}

// SequenceConfig times the transitions between levels.
type SequenceConfig struct {
	SweepDuration float32     `yaml:"sweep_duration" json:"sweepDuration"`
	FadeDuration  float32     `yaml:"fade_duration" json:"fadeDuration"`
	Sweep         curve.Curve `yaml:"sweep" json:"sweep"`
	Fade          curve.Curve `yaml:"fade" json:"fade"`
}

func DefaultConfig() Config {
	return Config{
		TileSize:    1,
		SpawnHeight: 0.6,
		Levels:      DefaultLayouts(),
		Sequence: SequenceConfig{
			SweepDuration: 0.75,
			FadeDuration:  1.5,
			Sweep:         curve.Ease("cubic_in_out"),
			Fade:          curve.Ease("sine_in"),
		},
	}
}

func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %v", c.TileSize)
	}
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}
	for _, l := range c.Levels {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	s := c.Sequence
	if s.SweepDuration < 0 || s.FadeDuration < 0 {
		return fmt.Errorf("sequence durations must not be negative")
	}
	if err := s.Sweep.Validate(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if err := s.Fade.Validate(); err != nil {
		return fmt.Errorf("fade: %w", err)
	}
	return nil
}
