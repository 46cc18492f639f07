// Package settings holds every tunable of the game in one tree that can be
// overlaid from a YAML or JSON file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lander/internal/camera"
	"lander/internal/components"
	"lander/internal/level"
	"lander/internal/logging"
	"lander/internal/obstacles"
	"lander/internal/physics"
	"lander/internal/player"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid settings")

type LogSettings struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
}

// SimulationSettings drive the fixed-step loop.
type SimulationSettings struct {
	FixedStep    float32 `yaml:"fixed_step" json:"fixedStep"`
	MaxSubsteps  int     `yaml:"max_substeps" json:"maxSubsteps"`
	CellSize     float32 `yaml:"cell_size" json:"cellSize"`
	PhysicsScale float32 `yaml:"physics_scale" json:"physicsScale"`
	StateScale   float32 `yaml:"state_scale" json:"stateScale"`
}

type GameSettings struct {
	Log        LogSettings           `yaml:"log" json:"log"`
	Simulation SimulationSettings    `yaml:"simulation" json:"simulation"`
	Body       components.BodyConfig `yaml:"body" json:"body"`
	Player     player.Config         `yaml:"player" json:"player"`
	Level      level.Config          `yaml:"level" json:"level"`
	Obstacles  obstacles.Config      `yaml:"obstacles" json:"obstacles"`
	Camera     camera.Config         `yaml:"camera" json:"camera"`
}

// Default returns settings that pass Validate. Loaders overlay files onto it.
func Default() GameSettings {
	return GameSettings{
		Log: LogSettings{Level: "info"},
		Simulation: SimulationSettings{
			FixedStep:    0.02,
			MaxSubsteps:  5,
			CellSize:     physics.DefaultCellSize,
			PhysicsScale: 1,
			StateScale:   1,
		},
		Body:      components.DefaultBodyConfig(),
		Player:    player.DefaultConfig(),
		Level:     level.DefaultConfig(),
		Obstacles: obstacles.DefaultConfig(),
		Camera:    camera.DefaultConfig(),
	}
}

// Validate checks every section and reports all problems at once. Each
// problem wraps ErrInvalid.
func (s GameSettings) Validate() error {
	var errs error
	check := func(section string, err error) {
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %w", ErrInvalid, section, err))
		}
	}

	_, err := logging.ParseLevel(s.Log.Level)
	check("log", err)
	check("simulation", s.Simulation.validate())
	check("body", s.Body.Validate())
	check("player", s.Player.Validate())
	check("level", s.Level.Validate())
	check("obstacles", s.Obstacles.Validate())
	check("camera", s.Camera.Validate())
	return errs
}

func (s SimulationSettings) validate() error {
	switch {
	case s.FixedStep <= 0:
		return fmt.Errorf("fixed_step must be positive, got %v", s.FixedStep)
	case s.MaxSubsteps < 1:
		return fmt.Errorf("max_substeps must be at least 1, got %d", s.MaxSubsteps)
	case s.CellSize <= 0:
		return fmt.Errorf("cell_size must be positive, got %v", s.CellSize)
	case s.PhysicsScale < 0 || s.PhysicsScale > 1:
		return fmt.Errorf("physics_scale must be within 0..1, got %v", s.PhysicsScale)
	case s.StateScale < 0 || s.StateScale > 1:
		return fmt.Errorf("state_scale must be within 0..1, got %v", s.StateScale)
	}
	return nil
}

// LoadYAML overlays YAML data on the defaults and validates the result.
func LoadYAML(data []byte) (GameSettings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return GameSettings{}, fmt.Errorf("decode yaml settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return GameSettings{}, err
	}
	return s, nil
}

// LoadJSON overlays JSON data on the defaults and validates the result.
func LoadJSON(data []byte) (GameSettings, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return GameSettings{}, fmt.Errorf("decode json settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return GameSettings{}, err
	}
	return s, nil
}

// Load reads a settings file, choosing the decoder by extension. An empty
// path yields the defaults.
func Load(path string) (GameSettings, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return GameSettings{}, fmt.Errorf("read settings: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return GameSettings{}, fmt.Errorf("%w: unsupported settings file %q", ErrInvalid, path)
	}
}
