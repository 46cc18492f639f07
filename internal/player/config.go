package player

import (
	"fmt"

	"lander/internal/components"
	"lander/internal/curve"
	"lander/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Config tunes flight, boost, energy and death handling.
type Config struct {
	ControlAcceleration    rl.Vector3  `yaml:"control_acceleration" json:"controlAcceleration"`
	FlightDirectionControl float32     `yaml:"flight_direction_control" json:"flightDirectionControl"`
	Lift                   curve.Curve `yaml:"lift" json:"lift"`
	Jolt                   curve.Curve `yaml:"jolt" json:"jolt"`

	BoostMinDirection   float32     `yaml:"boost_min_direction" json:"boostMinDirection"`
	BoostMaxDirection   float32     `yaml:"boost_max_direction" json:"boostMaxDirection"`
	BoostDirectionCurve curve.Curve `yaml:"boost_direction_curve" json:"boostDirectionCurve"`
	BoostAngleSpeed     float32     `yaml:"boost_angle_speed" json:"boostAngleSpeed"`
	BoostMoveSpeed      float32     `yaml:"boost_move_speed" json:"boostMoveSpeed"`
	BoostCount          int         `yaml:"boost_count" json:"boostCount"`
	BoostLockFrames     int         `yaml:"boost_lock_frames" json:"boostLockFrames"`

	EnergyMax        float32 `yaml:"energy_max" json:"energyMax"`
	EnergyRecovery   float32 `yaml:"energy_recovery" json:"energyRecovery"`
	EnergyDrain      float32 `yaml:"energy_drain" json:"energyDrain"`
	BoostEnergyDrain float32 `yaml:"boost_energy_drain" json:"boostEnergyDrain"`

	DeathSpeed     float32 `yaml:"death_speed" json:"deathSpeed"`
	DeathFrames    int     `yaml:"death_frames" json:"deathFrames"`
	CooldownFrames int     `yaml:"cooldown_frames" json:"cooldownFrames"`
	DeathSpin      float32 `yaml:"death_spin" json:"deathSpin"` // degrees per fixed tick

	ObstacleMask   engine.LayerMask `yaml:"obstacle_mask" json:"obstacleMask"`
	CheckpointMask engine.LayerMask `yaml:"checkpoint_mask" json:"checkpointMask"`
}

func DefaultConfig() Config {
	return Config{
		ControlAcceleration:    rl.Vector3{X: 14, Y: 16},
		FlightDirectionControl: 0.5,
		Lift:                   curve.Ease("quad_out"),
		Jolt:                   curve.Ease("cubic_in"),

		BoostMinDirection:   0.2,
		BoostMaxDirection:   0.7,
		BoostDirectionCurve: curve.Linear(),
		BoostAngleSpeed:     1.5,
		BoostMoveSpeed:      400,
		BoostCount:          2,
		BoostLockFrames:     30,

		EnergyMax:        100,
		EnergyRecovery:   50,
		EnergyDrain:      15,
		BoostEnergyDrain: 20,

		DeathSpeed:     6,
		DeathFrames:    60,
		CooldownFrames: 30,
		DeathSpin:      12,

		ObstacleMask:   engine.Layers(components.LayerObstacle),
		CheckpointMask: engine.Layers(components.LayerGround),
	}
}

func (c Config) Validate() error {
	switch {
	case c.FlightDirectionControl < 0 || c.FlightDirectionControl > 1:
		return fmt.Errorf("flight_direction_control must be in 0..1, got %v", c.FlightDirectionControl)
	case c.BoostMinDirection < 0 || c.BoostMaxDirection > 1 || c.BoostMinDirection > c.BoostMaxDirection:
		return fmt.Errorf("boost direction range %v..%v is invalid", c.BoostMinDirection, c.BoostMaxDirection)
	case c.BoostAngleSpeed <= 0:
		return fmt.Errorf("boost_angle_speed must be positive, got %v", c.BoostAngleSpeed)
	case c.BoostCount < 0 || c.BoostLockFrames < 0:
		return fmt.Errorf("boost_count and boost_lock_frames must not be negative")
	case c.EnergyMax <= 0:
		return fmt.Errorf("energy_max must be positive, got %v", c.EnergyMax)
	case c.DeathFrames < 1 || c.CooldownFrames < 0:
		return fmt.Errorf("death_frames must be at least 1 and cooldown_frames not negative")
	}
	for name, cv := range map[string]curve.Curve{
		"lift":                  c.Lift,
		"jolt":                  c.Jolt,
		"boost_direction_curve": c.BoostDirectionCurve,
	} {
		if err := cv.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
