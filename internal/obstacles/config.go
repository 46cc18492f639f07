package obstacles

import (
	"fmt"

	"lander/internal/components"
	"lander/internal/curve"
	"lander/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Config struct {
	PoolSize int          `yaml:"pool_size" json:"poolSize"`
	Water    WaterConfig  `yaml:"water" json:"water"`
	Wind     WindConfig   `yaml:"wind" json:"wind"`
	Splash   SplashConfig `yaml:"splash" json:"splash"`
}

type WaterConfig struct {
	SpawnInterval float32          `yaml:"spawn_interval" json:"spawnInterval"`
	Size          rl.Vector3       `yaml:"size" json:"size"`
	Gravity       rl.Vector3       `yaml:"gravity" json:"gravity"`
	Strength      float32          `yaml:"strength" json:"strength"`
	TargetMask    engine.LayerMask `yaml:"target_mask" json:"targetMask"`
	CollisionMask engine.LayerMask `yaml:"collision_mask" json:"collisionMask"`
}

type WindConfig struct {
	InactiveInterval float32          `yaml:"inactive_interval" json:"inactiveInterval"`
	ActiveInterval   float32          `yaml:"active_interval" json:"activeInterval"`
	Offset           rl.Vector3       `yaml:"offset" json:"offset"`
	Size             rl.Vector3       `yaml:"size" json:"size"`
	Angle            float32          `yaml:"angle" json:"angle"`
	Strength         float32          `yaml:"strength" json:"strength"`
	Falloff          curve.Curve      `yaml:"falloff" json:"falloff"`
	TargetMask       engine.LayerMask `yaml:"target_mask" json:"targetMask"`
}

type SplashConfig struct {
	PoolSize int     `yaml:"pool_size" json:"poolSize"`
	Lifetime float32 `yaml:"lifetime" json:"lifetime"`
}

func DefaultConfig() Config {
	player := engine.Layers(components.LayerPlayer)
	return Config{
		PoolSize: 20,
		Water: WaterConfig{
			SpawnInterval: 1,
			Size:          rl.Vector3{X: 0.4, Y: 0.4, Z: 0.4},
			Gravity:       rl.Vector3{Y: -4},
			Strength:      300,
			TargetMask:    player,
			CollisionMask: engine.Layers(components.LayerGround, components.LayerObstacle),
		},
		Wind: WindConfig{
			InactiveInterval: 2,
			ActiveInterval:   1.5,
			Offset:           rl.Vector3{Y: 2.5},
			Size:             rl.Vector3{X: 2, Y: 5, Z: 1},
			Strength:         25,
			Falloff:          curve.Falloff(),
			TargetMask:       player,
		},
		Splash: SplashConfig{PoolSize: 20, Lifetime: 0.5},
	}
}

func (c Config) Validate() error {
	switch {
	case c.PoolSize < 1 || c.Splash.PoolSize < 1:
		return fmt.Errorf("pool sizes must be positive")
	case c.Water.SpawnInterval <= 0:
		return fmt.Errorf("water spawn_interval must be positive, got %v", c.Water.SpawnInterval)
	case c.Wind.ActiveInterval <= 0 || c.Wind.InactiveInterval < 0:
		return fmt.Errorf("wind intervals are invalid")
	case c.Wind.Size.Y <= 0:
		return fmt.Errorf("wind size must have a positive height")
	}
	if err := c.Wind.Falloff.Validate(); err != nil {
		return fmt.Errorf("wind falloff: %w", err)
	}
	return nil
}
