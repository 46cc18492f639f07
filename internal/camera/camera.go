// Package camera keeps a 2D view centered on a followed object.
package camera

import (
	"fmt"

	"lander/internal/engine"
	"lander/internal/game"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// snapDistance is how close the camera has to be before it locks onto the
// target.
const snapDistance = 0.1

type Config struct {
	Speed       float32    `yaml:"speed" json:"speed"`
	MaxDistance float32    `yaml:"max_distance" json:"maxDistance"`
	Zoom        float32    `yaml:"zoom" json:"zoom"`
	Offset      rl.Vector2 `yaml:"offset" json:"offset"` // screen-space center
	// TargetTag picks the target from the scene when none was given.
	TargetTag string `yaml:"target_tag" json:"targetTag"`
}

// DefaultConfig frames a 1280x720 view at 40 pixels per unit.
func DefaultConfig() Config {
	return Config{
		Speed:       12,
		MaxDistance: 4,
		Zoom:        40,
		Offset:      rl.Vector2{X: 640, Y: 360},
		TargetTag:   "player",
	}
}

func (c Config) Validate() error {
	switch {
	case c.Speed <= 0:
		return fmt.Errorf("camera speed must be positive, got %v", c.Speed)
	case c.MaxDistance <= 0:
		return fmt.Errorf("camera max_distance must be positive, got %v", c.MaxDistance)
	case c.Zoom <= 0:
		return fmt.Errorf("camera zoom must be positive, got %v", c.Zoom)
	}
	return nil
}

// Follow chases Target during Play and jumps to it when a level starts.
// The further behind it is, the faster it moves. Without a Target it adopts
// the first scene object tagged TargetTag on Start.
type Follow struct {
	game.BaseParticipant
	Config
	Target   *engine.GameObject
	Position rl.Vector3
}

// NewFollow starts on target. A nil target is looked up by cfg.TargetTag
// when a level starts.
func NewFollow(cfg Config, target *engine.GameObject) *Follow {
	f := &Follow{Config: cfg, Target: target}
	f.Snap()
	return f
}

// Snap moves the camera onto the target.
func (f *Follow) Snap() {
	if f.Target != nil {
		f.Position = f.Target.Transform.Position
	}
}

func (f *Follow) OnEnter(g *game.Game, state, _ game.StateID) {
	if state != game.StateStart {
		return
	}
	if f.Target == nil && f.TargetTag != "" {
		if found := g.Scene().FindByTag(f.TargetTag); len(found) > 0 {
			f.Target = found[0]
		}
	}
	f.Snap()
}

func (f *Follow) OnFixedTick(_ *game.Game, state game.StateID, dt float32) {
	if state == game.StatePlay {
		f.Step(dt)
	}
}

// Step moves toward the target by one tick.
func (f *Follow) Step(dt float32) {
	if f.Target == nil {
		return
	}
	diff := rl.Vector3Subtract(f.Target.Transform.Position, f.Position)
	d := rl.Vector3Length(diff)
	if d < snapDistance {
		f.Position = f.Target.Transform.Position
		return
	}
	step := min(physics.InverseLerp(0, f.MaxDistance, d)*f.Speed*dt, d)
	f.Position = rl.Vector3Add(f.Position, rl.Vector3Scale(diff, step/d))
}

// Camera2D returns the view for a renderer. World Y points up, so it is
// flipped for screen space.
func (f *Follow) Camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: f.Offset,
		Target: rl.Vector2{X: f.Position.X * f.Zoom, Y: -f.Position.Y * f.Zoom},
		Zoom:   1,
	}
}
