package components

import (
	"lander/internal/engine"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TriggerVolume is an oriented box sensor. OnTrigger fires on every Check
// that finds a hit; OnEnter and OnLeave fire only when the hit object changes.
type TriggerVolume struct {
	engine.BaseComponent
	Offset rl.Vector3
	Size   rl.Vector3
	Angle  float32 // degrees about Z, added to the owner's rotation
	Mask   engine.LayerMask

	OnTrigger engine.EventWithArg[*engine.GameObject]
	OnEnter   engine.EventWithArg[*engine.GameObject]
	OnLeave   engine.EventWithArg[*engine.GameObject]

	last *engine.GameObject
}

func NewTriggerVolume(size rl.Vector3, mask engine.LayerMask) *TriggerVolume {
	return &TriggerVolume{Size: size, Mask: mask}
}

// Center returns the sensor center in world space.
func (t *TriggerVolume) Center() rl.Vector3 {
	g := t.GetGameObject()
	if g == nil {
		return t.Offset
	}
	return rl.Vector3Add(g.Transform.Position, physics.Rotate2D(t.Offset, g.Transform.Rotation))
}

func (t *TriggerVolume) WorldAngle() float32 {
	if g := t.GetGameObject(); g != nil {
		return t.Angle + g.Transform.Rotation
	}
	return t.Angle
}

// Check queries the world and dispatches events. It returns the current hit.
func (t *TriggerVolume) Check() *engine.GameObject {
	var hit *engine.GameObject
	if w := t.World(); w != nil {
		hit, _ = w.OverlapBox(t.Center(), t.Size, t.WorldAngle(), t.Mask, t.GetGameObject())
	}

	if hit != nil {
		t.OnTrigger.Invoke(hit)
	}
	if hit != t.last {
		prev := t.last
		t.last = hit
		if prev != nil {
			t.OnLeave.Invoke(prev)
		}
		if hit != nil {
			t.OnEnter.Invoke(hit)
		}
	}
	return hit
}

// Current returns the object hit on the last Check, if any.
func (t *TriggerVolume) Current() *engine.GameObject {
	return t.last
}

// ClearEvents drops every listener and forgets the last hit so a pooled
// owner starts clean.
func (t *TriggerVolume) ClearEvents() {
	t.OnTrigger.RemoveAllListeners()
	t.OnEnter.RemoveAllListeners()
	t.OnLeave.RemoveAllListeners()
	t.last = nil
}
