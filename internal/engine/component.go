package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Component is attached to a GameObject. Behaviour runs through game state
// participants and FixedStepper, not per-object callbacks.
type Component interface {
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Collider is implemented by components that occupy space in the collision world.
// Bounds returns the world-space center and full size of the shape.
// Static colliders never move once added to a world.
type Collider interface {
	Component
	Bounds() (center, size rl.Vector3)
	CollisionLayer() int
	IsStatic() bool
}

// FixedStepper is implemented by components advanced once per physics tick.
type FixedStepper interface {
	FixedStep(deltaTime float32)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}

// World returns the collision world of the owning scene, or nil when the
// component is detached.
func (b *BaseComponent) World() WorldAccess {
	if b.gameObject == nil || b.gameObject.Scene == nil {
		return nil
	}
	return b.gameObject.Scene.World
}
