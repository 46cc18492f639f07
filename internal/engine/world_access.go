package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess is the collision query surface handed to components.
// Implementations ignore colliders whose layer is outside mask and the
// ignore object itself. A zero mask never hits anything.
type WorldAccess interface {
	// Raycast returns the nearest hit along dir within maxDistance.
	Raycast(origin, dir rl.Vector3, maxDistance float32, mask LayerMask, ignore *GameObject) (RaycastResult, bool)
	// OverlapBox returns the first collider overlapping a box of full size
	// size centered at center, rotated angle degrees about Z.
	OverlapBox(center, size rl.Vector3, angle float32, mask LayerMask, ignore *GameObject) (*GameObject, bool)
	// Overlapping returns every collider overlapping an axis-aligned box.
	Overlapping(center, size rl.Vector3, mask LayerMask, ignore *GameObject) []*GameObject
}
