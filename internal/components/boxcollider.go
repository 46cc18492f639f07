package components

import (
	"lander/internal/engine"
	"lander/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collision layers used by the game.
const (
	LayerDefault  = 0
	LayerPlayer   = 1
	LayerGround   = 2
	LayerObstacle = 3
	LayerTrigger  = 4
	LayerWater    = 5
)

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
	Layer  int
	Static bool
}

func NewBoxCollider(size rl.Vector3, layer int) *BoxCollider {
	return &BoxCollider{
		Size:  size,
		Layer: layer,
	}
}

// NewStaticBoxCollider builds a collider for level geometry that never moves.
func NewStaticBoxCollider(size rl.Vector3, layer int) *BoxCollider {
	return &BoxCollider{Size: size, Layer: layer, Static: true}
}

func (b *BoxCollider) Bounds() (rl.Vector3, rl.Vector3) {
	g := b.GetGameObject()
	if g == nil {
		return b.Offset, rl.Vector3{}
	}
	return rl.Vector3Add(g.Transform.Position, b.Offset), b.Size
}

func (b *BoxCollider) CollisionLayer() int { return b.Layer }

func (b *BoxCollider) IsStatic() bool { return b.Static }

func (b *BoxCollider) GetAABB() physics.AABB {
	center, size := b.Bounds()
	return physics.NewAABBFromCenter(center, size)
}
