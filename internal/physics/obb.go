package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB is a box in the XY plane rotated about Z.
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector2    // Half-extents along local axes
	Axes     [2]rl.Vector2 // Local X and Y axes (rotated)
}

// NewOBB creates an OBB from center, full size and rotation in degrees.
func NewOBB(center, size rl.Vector3, angle float32) OBB {
	r := angle * rl.Deg2rad
	c, s := cos32(r), sin32(r)
	return OBB{
		Center:   center,
		HalfSize: rl.Vector2{X: Abs(size.X) / 2, Y: Abs(size.Y) / 2},
		Axes: [2]rl.Vector2{
			{X: c, Y: s},
			{X: -s, Y: c},
		},
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(box AABB) OBB {
	size := box.Size()
	return OBB{
		Center:   box.Center(),
		HalfSize: rl.Vector2{X: size.X / 2, Y: size.Y / 2},
		Axes:     [2]rl.Vector2{{X: 1}, {Y: 1}},
	}
}

// Bounds returns the axis-aligned box enclosing the OBB.
func (o OBB) Bounds() AABB {
	ex := o.HalfSize.X*Abs(o.Axes[0].X) + o.HalfSize.Y*Abs(o.Axes[1].X)
	ey := o.HalfSize.X*Abs(o.Axes[0].Y) + o.HalfSize.Y*Abs(o.Axes[1].Y)
	return AABB{
		Min: rl.Vector2{X: o.Center.X - ex, Y: o.Center.Y - ey},
		Max: rl.Vector2{X: o.Center.X + ex, Y: o.Center.Y + ey},
	}
}

// IntersectsOBB tests two boxes with the separating axis theorem. In 2D the
// four face normals are the only candidate axes.
func (a OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector2{X: b.Center.X - a.Center.X, Y: b.Center.Y - a.Center.Y}
	for _, axis := range [4]rl.Vector2{a.Axes[0], a.Axes[1], b.Axes[0], b.Axes[1]} {
		if !overlapOnAxis(a, b, axis, t) {
			return false
		}
	}
	return true
}

func (a OBB) IntersectsAABB(b AABB) bool {
	return a.IntersectsOBB(NewAABBasOBB(b))
}

func (o OBB) project(axis rl.Vector2) float32 {
	return o.HalfSize.X*Abs(rl.Vector2DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*Abs(rl.Vector2DotProduct(o.Axes[1], axis))
}

// overlapOnAxis uses strict comparison so touching boxes do not overlap.
func overlapOnAxis(a, b OBB, axis, t rl.Vector2) bool {
	distance := Abs(rl.Vector2DotProduct(t, axis))
	return distance < a.project(axis)+b.project(axis)
}
