package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned box in the XY plane. Z is ignored by every query.
type AABB struct {
	Min rl.Vector2
	Max rl.Vector2
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	hx, hy := Abs(size.X)/2, Abs(size.Y)/2
	return AABB{
		Min: rl.Vector2{X: center.X - hx, Y: center.Y - hy},
		Max: rl.Vector2{X: center.X + hx, Y: center.Y + hy},
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3{X: (a.Min.X + a.Max.X) / 2, Y: (a.Min.Y + a.Max.Y) / 2}
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3{X: a.Max.X - a.Min.X, Y: a.Max.Y - a.Min.Y}
}

// Intersects reports strict overlap. Boxes that only share an edge do not
// intersect, so a body resting exactly on a surface is not pushed out.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Expand grows the box by d on every side.
func (a AABB) Expand(d float32) AABB {
	return AABB{
		Min: rl.Vector2{X: a.Min.X - d, Y: a.Min.Y - d},
		Max: rl.Vector2{X: a.Max.X + d, Y: a.Max.Y + d},
	}
}

// Union returns the smallest box containing both.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: rl.Vector2{X: min(a.Min.X, b.Min.X), Y: min(a.Min.Y, b.Min.Y)},
		Max: rl.Vector2{X: max(a.Max.X, b.Max.X), Y: max(a.Max.Y, b.Max.Y)},
	}
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'.
// Returns zero vector if no overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3Zero()
	}

	dx1 := b.Max.X - a.Min.X // push a in +X
	dx2 := a.Max.X - b.Min.X // push a in -X
	dy1 := b.Max.Y - a.Min.Y // push a in +Y
	dy2 := a.Max.Y - b.Min.Y // push a in -Y

	best := dx1
	result := rl.Vector3{X: dx1}

	if dx2 < best {
		best = dx2
		result = rl.Vector3{X: -dx2}
	}
	if dy1 < best {
		best = dy1
		result = rl.Vector3{Y: dy1}
	}
	if dy2 < best {
		result = rl.Vector3{Y: -dy2}
	}

	return result
}
