package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastHit is the geometric result of a ray against a single box.
type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// RaycastAABB casts a ray with unit direction dir against box using the slab
// method in XY. A ray that starts inside the box hits at distance 0 with the
// normal opposing the ray.
func RaycastAABB(origin, dir rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	var normal rl.Vector3

	// X slab
	if dir.X != 0 {
		t1 := (box.Min.X - origin.X) / dir.X
		t2 := (box.Max.X - origin.X) / dir.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			normal = rl.Vector3{X: -Sign(dir.X)}
		}
		tmax = min(tmax, t2)
	} else if origin.X < box.Min.X || origin.X > box.Max.X {
		return RaycastHit{}, false
	}

	// Y slab
	if dir.Y != 0 {
		t1 := (box.Min.Y - origin.Y) / dir.Y
		t2 := (box.Max.Y - origin.Y) / dir.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			normal = rl.Vector3{Y: -Sign(dir.Y)}
		}
		tmax = min(tmax, t2)
	} else if origin.Y < box.Min.Y || origin.Y > box.Max.Y {
		return RaycastHit{}, false
	}

	if tmin > tmax || tmax < 0 {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = 0
		normal = rl.Vector3Negate(dir)
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
