package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Epsilon is the length below which a vector has no direction.
const Epsilon = 1e-6

func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1. Zero maps to zero.
func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// SafeNormalize returns the unit vector of v, or zero when v is too short to
// carry a direction.
func SafeNormalize(v rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < Epsilon {
		return rl.Vector3Zero()
	}
	return rl.Vector3Scale(v, 1/l)
}

// SnapZero returns zero when |v| is below threshold.
func SnapZero(v rl.Vector3, threshold float32) rl.Vector3 {
	if rl.Vector3Length(v) < threshold {
		return rl.Vector3Zero()
	}
	return v
}

// InverseLerp maps v from [a,b] to [0,1], clamped. A degenerate range maps to 0.
func InverseLerp(a, b, v float32) float32 {
	if a == b {
		return 0
	}
	return rl.Clamp((v-a)/(b-a), 0, 1)
}

// Rotate2D rotates v about Z by angle degrees.
func Rotate2D(v rl.Vector3, angle float32) rl.Vector3 {
	r := angle * rl.Deg2rad
	c, s := cos32(r), sin32(r)
	return rl.Vector3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

func cos32(r float32) float32 { return float32(math.Cos(float64(r))) }
func sin32(r float32) float32 { return float32(math.Sin(float64(r))) }
