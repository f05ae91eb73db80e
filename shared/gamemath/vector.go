package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalize returns v at unit length, or the zero vector when v is shorter than eps.
func Normalize(v mgl64.Vec3, eps float64) mgl64.Vec3 {
	l := v.Len()
	if l <= eps {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Normalize2D normalizes the x/z pair, returning zeros when it is shorter than eps.
func Normalize2D(x, z, eps float64) (float64, float64) {
	l := math.Hypot(x, z)
	if l <= eps {
		return 0, 0
	}
	return x / l, z / l
}

// Length2D is the length of v projected onto the ground plane.
func Length2D(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}

// Reflect mirrors v about the normal n and returns the unit-length result.
func Reflect(v, n mgl64.Vec3, eps float64) mgl64.Vec3 {
	return Normalize(v.Sub(n.Mul(2*v.Dot(n))), eps)
}

// Forward is the unit heading for yaw on the ground plane.
func Forward(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
}

// Rotation builds the body orientation: roll, then pitch, then yaw.
func Rotation(rot mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DY(rot.Y()).Mul3(mgl64.Rotate3DX(rot.X())).Mul3(mgl64.Rotate3DZ(rot.Z()))
}

// SafeAcos is math.Acos with its input clamped to [-1, 1].
func SafeAcos(x float64) float64 {
	return math.Acos(mgl64.Clamp(x, -1, 1))
}
