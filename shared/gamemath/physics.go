package gamemath

import "github.com/go-gl/mathgl/mgl64"

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// ApplyFrictionToDeltas shortens d by f, keeping its direction. Vectors shorter
// than eps, or shorter than f, come back as zero.
func ApplyFrictionToDeltas(d mgl64.Vec3, f, eps float64) mgl64.Vec3 {
	speed := d.Len()
	if speed <= eps {
		return mgl64.Vec3{}
	}
	newSpeed := speed - f
	if newSpeed < 0 {
		return mgl64.Vec3{}
	}
	return d.Mul(newSpeed / speed)
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Approach moves value toward target by at most step.
func Approach(value, target, step float64) float64 {
	if value < target {
		value += step
		if value > target {
			value = target
		}
	} else if value > target {
		value -= step
		if value < target {
			value = target
		}
	}
	return value
}
