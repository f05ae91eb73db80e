package vehicle

import (
	"math"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Footprint corners in probe order.
const (
	cornerLeftBack = iota
	cornerLeftFront
	cornerRightFront
	cornerRightBack
)

// conformGround keeps the car above the terrain and tilts it to match the
// ground under its four corners.
func (s *Sim) conformGround(c *Car, m *collision.Motion) {
	v := config.Vehicle
	body := c.Body
	fp := c.Footprint()
	oldDY := m.Delta.Y()
	onGround := false

	groundY, normal := s.Terrain.Height(m.Coord.X(), m.Coord.Z())
	if bottom := m.Coord.Y() + fp.Bottom; bottom < groundY {
		m.Coord[1] += groundY - bottom
		onGround = true
		if normal.Y() < v.FlatNormalY || body.Speed2D > v.BounceSpeed {
			m.Delta = c.groundBounce(m.Delta, normal)
		} else {
			m.Delta[1] = 0
		}
	}

	rot := gamemath.Rotation(body.Rot)
	local := [4]mgl64.Vec3{
		cornerLeftBack:   {fp.Left, fp.Bottom, fp.Back},
		cornerLeftFront:  {fp.Left, fp.Bottom, fp.Front},
		cornerRightFront: {fp.Right, fp.Bottom, fp.Front},
		cornerRightBack:  {fp.Right, fp.Bottom, fp.Back},
	}
	var corner [4]mgl64.Vec3
	var down [4]bool
	lift := 0.0
	for i, p := range local {
		w := m.Coord.Add(rot.Mul3x1(p))
		ty, _ := s.Terrain.Height(w.X(), w.Z())
		if w.Y() < ty+v.Epsilon {
			down[i] = true
			lift = max(lift, ty-w.Y())
			w[1] = ty
		}
		corner[i] = w
	}

	if !onGround && !down[0] && !down[1] && !down[2] && !down[3] {
		if body.OnGround || body.OnTerrain {
			body.DeltaRot[1] *= 1 - min(c.Tune.Suspension*v.SuspensionSpinLoss, 1)
		}
		body.OnGround = false
		body.OnTerrain = false
		return
	}

	if lift > 0 {
		m.Coord[1] += lift
		if m.Delta.Y() < 0 {
			m.Delta[1] = 0
		}
	}

	pitch, roll := tiltFromCorners(corner, body.Rot.Y(), v.Epsilon)
	body.DeltaRot[0] = (pitch - body.Rot[0]) * v.TiltDamping
	body.DeltaRot[2] = (roll - body.Rot[2]) * v.TiltDamping

	if oldDY < 0 {
		back := down[cornerLeftBack] || down[cornerRightBack]
		front := down[cornerLeftFront] || down[cornerRightFront]
		left := down[cornerLeftBack] || down[cornerLeftFront]
		right := down[cornerRightFront] || down[cornerRightBack]

		if back && !front {
			body.DeltaRot[0] -= oldDY * v.PitchDip
		} else if front && !back {
			body.DeltaRot[0] += oldDY * v.PitchDip
		}
		if left && !right {
			body.DeltaRot[2] += oldDY * v.RollDip
		} else if right && !left {
			body.DeltaRot[2] -= oldDY * v.RollDip
		}
	}

	body.OnTerrain = true
	body.OnGround = true
	rotateXZ(body, m.Dt)
}

// tiltFromCorners measures pitch and roll of the plane through the four
// grounded corners against the level axes for yaw. Pitch is positive nose
// down, roll positive with the right side up.
func tiltFromCorners(corner [4]mgl64.Vec3, yaw, eps float64) (pitch, roll float64) {
	sin, cos := math.Sincos(yaw)
	levelBack := mgl64.Vec3{-sin, 0, -cos}
	levelLeft := mgl64.Vec3{-cos, 0, sin}

	back := corner[cornerLeftBack].Sub(corner[cornerLeftFront]).
		Add(corner[cornerRightBack].Sub(corner[cornerRightFront]))
	left := corner[cornerLeftBack].Sub(corner[cornerRightBack]).
		Add(corner[cornerLeftFront].Sub(corner[cornerRightFront]))

	pitch = gamemath.SafeAcos(levelBack.Dot(gamemath.Normalize(back, eps)))
	if corner[cornerLeftFront].Y() > corner[cornerLeftBack].Y() {
		pitch = -pitch
	}
	roll = gamemath.SafeAcos(levelLeft.Dot(gamemath.Normalize(left, eps)))
	if corner[cornerLeftBack].Y() > corner[cornerRightBack].Y() {
		roll = -roll
	}
	return pitch, roll
}

// groundBounce redirects a ground strike between a mirror bounce and a slide
// up the slope, weighted by how flat the ground is and how soft the
// suspension is.
func (c *Car) groundBounce(d, normal mgl64.Vec3) mgl64.Vec3 {
	v := config.Vehicle
	speed := d.Len()
	motion := gamemath.Normalize(d, v.Epsilon)
	if motion.X() == 0 && motion.Z() == 0 {
		d[1] = 0
		return d
	}

	upHill := normal.Cross(normal.Cross(motion).Mul(-1))
	ref := gamemath.Reflect(motion, normal, v.Epsilon)

	ratio := min((normal.Y()+config.Tuning.SlopeRatioAdjuster)*c.Tune.Suspension, 1)
	out := gamemath.Normalize(upHill.Mul(ratio).Add(ref.Mul(1-ratio)), v.Epsilon).Mul(speed)
	out[1] = min(out[1], c.Tune.MaxSpeed*v.VerticalSpeedRatio)
	return out
}
