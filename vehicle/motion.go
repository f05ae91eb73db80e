package vehicle

import (
	"math"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
	"github.com/automoto/rallycore/terrain"
)

// MoveCar runs one frame of car motion, sub-stepped by speed.
func (s *Sim) MoveCar(c *Car, dt float64) error {
	return s.runPasses(c.Body, dt, func(dt float64) error {
		return s.carPass(c, dt)
	})
}

func (s *Sim) carPass(c *Car, dt float64) error {
	if c.Driver != nil {
		c.Driver.Drive(c, dt)
	}
	ApplyIntent(c, dt)

	body := c.Body
	m := &collision.Motion{Coord: body.Coord, Delta: body.Delta, Dt: dt}

	s.doCarMotion(c, m)
	s.conformGround(c, m)
	err := s.carContacts(c, m)

	body.Commit(m)
	c.tickTimers(dt)
	return err
}

// doCarMotion integrates gravity, steering, thrust, slope and tire forces and
// moves the car by its new velocity.
func (s *Sim) doCarMotion(c *Car, m *collision.Motion) {
	v := config.Vehicle
	tu := config.Tuning
	body := c.Body
	dt := m.Dt
	tweak := s.Race.cpuTweak(c)

	var attrib terrain.Attrib
	if s.Surface != nil {
		attrib = s.Surface.AttribsAt(m.Coord.X(), m.Coord.Z())
	}
	c.Ground = GroundFromSurface(attrib, c.OnWater)

	oldDY := m.Delta.Y()
	m.Delta[1] -= tu.CarGravity * dt
	s.rotateCar(c, dt)

	yaw := body.Rot.Y()
	aim := gamemath.Forward(yaw)
	thrust := c.Thrust * c.Ground.Acceleration
	m.Delta[0] += aim.X() * thrust * dt
	m.Delta[2] += aim.Z() * thrust * dt

	groundY, normal := s.Terrain.Height(m.Coord.X(), m.Coord.Z())
	c.Normal = normal
	c.DistToFloor = m.Coord.Y() + c.Footprint().Bottom - groundY

	if oldDY >= 0 && m.Delta.Y() < 0 && c.DistToFloor > v.FallCueHeight && !c.CPU && !c.OnWater {
		s.Effects.Announce(CueWoah, 0)
	}

	if !c.OnWater && (body.OnTerrain || c.DistToFloor < v.SlopeFloorDistance) {
		acc := math.Cos(normal.Y()) * v.SlopeAccel
		if c.Braking {
			if normal.Y() > v.FlatNormalY {
				acc = 0
			} else {
				acc *= v.BrakeSlopeFactor
			}
		}
		m.Delta[0] += normal.X() * acc * dt
		m.Delta[2] += normal.Z() * acc * dt
	}

	var friction float64
	switch {
	case body.OnGround:
		friction = s.tireForces(c, m, yaw, tweak)
	case c.OnWater:
		friction = v.WaterFriction
	default:
		friction = c.Tune.AirFriction
	}
	m.Delta = gamemath.ApplyFrictionToDeltas(m.Delta, friction*dt, v.Epsilon)

	speed := gamemath.Length2D(m.Delta)
	if limit := s.maxSpeed(c); speed > limit {
		scale := limit / speed
		m.Delta[0] *= scale
		m.Delta[2] *= scale
		speed = limit
	}
	body.Speed2D = speed

	sx, sz := gamemath.Normalize2D(m.Delta.X(), m.Delta.Z(), v.Epsilon)
	if sx == 0 && sz == 0 {
		c.SkidDot = 1
	} else {
		c.SkidDot = aim.X()*sx + aim.Z()*sz
	}
	c.MovingBackwards = c.SkidDot < 0

	if body.OnGround {
		c.updatePlaning(speed, tweak, dt)
	}

	m.Coord = m.Coord.Add(m.Delta.Mul(dt))
	c.Pose = c.pose()
}

// tireForces bends the grounded velocity toward the aim vector by traction and
// returns the skid friction to apply.
func (s *Sim) tireForces(c *Car, m *collision.Motion, yaw, tweak float64) float64 {
	v := config.Vehicle
	tu := config.Tuning

	speed := gamemath.Length2D(m.Delta)
	dir := yaw
	if c.AccelBackwards {
		dir += math.Pi
	}
	ax, az := math.Sin(dir), math.Cos(dir)
	sx, sz := gamemath.Normalize2D(m.Delta.X(), m.Delta.Z(), v.Epsilon)
	dot := ax*sx + az*sz

	traction := c.Ground.Traction * c.Tune.TireTraction * dot * tu.TireTraction * tweak
	friction := c.Ground.Friction * c.Tune.TireTraction * (1 - dot) * tu.TireFriction * tweak
	if c.Braking {
		friction += math.Abs(dot) * v.BrakeFriction * c.Ground.Traction
	}

	if c.Planing {
		if c.GreasedTimer > 0 {
			traction, friction = 0, 0
		} else {
			traction *= v.PlaningGripScale
			friction *= v.PlaningGripScale
		}
	}

	if dot < 0 {
		friction *= (dot + 1) * 2
		traction = -traction
	}
	if c.GreasedTimer <= 0 {
		friction += v.AmbientFriction
	}

	sx, sz = gamemath.Normalize2D(sx+ax*traction, sz+az*traction, v.Epsilon)
	m.Delta[0] = sx * speed
	m.Delta[2] = sz * speed
	return friction
}

func (s *Sim) maxSpeed(c *Car) float64 {
	v := config.Vehicle
	var limit float64
	switch {
	case c.OnWater:
		limit = v.WaterMaxSpeed
	case c.NitroTimer > 0:
		limit = v.NitroMaxSpeed
	default:
		limit = c.Tune.MaxSpeed
		if c.CPU {
			if behind := c.Place - s.Race.WorstHumanPlace; behind > 0 {
				limit += float64(behind) * v.CPUPlaceTweak
			}
		} else {
			limit += placesBehind(c.Place) * v.PlaceSpeedTweak
		}
	}
	if c.FlamingTimer > 0 {
		limit *= v.FlamingSpeedRate
	}
	return limit
}

// updatePlaning enters planing on a shallow skid at speed and leaves it once
// the skid straightens past the hysteresis band, the car slows, or the grease
// wears off.
func (c *Car) updatePlaning(speed, tweak, dt float64) {
	v := config.Vehicle
	minSpeed := c.Tune.MinPlaningSpeed * tweak
	minAngle := c.Tune.MinPlaningAngle * tweak
	dot := math.Abs(c.SkidDot)

	if !c.Planing {
		c.Planing = dot < minAngle && speed > minSpeed
		return
	}

	if c.GreasedTimer > 0 {
		c.GreasedTimer -= dt
		if c.GreasedTimer <= 0 {
			c.GreasedTimer = 0
			c.Planing = false
		}
		return
	}
	if speed < minSpeed*v.PlaningExitSpeed || dot > minAngle+v.PlaningHysteresis {
		c.Planing = false
	}
}

func (c *Car) pose() Pose {
	v := config.Vehicle
	switch {
	case c.ThrowTimer > 0:
		return PoseThrow
	case c.Planing && !c.OnWater:
		return PoseFreakOut
	case c.DistToFloor > v.HangTimeHeight && !c.OnWater:
		return PoseHangTime
	case c.Steering < -v.TurnPoseThreshold:
		return PoseTurnLeft
	case c.Steering > v.TurnPoseThreshold:
		return PoseTurnRight
	}
	return PoseSit
}

// rotateCar turns the car from its steering and integrates yaw.
func (s *Sim) rotateCar(c *Car, dt float64) {
	v := config.Vehicle
	tu := config.Tuning
	body := c.Body

	steering := c.Steering
	if c.MovingBackwards {
		steering = -steering
	}

	switch {
	case c.OnWater:
		target := v.WaterTurnSpeed * -tu.CarTurningRadius * steering
		body.DeltaRot[1] = gamemath.Approach(body.DeltaRot[1], target, v.WaterTraction*dt*v.SteerResponseRate)

	case body.OnGround:
		if !c.Planing {
			turn := min(body.Speed2D, tu.CarMaxTightTurn)
			steering *= math.Abs(c.SkidDot)
			target := turn * -tu.CarTurningRadius * steering
			step := c.Tune.TireTraction * dt * v.SteerResponseRate * c.Ground.Steering
			body.DeltaRot[1] = gamemath.Approach(body.DeltaRot[1], target, step)
		}
		friction := c.Ground.Friction * c.Tune.TireTraction
		body.DeltaRot[1] = gamemath.Approach(body.DeltaRot[1], 0, friction*dt)
	}

	body.Rot[1] += body.DeltaRot[1] * dt
	rotateXZ(body, dt)
}

// rotateXZ integrates pitch and roll, keeping the body from flipping over.
func rotateXZ(body *collision.Object, dt float64) {
	limit := config.Vehicle.MaxTilt
	body.Rot[0] = gamemath.ClampSpeed(body.Rot[0]+body.DeltaRot[0]*dt, limit)
	body.Rot[2] = gamemath.ClampSpeed(body.Rot[2]+body.DeltaRot[2]*dt, limit)
}
