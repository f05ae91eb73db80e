package vehicle

import (
	"slices"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// SubDriver produces a submarine's Intent each sub-step.
type SubDriver interface {
	DriveSub(sub *Submarine, dt float64)
}

// Submarine is the underwater vehicle. Pitch and yaw are steered directly and
// thrust always follows the aim.
type Submarine struct {
	Body *collision.Object

	Player int
	Place  int
	CPU    bool
	Tune   Tune
	Intent Intent
	Driver SubDriver

	RPM              float64
	ImmobilizedTimer float64
	NitroTimer       float64
	NoControl        bool

	hitThisPass []*Submarine
}

// NewSubmarine creates a submarine at coord facing yaw. Submarines share one
// top speed whatever their stats.
func NewSubmarine(name string, coord mgl64.Vec3, yaw float64, tune Tune) *Submarine {
	tune.MaxSpeed = config.Submarine.MaxSpeed
	body := collision.NewObject(name, coord, collision.CTypePlayer,
		collision.Solid(collision.AllSides), CarShape())
	body.Rot[1] = yaw
	sub := &Submarine{Body: body, Tune: tune}
	body.Data = sub
	return sub
}

// SubmarineOf returns the submarine that owns obj, if any.
func SubmarineOf(obj *collision.Object) (*Submarine, bool) {
	s, ok := obj.Data.(*Submarine)
	return s, ok
}

// Aim is the unit thrust direction from pitch and yaw.
func (sub *Submarine) Aim() mgl64.Vec3 {
	rot := mgl64.Vec3{sub.Body.Rot.X(), sub.Body.Rot.Y(), 0}
	return gamemath.Normalize(gamemath.Rotation(rot).Mul3x1(mgl64.Vec3{0, 0, 1}), config.Vehicle.Epsilon)
}

func (sub *Submarine) immobilized() bool {
	return sub.NoControl || sub.ImmobilizedTimer > 0
}

// MoveSubmarine runs one frame of submarine motion, sub-stepped by speed.
func (s *Sim) MoveSubmarine(sub *Submarine, dt float64) error {
	return s.runPasses(sub.Body, dt, func(dt float64) error {
		return s.subPass(sub, dt)
	})
}

func (s *Sim) subPass(sub *Submarine, dt float64) error {
	if sub.Driver != nil {
		sub.Driver.DriveSub(sub, dt)
	}
	steerSubmarine(sub, dt)

	body := sub.Body
	m := &collision.Motion{Coord: body.Coord, Delta: body.Delta, Dt: dt}
	s.doSubMotion(sub, m)
	err := s.subContacts(sub, m)

	body.Commit(m)
	sub.ImmobilizedTimer = max(sub.ImmobilizedTimer-dt, 0)
	sub.NitroTimer = max(sub.NitroTimer-dt, 0)
	return err
}

// steerSubmarine applies pitch and yaw input. Reverse noses up, throttle
// noses down and with neither the pitch drifts back to level.
func steerSubmarine(sub *Submarine, dt float64) {
	if sub.immobilized() {
		return
	}
	c := config.Submarine
	body := sub.Body
	in := sub.Intent

	switch {
	case in.Reverse:
		body.Rot[0] = max(body.Rot[0]-c.TurnSpeed*dt, -c.MaxPitch)
	case in.Throttle:
		body.Rot[0] = min(body.Rot[0]+c.TurnSpeed*dt, c.MaxPitch)
	default:
		body.Rot[0] = gamemath.Approach(body.Rot[0], 0, c.TurnSpeed*.5*dt)
	}

	if in.Steer < -c.YawThreshold {
		body.Rot[1] += c.TurnSpeed * dt
	} else if in.Steer > c.YawThreshold {
		body.Rot[1] -= c.TurnSpeed * dt
	}

	if in.Nitro && sub.NitroTimer <= 0 {
		sub.NitroTimer = config.Vehicle.NitroTime
	}
}

func (s *Sim) doSubMotion(sub *Submarine, m *collision.Motion) {
	c := config.Submarine
	dt := m.Dt

	if sub.immobilized() {
		m.Delta = gamemath.ApplyFrictionToDeltas(m.Delta, c.Friction*dt, config.Vehicle.Epsilon)
		sub.RPM = m.Delta.Len()
	} else {
		limit := sub.Tune.MaxSpeed + placesBehind(sub.Place)*c.PlaceTweak
		if sub.NitroTimer > 0 {
			limit *= c.NitroRatio
		}
		sub.RPM = min(sub.RPM+sub.Tune.Acceleration*dt, limit)
		m.Delta = sub.Aim().Mul(sub.RPM)
	}

	m.Coord = m.Coord.Add(m.Delta.Mul(dt))

	groundY, _ := s.Terrain.Height(m.Coord.X(), m.Coord.Z())
	floor := groundY + c.MinHeight
	switch {
	case m.Coord.Y() < floor:
		m.Coord[1] = floor
		m.Delta[1] = 0
	case m.Coord.Y() > floor+c.Band:
		m.Coord[1] = floor + c.Band
		m.Delta[1] = 0
	}
}

// subContacts resolves the submarine and reacts to rocks, other submarines
// and weed.
func (s *Sim) subContacts(sub *Submarine, m *collision.Motion) error {
	body := sub.Body
	pre := m.Delta

	res, err := s.Resolver.Resolve(body, m, collision.PlayerMask, 0)
	if err != nil {
		return err
	}
	sub.hitThisPass = sub.hitThisPass[:0]

	for _, rec := range res.Records {
		t := rec.Target
		if rec.Kind != collision.KindObject || t == nil || t.Removed() {
			continue
		}

		if t.CType.Has(collision.CTypeImpenetrable) && !t.CType.Has(collision.CTypeImpenetrable2) &&
			!rec.Sides.Has(collision.SideBottom) {
			m.Coord[0] = body.OldCoord.X()
			m.Coord[2] = body.OldCoord.Z()
		}

		if t.CType.Has(collision.CTypePlayer) {
			if other, ok := SubmarineOf(t); ok && !slices.Contains(sub.hitThisPass, other) {
				sub.hitThisPass = append(sub.hitThisPass, other)
				d1, d2, _, _, _ := Bounce(pre, other.Body.Delta)
				m.Delta = d1
				other.Body.Delta = d2
			}
		}

		if t.CType.Has(collision.CTypeViscous) {
			m.Delta = gamemath.ApplyFrictionToDeltas(m.Delta, config.Submarine.ViscousFriction, config.Vehicle.Epsilon)
		}
	}
	return nil
}
