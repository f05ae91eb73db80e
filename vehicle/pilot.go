package vehicle

import (
	"math"

	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Pilot is the CPU driver. It follows a closed loop of waypoints, swerves
// around avoid objects and backs up when it gets stuck.
type Pilot struct {
	Path       []mgl64.Vec3
	Avoid      *Avoider // optional
	Difficulty Difficulty

	next         int
	started      bool
	stuckTimer   float64
	lastPos      mgl64.Vec3
	reverseTimer float64
}

func NewPilot(path []mgl64.Vec3, avoid *Avoider, difficulty Difficulty) *Pilot {
	return &Pilot{Path: path, Avoid: avoid, Difficulty: difficulty}
}

// Reversing reports whether the pilot is backing out of a jam.
func (p *Pilot) Reversing() bool {
	return p.reverseTimer > 0
}

// Waypoint is the index of the waypoint being driven to.
func (p *Pilot) Waypoint() int {
	return p.next
}

// pathVector is the unit ground direction toward the current waypoint,
// advancing past waypoints already reached.
func (p *Pilot) pathVector(coord mgl64.Vec3) (float64, float64, bool) {
	if len(p.Path) == 0 {
		return 0, 0, false
	}
	near := config.Avoid.WaypointNear
	for range p.Path {
		w := p.Path[p.next]
		if math.Hypot(w.X()-coord.X(), w.Z()-coord.Z()) > near {
			break
		}
		p.next = (p.next + 1) % len(p.Path)
	}
	return p.directionTo(coord, p.next)
}

// pathVectorAt is pathVector for a point ahead without moving the pilot on.
func (p *Pilot) pathVectorAt(coord mgl64.Vec3) (float64, float64, bool) {
	if len(p.Path) == 0 {
		return 0, 0, false
	}
	i := p.next
	w := p.Path[i]
	if math.Hypot(w.X()-coord.X(), w.Z()-coord.Z()) <= config.Avoid.WaypointNear {
		i = (i + 1) % len(p.Path)
	}
	return p.directionTo(coord, i)
}

func (p *Pilot) directionTo(coord mgl64.Vec3, i int) (float64, float64, bool) {
	w := p.Path[i]
	x, z := gamemath.Normalize2D(w.X()-coord.X(), w.Z()-coord.Z(), config.Vehicle.Epsilon)
	return x, z, x != 0 || z != 0
}

func (p *Pilot) checkStuck(coord mgl64.Vec3, dist, dt float64) {
	c := config.Avoid
	if !p.started {
		p.started = true
		p.lastPos = coord
		p.stuckTimer = c.StuckCheckTime
		return
	}
	p.stuckTimer -= dt
	if p.stuckTimer > 0 {
		return
	}
	p.stuckTimer += c.StuckCheckTime
	if coord.Sub(p.lastPos).Len() < dist {
		if p.reverseTimer > 0 {
			p.reverseTimer = 0
		} else {
			p.reverseTimer = c.ReverseTime
		}
	} else {
		p.reverseTimer = 0
	}
	p.lastPos = coord
}

// steer picks -1, 0 or 1 toward the path, or away from an obstacle. It also
// returns the angle between the aim and the path.
func (p *Pilot) steer(coord mgl64.Vec3, yaw, speed2D float64) (steer, angle, px, pz float64) {
	if p.Avoid != nil {
		if turn := p.Avoid.Turn(coord, yaw, speed2D); turn != 0 {
			return turn, 0, 0, 0
		}
	}
	px, pz, ok := p.pathVector(coord)
	if !ok {
		return 0, 0, 0, 0
	}
	aim := gamemath.Forward(yaw)
	cross := px*aim.Z() - pz*aim.X()
	angle = gamemath.SafeAcos(px*aim.X() + pz*aim.Z())
	if p.reverseTimer > 0 {
		cross = -cross
	}
	if angle > config.Avoid.PathTolerance {
		if cross > 0 {
			steer = -1
		} else {
			steer = 1
		}
	}
	return steer, angle, px, pz
}

// Drive sets the car's intent for this sub-step.
func (p *Pilot) Drive(c *Car, dt float64) {
	cfg := config.Avoid
	body := c.Body

	dist := cfg.StuckDistance
	if c.OnWater {
		dist = cfg.StuckWaterDist
	}
	p.checkStuck(body.Coord, dist, dt)

	in := Intent{}
	if body.OnGround || c.OnWater {
		steer, angle, px, pz := p.steer(body.Coord, body.Rot.Y(), body.Speed2D)
		in.Steer = steer

		brake, gas := false, true
		switch {
		case c.Planing || c.GreasedTimer > 0 || math.Abs(body.DeltaRot.Y()) > config.Vehicle.MaxSpinRate:
			brake = true
		case body.Speed2D > cfg.FastSpeed && p.Difficulty > DifficultyEasy && (px != 0 || pz != 0):
			if angle > cfg.BrakeAngle {
				brake = true
				break
			}
			future := body.Coord.Add(body.Delta.Mul(cfg.FutureTime))
			if fx, fz, ok := p.pathVectorAt(future); ok {
				dot := px*fx + pz*fz
				if dot < 0 {
					brake = true
				} else if dot < cfg.CoastDot {
					gas = false
				}
			}
		}

		switch {
		case brake:
			in.Brake = true
		case gas && p.reverseTimer > 0:
			in.Reverse = true
			p.reverseTimer = max(p.reverseTimer-dt, 0)
		case gas:
			in.Throttle = true
		}
	}
	c.Intent = in
}

// DriveSub sets the submarine's intent for this sub-step.
func (p *Pilot) DriveSub(sub *Submarine, dt float64) {
	body := sub.Body
	p.checkStuck(body.Coord, config.Avoid.StuckSubDist, dt)

	steer, _, _, _ := p.steer(body.Coord, body.Rot.Y(), body.Speed2D)
	in := Intent{Steer: steer}
	if p.reverseTimer > 0 {
		in.Reverse = true
		p.reverseTimer = max(p.reverseTimer-dt, 0)
	}
	sub.Intent = in
}
