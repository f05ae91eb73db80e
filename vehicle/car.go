package vehicle

import (
	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is the driver animation the dynamics ask for.
type Pose uint8

const (
	PoseSit Pose = iota
	PoseTurnLeft
	PoseTurnRight
	PoseHangTime
	PoseFreakOut
	PoseThrow
)

func (p Pose) String() string {
	return [...]string{"sit", "turn-left", "turn-right", "hang-time", "freak-out", "throw"}[p]
}

// Car is a land vehicle.
type Car struct {
	Body *collision.Object

	Player int
	Place  int // 1 is the leader
	CPU    bool
	Tune   Tune
	Intent Intent
	Driver Driver // nil for human drivers

	Steering       float64
	Thrust         float64
	Braking        bool
	GasPedal       bool
	AccelBackwards bool
	NoControl      bool

	Planing         bool
	GreasedTimer    float64
	SkidDot         float64
	MovingBackwards bool

	OnWater     bool
	WaterY      float64
	Ground      config.SurfaceParams
	DistToFloor float64
	Normal      mgl64.Vec3

	NitroTimer     float64
	FlamingTimer   float64
	BumpSoundTimer float64

	Pose       Pose
	ThrowTimer float64

	// Base is the tune derived from the car's stats. Power-ups change Tune
	// and restore it from Base when they run out.
	Base            Tune
	StickyTimer     float64
	SuspensionTimer float64

	IsIt             bool
	Health           float64
	ImpactResetTimer float64
	HasFlag          bool
	Team             int

	// hitThisPass dedupes car-to-car responses within one sub-step
	hitThisPass []*Car
}

// CarShape is the default car collision box around the car's origin.
func CarShape() collision.Extents {
	v := config.Vehicle
	return collision.Extents{
		Left: -v.DefaultHalfWidth, Right: v.DefaultHalfWidth,
		Bottom: v.DefaultBottomOffset, Top: v.DefaultTopOffset,
		Back: -v.DefaultHalfWidth, Front: v.DefaultHalfWidth,
	}
}

// NewCar creates a car at coord facing yaw.
func NewCar(name string, coord mgl64.Vec3, yaw float64, tune Tune) *Car {
	body := collision.NewObject(name, coord, collision.CTypePlayer,
		collision.Solid(collision.AllSides), CarShape())
	body.Rot[1] = yaw
	c := &Car{
		Body:    body,
		Tune:    tune,
		Base:    tune,
		SkidDot: 1,
		Normal:  mgl64.Vec3{0, 1, 0},
		Ground:  config.Ground.Default,
		Health:  config.Rules.StartingHealth,
	}
	body.Data = c
	return c
}

// Footprint returns the body's local box.
func (c *Car) Footprint() collision.Extents {
	return c.Body.Shapes[0]
}

// LoseHealth applies survival damage.
func (c *Car) LoseHealth(amount float64) {
	c.Health = max(c.Health-amount, 0)
}

// Eliminated reports whether a survival car has run out of health.
func (c *Car) Eliminated() bool {
	return c.Health <= 0
}

// tickTimers runs the per-step countdowns.
func (c *Car) tickTimers(dt float64) {
	c.NitroTimer = max(c.NitroTimer-dt, 0)
	c.ImpactResetTimer = max(c.ImpactResetTimer-dt, 0)
	c.ThrowTimer = max(c.ThrowTimer-dt, 0)
	c.tickPowerups(dt)
	c.BumpSoundTimer -= dt
}

// CarOf returns the car that owns obj, if any.
func CarOf(obj *collision.Object) (*Car, bool) {
	c, ok := obj.Data.(*Car)
	return c, ok
}
