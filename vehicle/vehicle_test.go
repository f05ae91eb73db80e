package vehicle

import (
	"math"
	"testing"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

type recordEffects struct {
	sounds   []Sound
	cues     []Cue
	sparks   int
	splashes int
	flags    int
}

func (r *recordEffects) Sound(s Sound, _ mgl64.Vec3, _ float64) { r.sounds = append(r.sounds, s) }
func (r *recordEffects) Announce(c Cue, _ float64)              { r.cues = append(r.cues, c) }
func (r *recordEffects) Sparks(mgl64.Vec3, float64)             { r.sparks++ }
func (r *recordEffects) Splash(mgl64.Vec3)                      { r.splashes++ }
func (r *recordEffects) DropFlag(*Car)                          { r.flags++ }

func newSim(t *testing.T, ground terrain.Oracle, objs ...*collision.Object) (*Sim, *recordEffects) {
	t.Helper()
	space := collision.NewSpace(config.Collision.SentinelSlot)
	for _, o := range objs {
		space.Add(o)
	}
	resolver, err := collision.NewResolver(space, nil, nil)
	require.NoError(t, err)
	s, err := NewSim(ground, resolver, nil, zerolog.Nop())
	require.NoError(t, err)
	fx := &recordEffects{}
	s.Effects = fx
	return s, fx
}

func defaultTune() Tune {
	return Stats{Speed: 4, Acceleration: 4, Traction: 4, Suspension: 4}.Derive(DifficultyMedium, false)
}

// restingCar sits with its box bottom exactly on y=0.
func restingCar(name string, x, z float64) *Car {
	return NewCar(name, mgl64.Vec3{x, -config.Vehicle.DefaultBottomOffset, z}, 0, defaultTune())
}

func TestStatsDerive(t *testing.T) {
	tu := defaultTune()
	assert.InDelta(t, 4500, tu.MaxSpeed, 1e-9)
	assert.InDelta(t, 4000, tu.Acceleration, 1e-9)
	assert.InDelta(t, .8, tu.TireTraction, 1e-9)
	assert.InDelta(t, .36, tu.MinPlaningAngle, 1e-9)
	assert.InDelta(t, 3400, tu.MinPlaningSpeed, 1e-9)
	assert.InDelta(t, .7, tu.Suspension, 1e-9)

	cpu := Stats{4, 4, 4, 4}.Derive(DifficultyHard, true)
	assert.InDelta(t, 4800, cpu.Acceleration, 1e-9)
	assert.InDelta(t, .75, cpu.TireTraction, 1e-9)

	easy := Stats{4, 4, 4, 4}.Derive(DifficultySimplistic, false)
	assert.InDelta(t, 1.05, easy.TireTraction, 1e-9)
	assert.InDelta(t, .94, easy.Suspension, 1e-9)

	slow := Stats{4, 4, 4, 4}.Derive(DifficultySimplistic, true)
	assert.InDelta(t, 4500*.7, slow.MaxSpeed, 1e-9)
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParseDifficulty("hard"))
	assert.Equal(t, DifficultyMedium, ParseDifficulty("bogus"))
	assert.Equal(t, ModeSurvival, ParseMode("survival"))
	assert.Equal(t, ModeRace, ParseMode(""))
	assert.True(t, ModeTag2.IsTag())
	assert.False(t, ModeCaptureFlag.IsTag())
}

func TestApplyIntent(t *testing.T) {
	tests := []struct {
		name     string
		intent   Intent
		ground   bool
		speed    float64
		thrust   float64
		braking  bool
		backward bool
	}{
		{name: "throttle", intent: Intent{Throttle: true}, ground: true, speed: 1000, thrust: 4000},
		{name: "low speed boost", intent: Intent{Throttle: true}, ground: true, speed: 100, thrust: 5000},
		{name: "reverse boost", intent: Intent{Reverse: true}, ground: true, speed: 100, thrust: -5000, backward: true},
		{name: "brake", intent: Intent{Brake: true, Throttle: true}, ground: true, speed: 1000, braking: true},
		{name: "airborne", intent: Intent{Throttle: true}, speed: 1000},
		{name: "nitro", intent: Intent{Nitro: true}, ground: true, speed: 1000, thrust: 7000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := restingCar("car", 0, 0)
			c.Body.OnGround = tt.ground
			c.Body.Speed2D = tt.speed
			c.Intent = tt.intent

			ApplyIntent(c, dt)

			assert.InDelta(t, tt.thrust, c.Thrust, 1e-9)
			assert.Equal(t, tt.braking, c.Braking)
			assert.Equal(t, tt.backward, c.AccelBackwards)
		})
	}
}

func TestApplyIntentSteering(t *testing.T) {
	c := restingCar("car", 0, 0)
	c.Intent = Intent{Steer: 1}
	ApplyIntent(c, dt)
	assert.InDelta(t, 7*dt, c.Steering, 1e-9)

	c.Intent = Intent{Steer: -.4, Analog: true}
	ApplyIntent(c, dt)
	assert.InDelta(t, -.4, c.Steering, 1e-9)

	c.NoControl = true
	c.Intent = Intent{Steer: 1, Throttle: true}
	ApplyIntent(c, dt)
	assert.Zero(t, c.Steering)
	assert.Zero(t, c.Thrust)
}

func TestPlaningHysteresis(t *testing.T) {
	c := restingCar("car", 0, 0)

	var got []bool
	for _, dot := range []float64{.9, .3, .9} {
		c.SkidDot = dot
		c.updatePlaning(4000, 1, dt)
		got = append(got, c.Planing)
	}
	assert.Equal(t, []bool{false, true, false}, got)

	c.SkidDot = .3
	c.updatePlaning(4000, 1, dt)
	require.True(t, c.Planing)
	c.SkidDot = .45
	c.updatePlaning(4000, 1, dt)
	assert.True(t, c.Planing, "inside the hysteresis band")

	c.updatePlaning(2000, 1, dt)
	assert.False(t, c.Planing, "too slow to keep planing")

	c.SkidDot = .3
	c.updatePlaning(3000, 1, dt)
	assert.False(t, c.Planing, "below min planing speed")
}

func TestPlaningGreased(t *testing.T) {
	c := restingCar("car", 0, 0)
	c.Planing = true
	c.GreasedTimer = .5
	c.SkidDot = 1

	c.updatePlaning(0, 1, .3)
	assert.True(t, c.Planing)
	c.updatePlaning(0, 1, .3)
	assert.False(t, c.Planing)
	assert.Zero(t, c.GreasedTimer)
}

func TestCarRestsOnFlatGround(t *testing.T) {
	c := restingCar("car", 0, 0)
	s, _ := newSim(t, terrain.Flat{}, c.Body)

	for range 10 {
		require.NoError(t, s.Frame([]*Car{c}, nil, dt))
	}

	assert.InDelta(t, 78, c.Body.Coord.Y(), 1e-6)
	assert.InDelta(t, 0, c.Body.Coord.X(), 1e-6)
	assert.InDelta(t, 0, c.Body.Coord.Z(), 1e-6)
	assert.InDelta(t, 0, c.Body.Delta.Len(), 1e-6)
	assert.True(t, c.Body.OnGround)
	assert.False(t, c.Planing)
	assert.Equal(t, 1.0, c.SkidDot)
	assert.Equal(t, PoseSit, c.Pose)
}

func TestCarDrivesForward(t *testing.T) {
	c := restingCar("car", 0, 0)
	c.Intent = Intent{Throttle: true}
	s, _ := newSim(t, terrain.Flat{}, c.Body)

	for range 30 {
		require.NoError(t, s.Frame([]*Car{c}, nil, dt))
	}

	assert.Greater(t, c.Body.Coord.Z(), 0.0)
	assert.Greater(t, c.Body.Speed2D, 100.0)
	assert.InDelta(t, 0, c.Body.Coord.X(), 1e-6)
	assert.InDelta(t, 78, c.Body.Coord.Y(), 1e-6)
	assert.True(t, c.Body.OnGround)
}

func TestFallingCarLands(t *testing.T) {
	c := NewCar("car", mgl64.Vec3{0, 400, 0}, 0, defaultTune())
	s, _ := newSim(t, terrain.Flat{}, c.Body)

	require.NoError(t, s.Frame([]*Car{c}, nil, dt))
	assert.False(t, c.Body.OnGround)
	assert.Less(t, c.Body.Delta.Y(), 0.0)

	for range 60 {
		require.NoError(t, s.Frame([]*Car{c}, nil, dt))
	}
	assert.True(t, c.Body.OnGround)
	assert.InDelta(t, 78, c.Body.Coord.Y(), 1e-6)
}

func TestMoveCarRestoresFrameOldBoxes(t *testing.T) {
	c := restingCar("car", 0, 0)
	c.Body.Rot[1] = math.Pi / 2
	c.Body.Delta = mgl64.Vec3{6000, 0, 0}
	c.Body.Speed2D = 6000
	c.Body.OnGround = true
	s, _ := newSim(t, terrain.Flat{}, c.Body)

	c.Body.KeepOld()
	start := c.Body.Boxes[0].Extents
	require.Equal(t, 2, substeps(c.Body.Speed2D, dt))

	require.NoError(t, s.MoveCar(c, dt))

	assert.Equal(t, start, c.Body.Boxes[0].Old)
	assert.Greater(t, c.Body.Coord.X(), 0.0)
	assert.Greater(t, c.Body.Boxes[0].Left, start.Left)
}

func TestSubsteps(t *testing.T) {
	assert.Equal(t, 1, substeps(0, dt))
	assert.Equal(t, 2, substeps(6000, dt))
	assert.Equal(t, config.Vehicle.MaxSubsteps, substeps(1e9, dt))
}

func TestMoveCarNeedsBox(t *testing.T) {
	c := restingCar("car", 0, 0)
	c.Body.Boxes = nil
	s, _ := newSim(t, terrain.Flat{})
	assert.ErrorIs(t, s.MoveCar(c, dt), collision.ErrNoCollisionBox)
}

func TestThrowHoldsPose(t *testing.T) {
	c := restingCar("car", 0, 0)
	c.Intent = Intent{Throw: true}
	ApplyIntent(c, dt)
	assert.Equal(t, config.Vehicle.ThrowTime, c.ThrowTimer)

	c.Planing = true
	assert.Equal(t, PoseThrow, c.pose())
	assert.Equal(t, "throw", c.pose().String())

	c.tickTimers(config.Vehicle.ThrowTime)
	assert.Equal(t, PoseFreakOut, c.pose())
}
