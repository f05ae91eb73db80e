package vehicle

import (
	"testing"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxSpeedPlaceBonus(t *testing.T) {
	v := config.Vehicle
	tests := []struct {
		name  string
		cpu   bool
		place int
		worst int
		want  float64
	}{
		{name: "human leader", place: 1, worst: 1, want: 4500},
		{name: "human third", place: 3, worst: 3, want: 4500 + 2*v.PlaceSpeedTweak},
		{name: "human unranked", place: 0, worst: 1, want: 4500},
		{name: "cpu ahead of humans", cpu: true, place: 2, worst: 4, want: 4500},
		{name: "cpu level with worst human", cpu: true, place: 4, worst: 4, want: 4500},
		{name: "cpu behind humans", cpu: true, place: 6, worst: 4, want: 4500 + 2*v.CPUPlaceTweak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := restingCar("car", 0, 0)
			c.CPU = tt.cpu
			c.Place = tt.place
			s, _ := newSim(t, terrain.Flat{}, c.Body)
			s.Race.WorstHumanPlace = tt.worst

			assert.InDelta(t, tt.want, s.maxSpeed(c), 1e-9)
		})
	}
}

func TestSubmarineLeaderHasNoPlaceBonus(t *testing.T) {
	sub := NewSubmarine("sub", mgl64.Vec3{0, 1000, 0}, 0, defaultTune())
	s, _ := newSim(t, terrain.Flat{}, sub.Body)

	sub.Place = 1
	sub.RPM = 3990
	s.doSubMotion(sub, &collision.Motion{Coord: sub.Body.Coord, Dt: dt})
	assert.Equal(t, config.Submarine.MaxSpeed, sub.RPM)

	sub.Place = 3
	sub.RPM = 4190
	s.doSubMotion(sub, &collision.Motion{Coord: sub.Body.Coord, Dt: dt})
	assert.InDelta(t, config.Submarine.MaxSpeed+2*config.Submarine.PlaceTweak, sub.RPM, 1e-9)
}

func TestStickyTiresWearOff(t *testing.T) {
	c := restingCar("car", 0, 0)
	base := c.Tune

	assert.True(t, c.SetStickyTires(DifficultyMedium))
	assert.Greater(t, c.Tune.TireTraction, base.TireTraction)
	assert.Greater(t, c.Tune.MinPlaningSpeed, base.MinPlaningSpeed)
	assert.Equal(t, base.Suspension, c.Tune.Suspension)
	assert.False(t, c.SetStickyTires(DifficultyMedium))

	c.tickTimers(config.Powerup.StickyTiresTime / 2)
	assert.Greater(t, c.Tune.TireTraction, base.TireTraction)

	c.tickTimers(config.Powerup.StickyTiresTime)
	assert.Zero(t, c.StickyTimer)
	assert.Equal(t, base, c.Tune)
}

func TestSuperSuspensionWearsOff(t *testing.T) {
	c := restingCar("car", 0, 0)
	base := c.Tune

	assert.True(t, c.SetSuperSuspension(DifficultyMedium))
	assert.Greater(t, c.Tune.Suspension, base.Suspension)
	assert.Equal(t, base.TireTraction, c.Tune.TireTraction)

	c.tickTimers(config.Powerup.SuspensionTime + dt)
	assert.Zero(t, c.SuspensionTimer)
	assert.Equal(t, base, c.Tune)
}

func TestDrivingThroughLavaHalvesTopSpeed(t *testing.T) {
	c := restingCar("car", 0, 0)
	c.Place = 1
	c.Intent = Intent{Throttle: true}
	c.Body.Delta = mgl64.Vec3{0, 0, 3000}
	c.Body.Speed2D = 3000

	lava := collision.NewObject("lava", mgl64.Vec3{0, 0, 400}, collision.CTypeTrigger,
		collision.Touchable(), collision.Cube(200, 200))
	lava.Kind = "lava"

	space := collision.NewSpace(config.Collision.SentinelSlot)
	space.Add(c.Body)
	space.Add(lava)
	triggers := collision.Triggers{}
	triggers.Register("lava", collision.TriggerFunc(func(_, who *collision.Object, _ collision.Sides) bool {
		if car, ok := CarOf(who); ok {
			car.SetAflame()
		}
		return false
	}))
	resolver, err := collision.NewResolver(space, nil, triggers)
	require.NoError(t, err)
	s, err := NewSim(terrain.Flat{}, resolver, nil, zerolog.Nop())
	require.NoError(t, err)
	s.Effects = &recordEffects{}

	require.InDelta(t, 4500, s.maxSpeed(c), 1e-9)
	for range 30 {
		require.NoError(t, s.Frame([]*Car{c}, nil, dt))
	}

	require.Positive(t, c.FlamingTimer)
	limit := 4500 * config.Vehicle.FlamingSpeedRate
	assert.InDelta(t, limit, s.maxSpeed(c), 1e-9)
	assert.LessOrEqual(t, c.Body.Speed2D, limit+1e-9)

	c.tickTimers(config.Powerup.FlamingTime)
	assert.InDelta(t, 4500, s.maxSpeed(c), 1e-9)
}
