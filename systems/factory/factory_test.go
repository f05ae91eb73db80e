package factory

import (
	"testing"

	"github.com/automoto/rallycore/assets"
	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/tags"
	"github.com/automoto/rallycore/vehicle"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func passThrough() collision.Triggers {
	t := collision.Triggers{}
	for _, kind := range []collision.TriggerKind{
		tags.TriggerCheckpoint, tags.TriggerBoost, tags.TriggerGate,
		tags.TriggerSticky, tags.TriggerSuspension, tags.TriggerLava,
	} {
		t.Register(kind, collision.TriggerFunc(func(_, _ *collision.Object, _ collision.Sides) bool { return false }))
	}
	return t
}

func options(mode vehicle.Mode, humans, cpus int) Options {
	return Options{
		Mode:     mode,
		Humans:   humans,
		CPUs:     cpus,
		Laps:     3,
		Stats:    vehicle.Stats{Speed: 4, Acceleration: 4, Traction: 4, Suspension: 4},
		Triggers: passThrough(),
		Log:      zerolog.Nop(),
	}
}

func createSandbox(t *testing.T, track *trackdata.Track, opts Options) (*ecs.ECS, *components.TrackData) {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	entry, err := CreateTrack(e, track, opts)
	require.NoError(t, err)
	return e, components.Track.Get(entry)
}

func count(e *ecs.ECS, q interface {
	Each(donburi.World, func(*donburi.Entry))
}) int {
	n := 0
	q.Each(e.World, func(*donburi.Entry) { n++ })
	return n
}

func TestHazardType(t *testing.T) {
	tests := []struct {
		flags     []string
		ctype     collision.CType
		touchable bool
	}{
		{nil, collision.CTypeMisc, false},
		{[]string{"avoid"}, collision.CTypeMisc | collision.CTypeAvoid, false},
		{[]string{"avoid", "impenetrable"}, collision.CTypeMisc | collision.CTypeAvoid | collision.CTypeImpenetrable, false},
		{[]string{"impenetrable2"}, collision.CTypeMisc | collision.CTypeImpenetrable | collision.CTypeImpenetrable2, false},
		{[]string{"viscous", "touchable"}, collision.CTypeViscous, true},
	}
	for _, tt := range tests {
		ctype, solidity, err := hazardType(tt.flags)
		require.NoError(t, err)
		assert.Equal(t, tt.ctype, ctype, "%v", tt.flags)
		assert.Equal(t, tt.touchable, solidity.IsTouchable(), "%v", tt.flags)
	}

	_, _, err := hazardType([]string{"avoid", "bouncy"})
	assert.ErrorIs(t, err, ErrUnknownFlag)
}

func TestCreateTrack(t *testing.T) {
	e, td := createSandbox(t, assets.MustLoadTrack("sandbox.tmx"), options(vehicle.ModeRace, 1, 3))

	// 8 hazards, a pond, 9 triggers, a log, 4 cars and a submarine
	assert.Equal(t, 24, td.Space.Len())
	assert.Equal(t, 4, td.Avoid.Len())
	assert.Len(t, td.Checkpoints, 4)
	assert.Equal(t, 3, td.Laps)
	assert.Len(t, td.Bodies, 5)

	assert.Equal(t, 4, count(e, components.Car))
	assert.Equal(t, 1, count(e, components.Submarine))
	assert.Equal(t, 1, count(e, tags.Human))
	assert.Equal(t, 4, count(e, tags.CPU))
	assert.Equal(t, 1, count(e, tags.Mover))
	assert.Equal(t, 1, count(e, tags.Liquid))

	// Vehicles sit first in the space
	for _, obj := range td.Space.Objects()[:5] {
		_, isCar := vehicle.CarOf(obj)
		_, isSub := vehicle.SubmarineOf(obj)
		assert.True(t, isCar || isSub, obj.Name)
	}

	components.Car.Each(e.World, func(entry *donburi.Entry) {
		c := components.Car.Get(entry).Car
		ground, _ := td.Ground.Height(c.Body.Coord.X(), c.Body.Coord.Z())
		assert.Greater(t, c.Body.Coord.Y(), ground, c.Body.Name)
		assert.Equal(t, c.CPU, entry.HasComponent(components.Pilot), c.Body.Name)
		assert.Equal(t, c.Player+1, c.Place)
	})
}

func TestCreateTrackGate(t *testing.T) {
	_, td := createSandbox(t, assets.MustLoadTrack("sandbox.tmx"), options(vehicle.ModeRace, 0, 0))

	var gate *collision.Object
	for _, obj := range td.Space.Objects() {
		if obj.Kind == tags.TriggerGate {
			gate = obj
		}
	}
	require.NotNil(t, gate)
	assert.False(t, gate.Solidity.IsTouchable())
	assert.Equal(t, collision.SideFront, gate.TriggerSides)
	assert.Equal(t, collision.CTypeTrigger, gate.CType)
}

func TestCreateTrackModes(t *testing.T) {
	_, td := createSandbox(t, assets.MustLoadTrack("sandbox.tmx"), options(vehicle.ModeTag1, 0, 4))
	require.NotNil(t, td.Race.WhoIsIt)
	assert.True(t, td.Race.WhoIsIt.IsIt)
	assert.Equal(t, 0, td.Race.WhoIsIt.Player)

	e, _ := createSandbox(t, assets.MustLoadTrack("sandbox.tmx"), options(vehicle.ModeCaptureFlag, 0, 4))
	flags := 0
	components.Car.Each(e.World, func(entry *donburi.Entry) {
		c := components.Car.Get(entry).Car
		assert.Equal(t, c.Player%2, c.Team)
		if c.HasFlag {
			flags++
		}
	})
	assert.Equal(t, 2, flags)
}

func TestCreateTrackErrors(t *testing.T) {
	t.Run("unknown trigger", func(t *testing.T) {
		opts := options(vehicle.ModeRace, 0, 1)
		delete(opts.Triggers, tags.TriggerGate)
		_, err := CreateTrack(ecs.NewECS(donburi.NewWorld()), assets.MustLoadTrack("sandbox.tmx"), opts)
		assert.ErrorIs(t, err, collision.ErrUnknownTrigger)
	})

	t.Run("unknown flag", func(t *testing.T) {
		track := assets.MustLoadTrack("sandbox.tmx")
		track.Hazards[0].Flags = []string{"bouncy"}
		_, err := CreateTrack(ecs.NewECS(donburi.NewWorld()), track, options(vehicle.ModeRace, 0, 1))
		assert.ErrorIs(t, err, ErrUnknownFlag)
	})

	t.Run("unknown surface", func(t *testing.T) {
		track := assets.MustLoadTrack("sandbox.tmx")
		track.Terrain.Surfaces[0] = "lava"
		_, err := CreateTrack(ecs.NewECS(donburi.NewWorld()), track, options(vehicle.ModeRace, 0, 1))
		assert.ErrorIs(t, err, ErrUnknownSurface)
	})
}

func TestNewMoverSequence(t *testing.T) {
	seq := NewMoverSequence(1)

	mid, _, done := seq.Update(1)
	assert.False(t, done)
	assert.InDelta(t, 1, mid, 1e-3)

	end, _, done := seq.Update(1.5)
	assert.True(t, done)
	assert.InDelta(t, 0, end, 1e-3)
}
