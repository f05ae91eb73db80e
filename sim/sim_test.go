package sim

import (
	"context"
	"testing"
	"time"

	"github.com/automoto/rallycore/assets"
	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/vehicle"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func build(t *testing.T, mode vehicle.Mode, cpus int) *Loop {
	t.Helper()
	e, err := Build(assets.MustLoadTrack("sandbox.tmx"), Options{
		Mode:       mode,
		Difficulty: vehicle.DifficultyHard,
		CPUs:       cpus,
		Laps:       1,
		Log:        zerolog.Nop(),
	})
	require.NoError(t, err)
	return NewLoop(e, 60, zerolog.Nop())
}

func TestBuildAndRun(t *testing.T) {
	for _, mode := range []vehicle.Mode{vehicle.ModeRace, vehicle.ModeTag1, vehicle.ModeSurvival, vehicle.ModeCaptureFlag} {
		t.Run(mode.String(), func(t *testing.T) {
			loop := build(t, mode, 4)
			require.NoError(t, loop.RunFrames(context.Background(), 300))
			assert.Equal(t, uint64(300), loop.Ticks())

			entry, ok := components.Track.First(loop.ecs.World)
			require.True(t, ok)
			td := components.Track.Get(entry)
			assert.Equal(t, uint64(300), td.Frames)

			moved := 0
			components.Car.Each(loop.ecs.World, func(entry *donburi.Entry) {
				if components.Car.Get(entry).Body.Speed2D > 0 {
					moved++
				}
			})
			assert.Positive(t, moved)
		})
	}
}

func TestBuildDefaultStats(t *testing.T) {
	loop := build(t, vehicle.ModeRace, 1)
	entry, ok := components.Car.First(loop.ecs.World)
	require.True(t, ok)
	want := DefaultStats.Derive(vehicle.DifficultyHard, true)
	assert.Equal(t, want, components.Car.Get(entry).Tune)
}

func TestRunFramesCancelled(t *testing.T) {
	loop := build(t, vehicle.ModeRace, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, loop.RunFrames(ctx, 100))
	assert.Zero(t, loop.Ticks())
}

func TestRunStopsOnContext(t *testing.T) {
	loop := build(t, vehicle.ModeRace, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, loop.Run(ctx))
	assert.Positive(t, loop.Ticks())
}
