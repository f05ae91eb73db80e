// Package sim assembles the ECS world for a track and steps it at a fixed
// rate, with or without the viewer.
package sim

import (
	"fmt"

	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/systems"
	"github.com/automoto/rallycore/systems/factory"
	"github.com/automoto/rallycore/vehicle"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Options configure a simulated race.
type Options struct {
	Mode       vehicle.Mode
	Difficulty vehicle.Difficulty
	Humans     int
	CPUs       int
	Laps       int
	Stats      vehicle.Stats
	Log        zerolog.Logger

	// Viewer adds the keyboard and gamepad systems. Tuning, when set, saves
	// the tuning block on request.
	Viewer bool
	Tuning *systems.TuningStore
}

// DefaultStats are the ratings every car gets unless told otherwise.
var DefaultStats = vehicle.Stats{Speed: 4, Acceleration: 4, Traction: 4, Suspension: 4}

// Build creates a world for track with every update system registered.
// Renderers are left to the caller.
func Build(track *trackdata.Track, opts Options) (*ecs.ECS, error) {
	w := donburi.NewWorld()
	e := ecs.NewECS(w)

	if err := systems.SubscribeEffects(w, opts.Log.With().Str("component", "effects").Logger()); err != nil {
		return nil, err
	}
	systems.ShakeOnSparks(w)

	stats := opts.Stats
	if stats == (vehicle.Stats{}) {
		stats = DefaultStats
	}
	_, err := factory.CreateTrack(e, track, factory.Options{
		Mode:       opts.Mode,
		Difficulty: opts.Difficulty,
		Humans:     opts.Humans,
		CPUs:       opts.CPUs,
		Laps:       opts.Laps,
		Stats:      stats,
		Triggers:   systems.RaceTriggers(w),
		Effects:    systems.EffectPublisher{World: w},
		Log:        opts.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	factory.CreateCamera(e, track.Spawns[0].X, track.Spawns[0].Z)

	// Systems that run even when paused
	if opts.Viewer {
		e.AddSystem(systems.UpdateInput)
		e.AddSystem(systems.UpdateSettings)
		e.AddSystem(systems.SaveTuningSystem(opts.Tuning))
	}

	// Simulation systems wrapped with the pause check
	e.AddSystem(systems.WithPauseCheck(systems.UpdateHumanIntent))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateMovers))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateVehicles))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateRace))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateEffects))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateCamera))
	return e, nil
}
