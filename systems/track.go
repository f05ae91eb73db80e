package systems

import (
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// trackData returns the track singleton.
func trackData(e *ecs.ECS) (*components.TrackData, bool) {
	return trackOf(e.World)
}

func trackOf(w donburi.World) (*components.TrackData, bool) {
	entry, ok := components.Track.First(w)
	if !ok {
		return nil, false
	}
	return components.Track.Get(entry), true
}

// TrackErr returns the error that stopped the simulation, if any.
func TrackErr(e *ecs.ECS) error {
	if td, ok := trackData(e); ok {
		return td.Err
	}
	return nil
}

// frameTime is the fixed step in seconds.
func frameTime() float64 {
	return 1 / float64(cfg.C.TickRate)
}

// fail records the first error and stops further stepping.
func fail(td *components.TrackData, err error, msg string) {
	if td.Err == nil {
		td.Err = err
	}
	td.Log.Error().Err(err).Uint64("frame", td.Frames).Msg(msg)
}
