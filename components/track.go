package components

import (
	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/terrain"
	"github.com/automoto/rallycore/vehicle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// TrackData is the singleton holding everything the simulation steps against.
type TrackData struct {
	Track    *trackdata.Track
	Ground   *terrain.Heightfield
	Space    *collision.Space
	Resolver *collision.Resolver
	Avoid    *vehicle.Avoider
	Sim      *vehicle.Sim
	Race     *vehicle.Race
	Log      zerolog.Logger

	Laps        int
	Checkpoints []mgl64.Vec3 // centres by checkpoint index
	Bodies      map[*collision.Object]donburi.Entity

	Frames uint64
	Err    error // first simulation error; the world stops stepping once set
}

var Track = donburi.NewComponentType[TrackData]()
