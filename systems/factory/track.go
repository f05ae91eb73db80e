package factory

import (
	"errors"
	"fmt"
	"slices"

	"github.com/automoto/rallycore/archetypes"
	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/terrain"
	"github.com/automoto/rallycore/vehicle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	ErrUnknownFlag    = errors.New("unknown hazard flag")
	ErrUnknownSurface = errors.New("unknown surface name")
)

// Space slots. Vehicles come first so they are met before scenery.
const (
	slotVehicle = 0
	slotMover   = 10
	slotHazard  = 20
	slotLiquid  = 30
	slotTrigger = 40
)

// Options configure a race on a loaded track.
type Options struct {
	Mode       vehicle.Mode
	Difficulty vehicle.Difficulty
	Humans     int
	CPUs       int
	Laps       int
	Stats      vehicle.Stats
	Triggers   collision.Triggers
	Effects    vehicle.Effects
	Log        zerolog.Logger
}

// CreateTrack builds the collision world for track and spawns every hazard,
// liquid, trigger, mover and vehicle into ecs.
func CreateTrack(ecs *ecs.ECS, track *trackdata.Track, opts Options) (*donburi.Entry, error) {
	ground, err := newGround(track.Terrain)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", track.Name, err)
	}

	triggers := opts.Triggers
	if triggers == nil {
		triggers = collision.Triggers{}
	}
	for _, t := range track.Triggers {
		if _, ok := triggers[collision.TriggerKind(t.Kind)]; !ok {
			return nil, fmt.Errorf("track %s trigger %s: %w: %q", track.Name, t.Name, collision.ErrUnknownTrigger, t.Kind)
		}
	}

	space := collision.NewSpace(cfg.Collision.SentinelSlot)
	resolver, err := collision.NewResolver(space, ground, triggers)
	if err != nil {
		return nil, err
	}
	race := &vehicle.Race{Mode: opts.Mode, Difficulty: opts.Difficulty}
	log := opts.Log.With().Str("track", track.Name).Logger()
	sim, err := vehicle.NewSim(ground, resolver, race, log)
	if err != nil {
		return nil, err
	}
	if opts.Effects != nil {
		sim.Effects = opts.Effects
	}

	entry := archetypes.Track.Spawn(ecs)
	td := &components.TrackData{
		Track:    track,
		Ground:   ground,
		Space:    space,
		Resolver: resolver,
		Avoid:    vehicle.NewAvoider(mgl64.Vec2{}, mgl64.Vec2{track.Width, track.Depth}),
		Sim:      sim,
		Race:     race,
		Laps:     max(opts.Laps, 1),
		Bodies:   make(map[*collision.Object]donburi.Entity),
		Log:      log,
	}
	components.Track.Set(entry, td)

	for _, h := range track.Hazards {
		if _, err := CreateHazard(ecs, td, h); err != nil {
			return nil, err
		}
	}
	for _, l := range track.Liquids {
		CreateLiquid(ecs, td, l)
	}
	for _, t := range track.Triggers {
		if _, err := CreateTrigger(ecs, td, t); err != nil {
			return nil, err
		}
	}
	for _, m := range track.Movers {
		CreateMover(ecs, td, m)
	}
	spawnVehicles(ecs, td, opts)

	log.Info().
		Int("objects", space.Len()).
		Int("avoid", td.Avoid.Len()).
		Int("checkpoints", len(td.Checkpoints)).
		Str("mode", opts.Mode.String()).
		Msg("track created")
	return entry, nil
}

// newGround turns the tile samples into a heightfield with surface attributes.
func newGround(g trackdata.TerrainGrid) (*terrain.Heightfield, error) {
	attribs := make([]terrain.Attrib, len(g.Surfaces))
	for i, s := range g.Surfaces {
		a, err := surfaceAttrib(s)
		if err != nil {
			return nil, err
		}
		attribs[i] = a
	}
	return terrain.NewHeightfield(mgl64.Vec2{g.OriginX, g.OriginZ}, g.CellSize, g.Cols, g.Rows,
		slices.Clone(g.Heights), attribs)
}

func surfaceAttrib(name string) (terrain.Attrib, error) {
	switch name {
	case "", "default":
		return 0, nil
	case "ice":
		return terrain.AttribIce, nil
	case "snow":
		return terrain.AttribSnow, nil
	case "dirt":
		return terrain.AttribDirt, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
}

// groundAt is the terrain height under the middle of r.
func groundAt(td *components.TrackData, r trackdata.Rect) (mgl64.Vec3, float64) {
	c := r.Center()
	y, _ := td.Ground.Height(c.X, c.Z)
	return mgl64.Vec3{c.X, y, c.Z}, y
}

// boxShape is a footprint of r centred on the object's origin, rising from
// bottom to top.
func boxShape(r trackdata.Rect, bottom, top float64) collision.Extents {
	return collision.Extents{
		Left: -r.W / 2, Right: r.W / 2,
		Bottom: bottom, Top: top,
		Back: -r.D / 2, Front: r.D / 2,
	}
}
