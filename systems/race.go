package systems

import (
	"cmp"
	"slices"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/tags"
	"github.com/automoto/rallycore/vehicle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// RaceTriggers returns the handlers for checkpoints, boost pads, one-way gates
// and the pickup pads. Every handler lets the vehicle pass through.
func RaceTriggers(world donburi.World) collision.Triggers {
	t := collision.Triggers{}
	t.Register(tags.TriggerCheckpoint, collision.TriggerFunc(func(trigger, who *collision.Object, _ collision.Sides) bool {
		td, entry, ok := vehicleEntry(world, who)
		if !ok {
			return false
		}
		idx, _ := trigger.Data.(int)
		if touchCheckpoint(td, components.Progress.Get(entry), idx) {
			td.Log.Debug().Str("vehicle", who.Name).Int("checkpoint", idx).Msg("checkpoint")
		}
		return false
	}))
	t.Register(tags.TriggerBoost, collision.TriggerFunc(func(trigger, who *collision.Object, _ collision.Sides) bool {
		_, entry, ok := vehicleEntry(world, who)
		if !ok {
			return false
		}
		if boost(who) {
			components.Progress.Get(entry).Boosts++
		}
		return false
	}))
	t.Register(tags.TriggerGate, collision.TriggerFunc(func(trigger, who *collision.Object, _ collision.Sides) bool {
		return false
	}))
	t.Register(tags.TriggerSticky, pickup(world, vehicle.CueStickyTires, (*vehicle.Car).SetStickyTires))
	t.Register(tags.TriggerSuspension, pickup(world, vehicle.CueSuspension, (*vehicle.Car).SetSuperSuspension))
	t.Register(tags.TriggerLava, collision.TriggerFunc(func(trigger, who *collision.Object, _ collision.Sides) bool {
		if c, ok := vehicle.CarOf(who); ok {
			c.SetAflame()
		}
		return false
	}))
	return t
}

// pickup hands a car a timed tune change. Human drivers hear the announcer
// when they did not have it already.
func pickup(world donburi.World, cue vehicle.Cue, apply func(*vehicle.Car, vehicle.Difficulty) bool) collision.Trigger {
	return collision.TriggerFunc(func(trigger, who *collision.Object, _ collision.Sides) bool {
		td, ok := trackOf(world)
		c, isCar := vehicle.CarOf(who)
		if !ok || !isCar {
			return false
		}
		if apply(c, td.Race.Difficulty) && !c.CPU {
			td.Sim.Effects.Announce(cue, cfg.Powerup.AnnounceDelay)
		}
		td.Log.Debug().Str("car", who.Name).Str("pickup", string(trigger.Kind)).Msg("pickup")
		return false
	})
}

func vehicleEntry(world donburi.World, body *collision.Object) (*components.TrackData, *donburi.Entry, bool) {
	td, ok := trackOf(world)
	if !ok {
		return nil, nil, false
	}
	entity, ok := td.Bodies[body]
	if !ok || !world.Valid(entity) {
		return nil, nil, false
	}
	return td, world.Entry(entity), true
}

// touchCheckpoint advances p when idx is the next checkpoint. Touching the
// last checkpoint completes a lap.
func touchCheckpoint(td *components.TrackData, p *components.ProgressData, idx int) bool {
	if p.Finished || idx != p.Checkpoint {
		return false
	}
	p.Checkpoint++
	if p.Checkpoint >= len(td.Checkpoints) {
		p.Checkpoint = 0
		p.Lap++
		p.Finished = p.Lap >= td.Laps
	}
	return true
}

// boost lights the nitro of whatever drove over the pad.
func boost(body *collision.Object) bool {
	if c, ok := vehicle.CarOf(body); ok && c.NitroTimer <= 0 {
		c.NitroTimer = cfg.Vehicle.NitroTime
		return true
	}
	if s, ok := vehicle.SubmarineOf(body); ok && s.NitroTimer <= 0 {
		s.NitroTimer = cfg.Vehicle.NitroTime
		return true
	}
	return false
}

type standing struct {
	entry    *donburi.Entry
	body     *collision.Object
	progress *components.ProgressData
	place    *int
	human    bool
	dist     float64
}

// UpdateRace ranks the vehicles, eliminates wrecked survival cars and marks
// the race complete once every human has finished.
func UpdateRace(e *ecs.ECS) {
	td, ok := trackData(e)
	if !ok || td.Err != nil {
		return
	}

	var field []standing
	components.Car.Each(e.World, func(entry *donburi.Entry) {
		c := components.Car.Get(entry).Car
		field = append(field, standing{entry: entry, body: c.Body, place: &c.Place, human: !c.CPU})
	})
	components.Submarine.Each(e.World, func(entry *donburi.Entry) {
		s := components.Submarine.Get(entry).Submarine
		field = append(field, standing{entry: entry, body: s.Body, place: &s.Place})
	})

	for i := range field {
		s := &field[i]
		s.progress = components.Progress.Get(s.entry)
		if c, ok := vehicle.CarOf(s.body); ok && c.Eliminated() && !s.progress.Eliminated {
			eliminate(td, s.entry, c)
		}
		s.dist = distToNext(td, s.body.Coord, s.progress.Checkpoint)
	}

	rank(field)
	humans, humansDone, allDone := 0, 0, 0
	worst := len(field)
	for i, s := range field {
		*s.place = i + 1
		if s.progress.Finished {
			allDone++
		}
		if s.human {
			humans++
			worst = i + 1
			if s.progress.Finished {
				humansDone++
			}
		}
	}
	td.Race.WorstHumanPlace = worst

	complete := humans > 0 && humansDone == humans ||
		humans == 0 && len(field) > 0 && allDone == len(field)
	if complete && !td.Race.Completed {
		td.Race.Completed = true
		td.Log.Info().Uint64("frame", td.Frames).Msg("race complete")
	}
}

// rank orders the field: still racing before eliminated, then laps,
// checkpoints and distance to the next checkpoint.
func rank(field []standing) {
	slices.SortStableFunc(field, func(a, b standing) int {
		pa, pb := a.progress, b.progress
		if pa.Eliminated != pb.Eliminated {
			if pa.Eliminated {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(pb.Lap, pa.Lap); c != 0 {
			return c
		}
		if c := cmp.Compare(pb.Checkpoint, pa.Checkpoint); c != 0 {
			return c
		}
		return cmp.Compare(a.dist, b.dist)
	})
}

func distToNext(td *components.TrackData, at mgl64.Vec3, next int) float64 {
	if next >= len(td.Checkpoints) {
		return 0
	}
	cp := td.Checkpoints[next]
	return mgl64.Vec2{at.X() - cp.X(), at.Z() - cp.Z()}.Len()
}

// eliminate takes a wrecked car out of the collision space. Its entity stays
// so the standings still list it.
func eliminate(td *components.TrackData, entry *donburi.Entry, c *vehicle.Car) {
	components.Progress.Get(entry).Eliminated = true
	td.Space.Remove(c.Body)
	td.Log.Info().Str("car", c.Body.Name).Int("place", c.Place).Msg("car eliminated")
}
