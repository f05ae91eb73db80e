package factory

import (
	"strconv"

	"github.com/automoto/rallycore/archetypes"
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/tags"
	"github.com/automoto/rallycore/vehicle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// spawnVehicles fills the starting grid: humans take the first car slots,
// CPU cars the rest. Submarine spawns always get a CPU submarine.
func spawnVehicles(ecs *ecs.ECS, td *components.TrackData, opts Options) {
	path := make([]mgl64.Vec3, len(td.Track.Path))
	for i, p := range td.Track.Path {
		path[i] = mgl64.Vec3{p.X, 0, p.Z}
	}

	player := 0
	humans, cpus := opts.Humans, opts.CPUs
	var cars []*vehicle.Car
	for _, s := range td.Track.Spawns {
		switch s.Vehicle {
		case "submarine":
			pilot := vehicle.NewPilot(path, td.Avoid, opts.Difficulty)
			CreateSubmarine(ecs, td, s, player, opts.Stats.Derive(opts.Difficulty, true), pilot)
			player++
		default:
			var pilot *vehicle.Pilot
			switch {
			case humans > 0:
				humans--
			case cpus > 0:
				cpus--
				pilot = vehicle.NewPilot(path, td.Avoid, opts.Difficulty)
			default:
				continue
			}
			e := CreateCar(ecs, td, s, player, opts.Stats.Derive(opts.Difficulty, pilot != nil), pilot)
			cars = append(cars, components.Car.Get(e).Car)
			player++
		}
	}

	switch {
	case opts.Mode.IsTag() && len(cars) > 0:
		cars[0].IsIt = true
		td.Race.WhoIsIt = cars[0]
	case opts.Mode == vehicle.ModeCaptureFlag:
		for i, c := range cars {
			c.Team = i % 2
			c.HasFlag = i < 2
		}
	}
}

// CreateCar drops a car just above the ground at a spawn point. A nil pilot
// makes it a human car.
func CreateCar(ecs *ecs.ECS, td *components.TrackData, s trackdata.Spawn, player int, tune vehicle.Tune, pilot *vehicle.Pilot) *donburi.Entry {
	var entry *donburi.Entry
	if pilot != nil {
		entry = archetypes.Car.Spawn(ecs, tags.CPU, components.Pilot)
	} else {
		entry = archetypes.Car.Spawn(ecs, tags.Human)
	}

	y, _ := td.Ground.Height(s.X, s.Z)
	y += cfg.Vehicle.SpawnHeightAboveSoil - cfg.Vehicle.DefaultBottomOffset
	car := vehicle.NewCar(carName(player, pilot != nil), mgl64.Vec3{s.X, y, s.Z}, s.Yaw, tune)
	car.Player = player
	car.Place = player + 1
	car.CPU = pilot != nil
	if pilot != nil {
		car.Driver = pilot
		components.Pilot.SetValue(entry, components.PilotData{Pilot: pilot})
	}
	car.Body.Slot = slotVehicle

	components.Car.SetValue(entry, components.CarData{Car: car})
	components.Object.SetValue(entry, components.ObjectData{Object: car.Body})
	td.Space.Add(car.Body)
	td.Bodies[car.Body] = entry.Entity()
	return entry
}

// CreateSubmarine places a CPU submarine at the bottom of its depth band.
func CreateSubmarine(ecs *ecs.ECS, td *components.TrackData, s trackdata.Spawn, player int, tune vehicle.Tune, pilot *vehicle.Pilot) *donburi.Entry {
	entry := archetypes.Submarine.Spawn(ecs, tags.CPU, components.Pilot)

	y, _ := td.Ground.Height(s.X, s.Z)
	y += cfg.Submarine.MinHeight - cfg.Vehicle.DefaultBottomOffset
	sub := vehicle.NewSubmarine(carName(player, true), mgl64.Vec3{s.X, y, s.Z}, s.Yaw, tune)
	sub.Player = player
	sub.Place = player + 1
	sub.CPU = true
	sub.Driver = pilot
	sub.Body.Slot = slotVehicle

	components.Submarine.SetValue(entry, components.SubmarineData{Submarine: sub})
	components.Pilot.SetValue(entry, components.PilotData{Pilot: pilot})
	components.Object.SetValue(entry, components.ObjectData{Object: sub.Body})
	td.Space.Add(sub.Body)
	td.Bodies[sub.Body] = entry.Entity()
	return entry
}

func carName(player int, cpu bool) string {
	if cpu {
		return "cpu" + strconv.Itoa(player)
	}
	return "player" + strconv.Itoa(player)
}
