package systems

import (
	"cmp"
	"slices"

	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/vehicle"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateVehicles steps every car and submarine still in the race by one
// frame, in player order.
func UpdateVehicles(e *ecs.ECS) {
	td, ok := trackData(e)
	if !ok || td.Err != nil {
		return
	}
	td.Avoid.Sync()

	var cars []*vehicle.Car
	components.Car.Each(e.World, func(entry *donburi.Entry) {
		if components.Progress.Get(entry).Eliminated {
			return
		}
		cars = append(cars, components.Car.Get(entry).Car)
	})
	var subs []*vehicle.Submarine
	components.Submarine.Each(e.World, func(entry *donburi.Entry) {
		subs = append(subs, components.Submarine.Get(entry).Submarine)
	})
	slices.SortFunc(cars, func(a, b *vehicle.Car) int { return cmp.Compare(a.Player, b.Player) })
	slices.SortFunc(subs, func(a, b *vehicle.Submarine) int { return cmp.Compare(a.Player, b.Player) })

	if err := td.Sim.Frame(cars, subs, frameTime()); err != nil {
		fail(td, err, "vehicle step failed")
		return
	}
	td.Frames++
}
