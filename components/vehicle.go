package components

import (
	"github.com/automoto/rallycore/vehicle"
	"github.com/yohamta/donburi"
)

// CarData points at the car shared with the collision object's Data field.
type CarData struct {
	*vehicle.Car
}

var Car = donburi.NewComponentType[CarData]()

type SubmarineData struct {
	*vehicle.Submarine
}

var Submarine = donburi.NewComponentType[SubmarineData]()

// PilotData is the CPU driver behind a car or submarine.
type PilotData struct {
	*vehicle.Pilot
}

var Pilot = donburi.NewComponentType[PilotData]()
