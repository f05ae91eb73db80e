package tags

import "github.com/yohamta/donburi"

var (
	Car       = donburi.NewTag().SetName("Car")
	Submarine = donburi.NewTag().SetName("Submarine")
	Hazard    = donburi.NewTag().SetName("Hazard")
	Liquid    = donburi.NewTag().SetName("Liquid")
	Trigger   = donburi.NewTag().SetName("Trigger")
	Mover     = donburi.NewTag().SetName("Mover")
	Human     = donburi.NewTag().SetName("Human")
	CPU       = donburi.NewTag().SetName("CPU")
)

// Trigger kinds handled by the race systems
const (
	TriggerCheckpoint = "checkpoint"
	TriggerBoost      = "boost"
	TriggerGate       = "gate"
	TriggerSticky     = "sticky-tires"
	TriggerSuspension = "suspension"
	TriggerLava       = "lava"
)
