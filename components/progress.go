package components

import "github.com/yohamta/donburi"

// ProgressData tracks a vehicle through the checkpoints.
type ProgressData struct {
	Checkpoint int // next checkpoint index to touch
	Lap        int
	Boosts     int
	Finished   bool
	Eliminated bool
}

var Progress = donburi.NewComponentType[ProgressData]()
