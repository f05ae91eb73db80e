package components

import "github.com/yohamta/donburi"

// EffectTallyData counts the presentation events the simulation published.
type EffectTallyData struct {
	Sounds   int
	Cues     int
	Sparks   int
	Splashes int
	Flags    int
}

var EffectTally = donburi.NewComponentType[EffectTallyData]()

// ScreenShakeData tracks active screen shake effect on the camera
type ScreenShakeData struct {
	Intensity float64 // max offset in pixels
	Duration  int     // frames remaining
	Elapsed   int     // frames elapsed (for oscillation)
}

var ScreenShake = donburi.NewComponentType[ScreenShakeData]()
