package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type CameraData struct {
	Position math.Vec2 // world X/Z at the screen centre
	Zoom     float64   // pixels per world unit
}

var Camera = donburi.NewComponentType[CameraData]()
