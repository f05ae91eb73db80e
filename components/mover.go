package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// MoverData drives a hazard back and forth along Offset. Seq yields the
// fraction of Offset travelled.
type MoverData struct {
	Base   mgl64.Vec3
	Offset mgl64.Vec3
	Period float64
	Seq    *gween.Sequence
}

var Mover = donburi.NewComponentType[MoverData]()
