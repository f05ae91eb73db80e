package systems

import (
	"image/color"
	"math"

	"github.com/automoto/rallycore/collision"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug outlines every collision box in the space from above, with a
// heading line on vehicles.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(ecs)
	if !settings.ShowBoxes {
		return
	}
	td, ok := trackData(ecs)
	if !ok {
		return
	}
	v, ok := newView(ecs, screen)
	if !ok {
		return
	}

	for _, obj := range td.Space.Objects() {
		c := boxColor(obj)
		for _, b := range obj.Boxes {
			x, y, w, h := v.rect(b.Extents)
			// Cull objects outside viewport
			if !v.visible(x, y, w, h) {
				continue
			}
			vector.StrokeRect(screen, x, y, w, h, 1, c, false)
		}

		if obj.CType.Has(collision.CTypePlayer) {
			yaw := obj.Rot.Y()
			x0, y0 := v.point(obj.Coord.X(), obj.Coord.Z())
			x1, y1 := v.point(obj.Coord.X()+math.Sin(yaw)*200, obj.Coord.Z()+math.Cos(yaw)*200)
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, c, false)
		}
	}
}

// boxColor picks an outline colour from the capability mask.
func boxColor(obj *collision.Object) color.RGBA {
	switch {
	case obj.CType.Has(collision.CTypePlayer):
		return color.RGBA{0, 0, 255, 255} // Blue
	case obj.CType.Has(collision.CTypeImpenetrable):
		return color.RGBA{100, 100, 100, 255} // Grey
	case obj.CType.Has(collision.CTypeLiquid):
		return color.RGBA{0, 160, 255, 255}
	case obj.CType.Has(collision.CTypeTrigger):
		return color.RGBA{255, 220, 0, 255}
	case obj.CType.Has(collision.CTypeViscous):
		return color.RGBA{140, 90, 40, 255}
	case obj.CType.Has(collision.CTypeAvoid):
		return color.RGBA{255, 0, 0, 255} // Red
	}
	return color.RGBA{0, 255, 255, 255} // Cyan default
}
