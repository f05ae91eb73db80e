package systems

import (
	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// view maps world X/Z onto the screen, +Z pointing up.
type view struct {
	cx, cz float64
	zoom   float64
	w, h   float64
}

func newView(e *ecs.ECS, screen *ebiten.Image) (view, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return view{}, false // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)
	zoom := camera.Zoom
	if zoom == 0 {
		zoom = 1
	}
	sx, sy := shakeOffset(cameraEntry)
	return view{
		cx:   camera.Position.X + sx/zoom,
		cz:   camera.Position.Y + sy/zoom,
		zoom: zoom,
		w:    float64(screen.Bounds().Dx()),
		h:    float64(screen.Bounds().Dy()),
	}, true
}

func (v view) point(x, z float64) (float32, float32) {
	return float32(v.w/2 + (x-v.cx)*v.zoom), float32(v.h/2 - (z-v.cz)*v.zoom)
}

// rect returns the screen rectangle covering e's footprint.
func (v view) rect(e collision.Extents) (x, y, w, h float32) {
	x, y = v.point(e.Left, e.Front)
	return x, y, float32((e.Right - e.Left) * v.zoom), float32((e.Front - e.Back) * v.zoom)
}

func (v view) visible(x, y, w, h float32) bool {
	return x+w >= 0 && y+h >= 0 && float64(x) <= v.w && float64(y) <= v.h
}
