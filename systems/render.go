package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawTrack shades each terrain tile by height and surface.
func DrawTrack(ecs *ecs.ECS, screen *ebiten.Image) {
	td, ok := trackData(ecs)
	if !ok {
		return
	}
	v, ok := newView(ecs, screen)
	if !ok {
		return
	}

	g := td.Track.Terrain
	size := float32(g.CellSize * v.zoom)
	for row := range g.Rows {
		for col := range g.Cols {
			i := row*g.Cols + col
			cx := g.OriginX + float64(col)*g.CellSize
			cz := g.OriginZ + float64(row)*g.CellSize
			x, y := v.point(cx-g.CellSize/2, cz+g.CellSize/2)
			if !v.visible(x, y, size, size) {
				continue
			}
			vector.FillRect(screen, x, y, size, size, tileColor(g.Heights[i], g.Surfaces[i]), false)
		}
	}
}

func tileColor(height float64, surface string) color.RGBA {
	switch surface {
	case "ice":
		return color.RGBA{170, 220, 240, 255}
	case "snow":
		return color.RGBA{235, 235, 245, 255}
	}
	shade := uint8(max(0, min(255, 90+height/8)))
	return color.RGBA{30, shade, 40, 255}
}
