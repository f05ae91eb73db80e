package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrBadGrid = errors.New("terrain: grid size does not match dimensions")

// Heightfield is a regular grid of height samples spaced CellSize apart,
// starting at Origin on the X/Z plane. Heights are bilinearly interpolated and
// positions outside the grid clamp to the nearest edge sample.
type Heightfield struct {
	Origin   mgl64.Vec2
	CellSize float64
	Cols     int
	Rows     int
	heights  []float64
	attribs  []Attrib
}

// NewHeightfield builds a field of cols*rows samples. attribs may be nil; when
// present it holds one entry per cell ((cols-1)*(rows-1)) or per sample.
func NewHeightfield(origin mgl64.Vec2, cellSize float64, cols, rows int, heights []float64, attribs []Attrib) (*Heightfield, error) {
	if cols < 2 || rows < 2 || len(heights) != cols*rows {
		return nil, fmt.Errorf("%w: %dx%d with %d samples", ErrBadGrid, cols, rows, len(heights))
	}
	if attribs != nil && len(attribs) != cols*rows && len(attribs) != (cols-1)*(rows-1) {
		return nil, fmt.Errorf("%w: %d attribs", ErrBadGrid, len(attribs))
	}
	return &Heightfield{
		Origin:   origin,
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		heights:  heights,
		attribs:  attribs,
	}, nil
}

func (h *Heightfield) sample(col, row int) float64 {
	col = clampInt(col, 0, h.Cols-1)
	row = clampInt(row, 0, h.Rows-1)
	return h.heights[row*h.Cols+col]
}

func (h *Heightfield) cell(x, z float64) (col, row int, fx, fz float64) {
	gx := (x - h.Origin.X()) / h.CellSize
	gz := (z - h.Origin.Y()) / h.CellSize
	gx = mgl64.Clamp(gx, 0, float64(h.Cols-1))
	gz = mgl64.Clamp(gz, 0, float64(h.Rows-1))
	col = int(math.Floor(gx))
	row = int(math.Floor(gz))
	if col == h.Cols-1 {
		col--
	}
	if row == h.Rows-1 {
		row--
	}
	return col, row, gx - float64(col), gz - float64(row)
}

func (h *Heightfield) Height(x, z float64) (float64, mgl64.Vec3) {
	col, row, fx, fz := h.cell(x, z)
	y00 := h.sample(col, row)
	y10 := h.sample(col+1, row)
	y01 := h.sample(col, row+1)
	y11 := h.sample(col+1, row+1)

	top := y00 + (y10-y00)*fx
	bottom := y01 + (y11-y01)*fx
	y := top + (bottom-top)*fz

	// gradient of the bilinear patch
	dydx := ((y10 - y00) + ((y11-y01)-(y10-y00))*fz) / h.CellSize
	dydz := ((y01 - y00) + ((y11-y10)-(y01-y00))*fx) / h.CellSize
	return y, mgl64.Vec3{-dydx, 1, -dydz}.Normalize()
}

func (h *Heightfield) AttribsAt(x, z float64) Attrib {
	if h.attribs == nil {
		return 0
	}
	col, row, fx, fz := h.cell(x, z)
	if len(h.attribs) == h.Cols*h.Rows {
		if fx >= .5 {
			col++
		}
		if fz >= .5 {
			row++
		}
		return h.attribs[row*h.Cols+col]
	}
	return h.attribs[row*(h.Cols-1)+col]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
