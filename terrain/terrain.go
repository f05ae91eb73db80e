// Package terrain answers ground height, slope and surface questions for the
// collision and vehicle packages.
package terrain

import "github.com/go-gl/mathgl/mgl64"

// Attrib is a bitset of surface attributes stored per ground tile.
type Attrib uint16

const (
	AttribIce Attrib = 1 << iota
	AttribSnow
	AttribDirt
)

// Up is the normal of flat ground.
var Up = mgl64.Vec3{0, 1, 0}

// Oracle returns the ground height at (x, z) and the unit surface normal there.
type Oracle interface {
	Height(x, z float64) (float64, mgl64.Vec3)
}

// Surface reports the tile attributes at (x, z).
type Surface interface {
	AttribsAt(x, z float64) Attrib
}

// Flat is level ground at height Y.
type Flat struct {
	Y      float64
	Attrib Attrib
}

func (f Flat) Height(x, z float64) (float64, mgl64.Vec3) {
	return f.Y, Up
}

func (f Flat) AttribsAt(x, z float64) Attrib {
	return f.Attrib
}

// Plane is an inclined ground plane: y = Y + SlopeX*x + SlopeZ*z.
type Plane struct {
	Y      float64
	SlopeX float64
	SlopeZ float64
}

func (p Plane) Height(x, z float64) (float64, mgl64.Vec3) {
	return p.Y + p.SlopeX*x + p.SlopeZ*z, mgl64.Vec3{-p.SlopeX, 1, -p.SlopeZ}.Normalize()
}

func (p Plane) AttribsAt(x, z float64) Attrib {
	return 0
}
