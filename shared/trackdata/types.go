// Package trackdata parses TMX track files into plain data: terrain samples,
// hazards, liquids, triggers, movers, spawns and the CPU racing line. It has
// no dependency on the collision or ECS packages.
//
// A track is laid out top down. TMX x maps to world X and TMX y to world Z,
// both multiplied by the track scale.
package trackdata

// DefaultScale is the world units per TMX pixel when the terrain layer does
// not set worldScale.
const DefaultScale = 10.0

// Track is everything the simulation needs from one TMX file.
type Track struct {
	Name  string
	Scale float64
	Width float64 // world X extent
	Depth float64 // world Z extent

	Terrain  TerrainGrid
	Hazards  []Hazard
	Liquids  []Liquid
	Triggers []Trigger
	Movers   []Mover
	Spawns   []Spawn
	Path     []Point
}

// TerrainGrid holds one height sample per tile, taken at the tile centre.
type TerrainGrid struct {
	OriginX, OriginZ float64
	CellSize         float64
	Cols, Rows       int
	Heights          []float64
	Surfaces         []string // "", "ice", "snow" or "dirt" per sample
}

// Point is a position on the ground plane.
type Point struct {
	X, Z float64
}

// Rect is a ground-plane footprint.
type Rect struct {
	X, Z float64 // min corner
	W, D float64
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Z: r.Z + r.D/2}
}

// Hazard is a solid obstacle standing on the terrain.
type Hazard struct {
	Name   string
	Rect   Rect
	Y      float64 // bottom offset above the ground at the centre
	Height float64
	Flags  []string // any of avoid, impenetrable, impenetrable2, viscous, touchable
}

// Liquid is a water or lava volume. Top is absolute, not ground relative.
type Liquid struct {
	Name  string
	Rect  Rect
	Top   float64
	Depth float64
	Kind  string
}

// Trigger is a box that reacts when a vehicle enters it.
type Trigger struct {
	Name   string
	Rect   Rect
	Height float64
	Kind   string
	Sides  string // faces a vehicle may enter through, "" for touchable
	Index  int
}

// Mover is a hazard that slides back and forth along DX/DZ.
type Mover struct {
	Name   string
	Rect   Rect
	Height float64
	DX, DZ float64
	Period float64 // seconds for one leg
}

// Spawn is a starting grid slot.
type Spawn struct {
	Index   int
	X, Z    float64
	Yaw     float64
	Vehicle string // "car" or "submarine"
}
