package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TriggerKind selects the handler a trigger object dispatches to.
type TriggerKind string

// Motion is a proposed move for an object: where it wants to be at the end of
// the step, its velocity, and the length of the step in seconds.
type Motion struct {
	Coord mgl64.Vec3
	Delta mgl64.Vec3
	Dt    float64
}

// Object is anything that takes part in collision: vehicles, walls, hazards,
// liquid volumes and triggers.
type Object struct {
	Name string

	Coord    mgl64.Vec3
	OldCoord mgl64.Vec3
	Delta    mgl64.Vec3 // units per second
	Rot      mgl64.Vec3 // pitch, yaw, roll
	DeltaRot mgl64.Vec3

	// Shapes are box extents relative to Coord. Boxes mirrors them in world
	// space and is rebuilt by UpdateBoxes.
	Shapes []Extents
	Boxes  []Box

	CType        CType
	Solidity     Solidity
	TriggerSides Sides // faces of a directional trigger that fire its handler
	Kind         TriggerKind
	Slot         int
	Chain        *Object // never collides with its owner

	OnGround  bool
	OnTerrain bool
	Speed2D   float64
	Speed3D   float64

	Data any

	removed bool
}

// NewObject builds an object at coord with one box per shape.
func NewObject(name string, coord mgl64.Vec3, ctype CType, solidity Solidity, shapes ...Extents) *Object {
	o := &Object{
		Name:     name,
		Coord:    coord,
		OldCoord: coord,
		CType:    ctype,
		Solidity: solidity,
		Shapes:   shapes,
	}
	o.UpdateBoxes()
	o.KeepOld()
	return o
}

// UpdateBoxesAt rebuilds the world boxes as if the object were at coord,
// leaving the old extents untouched.
func (o *Object) UpdateBoxesAt(coord mgl64.Vec3) {
	if len(o.Boxes) != len(o.Shapes) {
		boxes := make([]Box, len(o.Shapes))
		copy(boxes, o.Boxes)
		o.Boxes = boxes
	}
	for i, s := range o.Shapes {
		o.Boxes[i].Extents = s.Translate(coord)
	}
}

// UpdateBoxes rebuilds the world boxes at the current coordinate.
func (o *Object) UpdateBoxes() {
	o.UpdateBoxesAt(o.Coord)
}

// KeepOld snapshots the current position and boxes as the previous ones.
func (o *Object) KeepOld() {
	o.OldCoord = o.Coord
	for i := range o.Boxes {
		o.Boxes[i].Old = o.Boxes[i].Extents
	}
}

// Removed reports whether the object was taken out of its space.
func (o *Object) Removed() bool {
	return o.removed
}

// Commit accepts a resolved motion as the object's new state.
func (o *Object) Commit(m *Motion) {
	o.Coord = m.Coord
	o.Delta = m.Delta
	o.UpdateBoxes()
	o.Speed2D = math.Hypot(o.Delta.X(), o.Delta.Z())
	o.Speed3D = o.Delta.Len()
}

// Box returns the first world box, which by convention is the main body.
func (o *Object) Box() (Box, bool) {
	if len(o.Boxes) == 0 {
		return Box{}, false
	}
	return o.Boxes[0], true
}
