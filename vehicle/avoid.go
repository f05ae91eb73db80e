package vehicle

import (
	"math"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

const tagAvoid = "avoid"

// Avoider is a flat X/Z index of the objects CPU drivers steer around. It
// mirrors each object's first box into a resolv space so a probe swept ahead
// of a car only looks at nearby cells.
type Avoider struct {
	space   *resolv.Space
	origin  mgl64.Vec2
	size    mgl64.Vec2
	probe   *resolv.Object
	shadows map[*collision.Object]*resolv.Object
}

// NewAvoider covers the world rectangle from lo to hi, given as X/Z pairs.
func NewAvoider(lo, hi mgl64.Vec2) *Avoider {
	cell := config.Avoid.CellSize
	size := hi.Sub(lo)
	w := max(int(math.Ceil(size.X())), cell)
	h := max(int(math.Ceil(size.Y())), cell)

	a := &Avoider{
		space:   resolv.NewSpace(w, h, cell, cell),
		origin:  lo,
		size:    mgl64.Vec2{float64(w), float64(h)},
		probe:   resolv.NewObject(0, 0, 1, 1),
		shadows: map[*collision.Object]*resolv.Object{},
	}
	a.space.Add(a.probe)
	return a
}

// Add indexes obj if it carries CTypeAvoid.
func (a *Avoider) Add(obj *collision.Object) {
	if !obj.CType.Has(collision.CTypeAvoid) || len(obj.Boxes) == 0 {
		return
	}
	if _, ok := a.shadows[obj]; ok {
		return
	}
	shadow := resolv.NewObject(0, 0, 1, 1, tagAvoid)
	shadow.Data = obj
	a.place(shadow, obj.Boxes[0].Extents)
	a.space.Add(shadow)
	a.shadows[obj] = shadow
}

// Remove drops obj from the index.
func (a *Avoider) Remove(obj *collision.Object) {
	if shadow, ok := a.shadows[obj]; ok {
		a.space.Remove(shadow)
		delete(a.shadows, obj)
	}
}

// Sync moves every shadow to its object's current box.
func (a *Avoider) Sync() {
	for obj, shadow := range a.shadows {
		if obj.Removed() {
			a.Remove(obj)
			continue
		}
		a.place(shadow, obj.Boxes[0].Extents)
	}
}

func (a *Avoider) Len() int {
	return len(a.shadows)
}

// place sets r to the X/Z footprint of e, clipped to the space.
func (a *Avoider) place(r *resolv.Object, e collision.Extents) {
	x0 := mgl64.Clamp(e.Left-a.origin.X(), 0, a.size.X()-1)
	x1 := mgl64.Clamp(e.Right-a.origin.X(), 0, a.size.X()-1)
	z0 := mgl64.Clamp(e.Back-a.origin.Y(), 0, a.size.Y()-1)
	z1 := mgl64.Clamp(e.Front-a.origin.Y(), 0, a.size.Y()-1)
	r.X, r.Y = x0, z0
	r.W, r.H = max(x1-x0, 1), max(z1-z0, 1)
	r.Update()
}

// Turn looks for an avoid object dead ahead within one second of travel and
// returns which way to steer: -1, 1, or 0 when the way is clear.
func (a *Avoider) Turn(coord mgl64.Vec3, yaw, speed2D float64) float64 {
	c := config.Avoid
	reach := speed2D * c.LookAhead
	if reach <= 0 || len(a.shadows) == 0 {
		return 0
	}
	aim := gamemath.Forward(yaw)
	ahead := coord.Add(aim.Mul(reach))

	a.place(a.probe, collision.Extents{
		Left: min(coord.X(), ahead.X()), Right: max(coord.X(), ahead.X()),
		Back: min(coord.Z(), ahead.Z()), Front: max(coord.Z(), ahead.Z()),
	})
	hit := a.probe.Check(0, 0, tagAvoid)
	if hit == nil {
		return 0
	}

	for _, o := range hit.ObjectsByTags(tagAvoid) {
		target, ok := o.Data.(*collision.Object)
		if !ok {
			continue
		}
		tx, tz := target.Coord.X()-coord.X(), target.Coord.Z()-coord.Z()
		if math.Hypot(tx, tz) >= reach {
			continue
		}
		nx, nz := gamemath.Normalize2D(tx, tz, config.Vehicle.Epsilon)
		if gamemath.SafeAcos(aim.X()*nx+aim.Z()*nz) >= c.ConeAngle {
			continue
		}
		if aim.X()*nz-aim.Z()*nx > 0 {
			return -1
		}
		return 1
	}
	return 0
}
