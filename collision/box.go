package collision

import "github.com/go-gl/mathgl/mgl64"

// Extents are the six planes of an axis-aligned box. Left/Right bound X,
// Bottom/Top bound Y and Back/Front bound Z.
type Extents struct {
	Left, Right float64
	Bottom, Top float64
	Back, Front float64
}

// Cube returns extents of a box centred on the origin with the given half size,
// resting on y=0.
func Cube(half, height float64) Extents {
	return Extents{Left: -half, Right: half, Bottom: 0, Top: height, Back: -half, Front: half}
}

// Translate moves the extents by v.
func (e Extents) Translate(v mgl64.Vec3) Extents {
	return Extents{
		Left: e.Left + v.X(), Right: e.Right + v.X(),
		Bottom: e.Bottom + v.Y(), Top: e.Top + v.Y(),
		Back: e.Back + v.Z(), Front: e.Front + v.Z(),
	}
}

// Overlaps is the inclusive six-plane intersection test.
func (e Extents) Overlaps(o Extents) bool {
	return e.Right >= o.Left && e.Left <= o.Right &&
		e.Front >= o.Back && e.Back <= o.Front &&
		e.Top >= o.Bottom && e.Bottom <= o.Top
}

// Center is the midpoint of the box.
func (e Extents) Center() mgl64.Vec3 {
	return mgl64.Vec3{(e.Left + e.Right) / 2, (e.Bottom + e.Top) / 2, (e.Back + e.Front) / 2}
}

// Box is a world-space box together with the extents it had before the
// current motion was applied.
type Box struct {
	Extents
	Old Extents
}
