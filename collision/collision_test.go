package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func newMover(from, to mgl64.Vec3) (*Object, *Motion) {
	obj := NewObject("car", from, CTypePlayer, Solid(AllSides), Cube(50, 100))
	delta := to.Sub(from).Mul(1 / dt)
	obj.Delta = delta
	return obj, &Motion{Coord: to, Delta: delta, Dt: dt}
}

func newBlock(name string, ext Extents, ctype CType) *Object {
	return NewObject(name, mgl64.Vec3{}, ctype, Solid(AllSides), ext)
}

func newResolver(t *testing.T, objs ...*Object) *Resolver {
	t.Helper()
	space := NewSpace(1000)
	for _, o := range objs {
		space.Add(o)
	}
	r, err := NewResolver(space, nil, nil)
	require.NoError(t, err)
	return r
}

func TestSidesOpposite(t *testing.T) {
	assert.Equal(t, SideLeft, SideRight.Opposite())
	assert.Equal(t, SideTop|SideBack, (SideBottom | SideFront).Opposite())
	assert.Equal(t, AllSides, AllSides.Opposite())
	assert.Equal(t, "bottom|front", (SideBottom | SideFront).String())
	assert.Equal(t, "none", Sides(0).String())
}

func TestSolidity(t *testing.T) {
	assert.False(t, Solidity{}.Collidable())
	assert.True(t, Touchable().Collidable())
	assert.Equal(t, Sides(0), Touchable().Sides())
	assert.False(t, Solid(SideTop).IsTouchable())
	assert.Equal(t, AllSides, Solid(0xff).Sides())
}

func TestSpaceKeepsSlotOrder(t *testing.T) {
	s := NewSpace(1000)
	a := &Object{Name: "a", Slot: 5}
	b := &Object{Name: "b", Slot: 1}
	c := &Object{Name: "c", Slot: 5}
	d := &Object{Name: "d", Slot: 3}
	for _, o := range []*Object{a, b, c, d} {
		s.Add(o)
	}

	var names []string
	for _, o := range s.Objects() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, names)

	s.Remove(d)
	assert.True(t, d.Removed())
	assert.Equal(t, 3, s.Len())
}

func TestDetectNoOverlap(t *testing.T) {
	wall := newBlock("wall", Extents{Left: 500, Right: 600, Bottom: 0, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	obj, m := newMover(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0})
	s := NewSpace(1000)
	s.Add(wall)

	list := NewCollisions(10)
	obj.UpdateBoxesAt(m.Coord)
	sides, err := s.Detect(obj, m, PlayerMask, list)
	require.NoError(t, err)
	assert.Zero(t, sides)
	assert.Zero(t, list.Len())
}

func TestDetectSweptSide(t *testing.T) {
	wall := newBlock("wall", Extents{Left: 100, Right: 200, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	obj, m := newMover(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{80, 0, 0})
	s := NewSpace(1000)
	s.Add(wall)

	list := NewCollisions(10)
	obj.UpdateBoxesAt(m.Coord)
	sides, err := s.Detect(obj, m, PlayerMask, list)
	require.NoError(t, err)

	assert.Equal(t, SideRight, sides)
	require.Equal(t, 1, list.Len())
	rec := list.Records()[0]
	assert.Equal(t, wall, rec.Target)
	assert.Equal(t, SideLeft, rec.TargetFace())
	assert.Equal(t, KindObject, rec.Kind)
}

func TestDetectRestingContactHasNoSides(t *testing.T) {
	floor := newBlock("floor", Extents{Left: -500, Right: 500, Bottom: -100, Top: 0, Back: -500, Front: 500}, CTypeMisc)
	obj, m := newMover(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{20, 0, 0})
	s := NewSpace(1000)
	s.Add(floor)

	list := NewCollisions(10)
	obj.UpdateBoxesAt(m.Coord)
	sides, err := s.Detect(obj, m, PlayerMask, list)
	require.NoError(t, err)
	assert.Zero(t, sides, "sliding along the floor must not report the floor")
	assert.Zero(t, list.Len())
}

func TestDetectUsesRelativeMotion(t *testing.T) {
	// The wall moves toward the stationary car faster than the car moves away.
	wall := newBlock("door", Extents{Left: 45, Right: 200, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	wall.Boxes[0].Old = wall.Shapes[0].Translate(mgl64.Vec3{10, 0, 0})
	wall.Delta = mgl64.Vec3{-600, 0, 0}
	obj, m := newMover(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{-1, 0, 0})

	s := NewSpace(1000)
	s.Add(wall)
	list := NewCollisions(10)
	obj.UpdateBoxesAt(m.Coord)
	sides, err := s.Detect(obj, m, PlayerMask, list)
	require.NoError(t, err)
	assert.Equal(t, SideRight, sides)
}

func TestDetectSkips(t *testing.T) {
	ext := Extents{Left: -10, Right: 10, Bottom: 0, Top: 10, Back: -10, Front: 10}
	owner := newBlock("owner", ext, CTypeMisc)
	gone := newBlock("gone", ext, CTypeMisc)
	other := newBlock("avoid-only", ext, CTypeAvoid)
	ghost := NewObject("ghost", mgl64.Vec3{}, CTypeMisc, Solidity{}, ext)

	s := NewSpace(1000)
	for _, o := range []*Object{owner, gone, other, ghost} {
		s.Add(o)
	}
	s.Remove(gone)

	obj := NewObject("shell", mgl64.Vec3{}, CTypeMisc, Touchable(), ext)
	obj.Chain = owner
	s.Add(obj)

	list := NewCollisions(10)
	_, err := s.Detect(obj, &Motion{Coord: obj.Coord, Dt: dt}, PlayerMask, list)
	require.NoError(t, err)
	assert.Zero(t, list.Len())
}

func TestDetectTouchable(t *testing.T) {
	pickup := NewObject("pickup", mgl64.Vec3{}, CTypeMisc, Touchable(), Cube(20, 20))
	obj, m := newMover(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0})
	s := NewSpace(1000)
	s.Add(pickup)

	list := NewCollisions(10)
	obj.UpdateBoxesAt(m.Coord)
	sides, err := s.Detect(obj, m, PlayerMask, list)
	require.NoError(t, err)
	assert.Zero(t, sides)
	assert.Equal(t, 1, list.Len())
}

func TestDetectImpenetrableAlwaysRecorded(t *testing.T) {
	rock := newBlock("rock", Cube(20, 20), CTypeMisc|CTypeImpenetrable)
	obj, m := newMover(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0})
	s := NewSpace(1000)
	s.Add(rock)

	list := NewCollisions(10)
	obj.UpdateBoxesAt(m.Coord)
	_, err := s.Detect(obj, m, PlayerMask, list)
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())
	assert.Zero(t, list.Records()[0].Sides)
}

func TestDetectCapacity(t *testing.T) {
	s := NewSpace(1000)
	for range 3 {
		s.Add(NewObject("pickup", mgl64.Vec3{}, CTypeMisc, Touchable(), Cube(20, 20)))
	}
	obj, m := newMover(mgl64.Vec3{}, mgl64.Vec3{})
	obj.UpdateBoxesAt(m.Coord)

	_, err := s.Detect(obj, m, PlayerMask, NewCollisions(2))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestNoCollisionBox(t *testing.T) {
	r := newResolver(t)
	obj := &Object{Name: "bare"}

	_, err := r.Resolve(obj, &Motion{Dt: dt}, PlayerMask, 0)
	assert.ErrorIs(t, err, ErrNoCollisionBox)

	_, err = r.Space.Detect(obj, &Motion{Dt: dt}, PlayerMask, NewCollisions(1))
	assert.ErrorIs(t, err, ErrNoCollisionBox)
}

func TestResolveWall(t *testing.T) {
	wall := newBlock("wall", Extents{Left: 100, Right: 200, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	r := newResolver(t, wall)
	obj, m := newMover(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{80, 0, 0})

	res, err := r.Resolve(obj, m, PlayerMask, 0.5)
	require.NoError(t, err)

	assert.Equal(t, SideRight, res.Sides)
	assert.InDelta(t, 49, m.Coord.X(), 1e-9)
	assert.InDelta(t, 80/dt*0.5, m.Delta.X(), 1e-6)
	assert.False(t, res.OnGround)
}

func TestResolveLanding(t *testing.T) {
	floor := newBlock("floor", Extents{Left: -500, Right: 500, Bottom: -100, Top: 0, Back: -500, Front: 500}, CTypeMisc)
	r := newResolver(t, floor)
	obj, m := newMover(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -20, 0})

	res, err := r.Resolve(obj, m, PlayerMask, 0)
	require.NoError(t, err)

	assert.True(t, res.OnGround)
	assert.InDelta(t, 1, m.Coord.Y(), 1e-9)
	assert.Zero(t, m.Delta.Y())
}

func TestResolveCornerPasses(t *testing.T) {
	floor := newBlock("floor", Extents{Left: -500, Right: 500, Bottom: -100, Top: 0, Back: -500, Front: 500}, CTypeMisc)
	east := newBlock("east", Extents{Left: 70, Right: 200, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	north := newBlock("north", Extents{Left: -500, Right: 500, Bottom: -100, Top: 500, Back: 70, Front: 200}, CTypeMisc)
	r := newResolver(t, floor, east, north)
	obj, m := newMover(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{30, -20, 30})

	res, err := r.Resolve(obj, m, PlayerMask, 0)
	require.NoError(t, err)

	assert.Equal(t, SideRight|SideFront|SideBottom, res.Sides)
	assert.LessOrEqual(t, res.Passes, r.MaxPasses)
	assert.True(t, m.Coord.ApproxEqualThreshold(mgl64.Vec3{19, 1, 19}, 1e-9), "got %v", m.Coord)
	assert.Equal(t, mgl64.Vec3{}, m.Delta)
}

func TestResolvePassLimit(t *testing.T) {
	east := newBlock("east", Extents{Left: 70, Right: 200, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	r := newResolver(t, east)
	r.MaxPasses = 1
	obj, m := newMover(mgl64.Vec3{}, mgl64.Vec3{30, 0, 0})

	res, err := r.Resolve(obj, m, PlayerMask, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passes)
}

func TestResolveEnclosureIsBounded(t *testing.T) {
	floor := newBlock("floor", Extents{Left: -500, Right: 500, Bottom: -100, Top: 0, Back: -500, Front: 500}, CTypeMisc)
	east := newBlock("east", Extents{Left: 60, Right: 200, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	west := newBlock("west", Extents{Left: -200, Right: -60, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
	north := newBlock("north", Extents{Left: -500, Right: 500, Bottom: -100, Top: 500, Back: 60, Front: 200}, CTypeMisc)
	south := newBlock("south", Extents{Left: -500, Right: 500, Bottom: -100, Top: 500, Back: -200, Front: -60}, CTypeMisc)
	r := newResolver(t, floor, east, west, north, south)
	require.Equal(t, 3, r.MaxPasses)
	obj, m := newMover(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{20, -20, 20})

	res, err := r.Resolve(obj, m, PlayerMask, 0)
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Passes, 3)
	assert.True(t, res.OnGround)
	assert.True(t, m.Coord.ApproxEqualThreshold(mgl64.Vec3{9, 1, 9}, 1e-9), "got %v", m.Coord)
}

func TestResolveImpenetrableWins(t *testing.T) {
	for _, impFirst := range []bool{true, false} {
		soft := newBlock("soft", Extents{Left: 100, Right: 300, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc)
		hard := newBlock("hard", Extents{Left: 120, Right: 300, Bottom: -100, Top: 500, Back: -500, Front: 500}, CTypeMisc|CTypeImpenetrable)
		if impFirst {
			hard.Slot, soft.Slot = 0, 1
		} else {
			soft.Slot, hard.Slot = 0, 1
		}
		r := newResolver(t, soft, hard)
		obj, m := newMover(mgl64.Vec3{}, mgl64.Vec3{100, 0, 0})

		res, err := r.Resolve(obj, m, PlayerMask, 0)
		require.NoError(t, err)

		assert.True(t, res.Impenetrable)
		assert.Equal(t, 1, res.Passes)
		// right face at 150 pushed back to 119
		assert.InDelta(t, 69, m.Coord.X(), 1e-9, "impenetrable first=%v", impFirst)
	}
}

func TestResolveSkipsObjectRemovedByTrigger(t *testing.T) {
	s := NewSpace(1000)
	pickup := NewObject("pickup", mgl64.Vec3{}, CTypeMisc|CTypeTrigger, Touchable(), Cube(20, 20))
	pickup.Kind = "pickup"
	s.Add(pickup)

	hits := 0
	triggers := Triggers{}
	triggers.Register("pickup", TriggerFunc(func(trigger, _ *Object, _ Sides) bool {
		hits++
		s.Remove(trigger)
		return false
	}))
	r, err := NewResolver(s, nil, triggers)
	require.NoError(t, err)

	obj, m := newMover(mgl64.Vec3{}, mgl64.Vec3{})
	_, err = r.Resolve(obj, m, PlayerMask, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Zero(t, s.Len())
}

type flatGround float64

func (g flatGround) Height(float64, float64) (float64, mgl64.Vec3) {
	return float64(g), mgl64.Vec3{0, 1, 0}
}

func TestResolveTerrainClamp(t *testing.T) {
	s := NewSpace(1000)
	r, err := NewResolver(s, flatGround(50), nil)
	require.NoError(t, err)
	obj, m := newMover(mgl64.Vec3{0, 60, 0}, mgl64.Vec3{0, 30, 0})

	res, err := r.Resolve(obj, m, PlayerMask|CTypeTerrain, 0)
	require.NoError(t, err)

	assert.InDelta(t, 50, m.Coord.Y(), 1e-9)
	assert.Zero(t, m.Delta.Y())
	require.Len(t, res.Records, 1)
	assert.Equal(t, KindTerrain, res.Records[0].Kind)
}

func TestResolveCapacity(t *testing.T) {
	s := NewSpace(1000)
	for range 3 {
		s.Add(NewObject("pickup", mgl64.Vec3{}, CTypeMisc, Touchable(), Cube(20, 20)))
	}
	r, err := NewResolver(s, nil, nil)
	require.NoError(t, err)
	r.list = NewCollisions(2)

	obj, m := newMover(mgl64.Vec3{}, mgl64.Vec3{})
	_, err = r.Resolve(obj, m, PlayerMask, 0)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestCommit(t *testing.T) {
	obj := NewObject("car", mgl64.Vec3{}, CTypePlayer, Solid(AllSides), Cube(50, 100))
	obj.Commit(&Motion{Coord: mgl64.Vec3{10, 0, 0}, Delta: mgl64.Vec3{3, 12, 4}})

	assert.InDelta(t, 5, obj.Speed2D, 1e-9)
	assert.InDelta(t, 13, obj.Speed3D, 1e-9)
	b, ok := obj.Box()
	require.True(t, ok)
	assert.InDelta(t, 60, b.Right, 1e-9)
	assert.InDelta(t, 50, b.Old.Right, 1e-9, "old extents stay until KeepOld")
}
