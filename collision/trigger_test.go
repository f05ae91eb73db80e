package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gate(sides Sides) *Object {
	g := NewObject("gate", mgl64.Vec3{}, CTypeMisc|CTypeTrigger, Solid(AllSides),
		Extents{Left: 100, Right: 200, Bottom: -100, Top: 500, Back: -500, Front: 500})
	g.Kind = "gate"
	g.TriggerSides = sides
	return g
}

func TestHandleDirectionalTrigger(t *testing.T) {
	var fired []Sides
	triggers := Triggers{}
	triggers.Register("gate", TriggerFunc(func(_, _ *Object, sides Sides) bool {
		fired = append(fired, sides)
		return false
	}))
	g := gate(SideLeft)

	solid, err := triggers.Handle(g, nil, SideRight)
	require.NoError(t, err)
	assert.False(t, solid, "struck on its left face, which fires")

	solid, err = triggers.Handle(g, nil, SideLeft)
	require.NoError(t, err)
	assert.True(t, solid, "struck on its right face, which does not")

	solid, err = triggers.Handle(g, nil, 0)
	require.NoError(t, err)
	assert.True(t, solid)

	assert.Equal(t, []Sides{SideRight}, fired)
}

func TestHandleTouchableTrigger(t *testing.T) {
	n := 0
	triggers := Triggers{"pickup": TriggerFunc(func(_, _ *Object, _ Sides) bool { n++; return false })}
	p := NewObject("pickup", mgl64.Vec3{}, CTypeTrigger, Touchable(), Cube(1, 1))
	p.Kind = "pickup"

	solid, err := triggers.Handle(p, nil, 0)
	require.NoError(t, err)
	assert.False(t, solid)
	assert.Equal(t, 1, n)
}

func TestHandleUnknownTrigger(t *testing.T) {
	_, err := Triggers{}.Handle(gate(SideLeft), nil, SideRight)
	assert.ErrorIs(t, err, ErrUnknownTrigger)
}

func TestResolvePassesThroughTriggerFace(t *testing.T) {
	triggers := Triggers{"gate": TriggerFunc(func(_, _ *Object, _ Sides) bool { return false })}

	for _, tc := range []struct {
		name    string
		from    mgl64.Vec3
		to      mgl64.Vec3
		blocked bool
	}{
		{name: "through the open face", from: mgl64.Vec3{0, 0, 0}, to: mgl64.Vec3{80, 0, 0}},
		{name: "into the closed face", from: mgl64.Vec3{300, 0, 0}, to: mgl64.Vec3{220, 0, 0}, blocked: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSpace(1000)
			s.Add(gate(SideLeft))
			r, err := NewResolver(s, nil, triggers)
			require.NoError(t, err)

			obj, m := newMover(tc.from, tc.to)
			res, err := r.Resolve(obj, m, PlayerMask, 0)
			require.NoError(t, err)

			if tc.blocked {
				assert.Equal(t, SideLeft, res.Sides)
				assert.InDelta(t, 251, m.Coord.X(), 1e-9)
			} else {
				assert.Zero(t, res.Sides)
				assert.Equal(t, tc.to, m.Coord)
			}
		})
	}
}

func TestParseSides(t *testing.T) {
	tests := []struct {
		in   string
		want Sides
	}{
		{"", 0},
		{"none", 0},
		{"front", SideFront},
		{"bottom|front", SideBottom | SideFront},
		{" Left | RIGHT ", SideLeft | SideRight},
		{"all", AllSides},
	}
	for _, tt := range tests {
		got, err := ParseSides(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, s := range []Sides{SideTop, SideBack | SideLeft, AllSides} {
		got, err := ParseSides(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseSides("front|sideways")
	assert.ErrorIs(t, err, ErrUnknownSide)
}
