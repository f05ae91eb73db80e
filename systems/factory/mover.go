package factory

import (
	"github.com/automoto/rallycore/archetypes"
	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateMover adds a sliding log. CPU drivers steer around it.
func CreateMover(ecs *ecs.ECS, td *components.TrackData, m trackdata.Mover) *donburi.Entry {
	mover := archetypes.Mover.Spawn(ecs)
	at, _ := groundAt(td, m.Rect)
	obj := collision.NewObject(m.Name, at, collision.CTypeMisc|collision.CTypeAvoid,
		collision.Solid(collision.AllSides), boxShape(m.Rect, 0, m.Height))
	obj.Slot = slotMover
	obj.Data = mover
	components.Object.SetValue(mover, components.ObjectData{Object: obj})

	components.Mover.SetValue(mover, components.MoverData{
		Base:   at,
		Offset: mgl64.Vec3{m.DX, 0, m.DZ},
		Period: m.Period,
		Seq:    NewMoverSequence(m.Period),
	})

	td.Space.Add(obj)
	td.Avoid.Add(obj)
	return mover
}

// NewMoverSequence eases from 0 to 1 over one period and back again.
func NewMoverSequence(period float64) *gween.Sequence {
	tw := gween.NewSequence()
	tw.Add(
		gween.New(0, 1, float32(period), ease.InOutQuad),
		gween.New(1, 0, float32(period), ease.InOutQuad),
	)
	return tw
}
