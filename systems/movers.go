package systems

import (
	"fmt"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/systems/factory"
	"github.com/automoto/rallycore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMovers slides every moving hazard along its tween and keeps it on the
// ground. Their Delta is what vehicles sweep against this frame.
func UpdateMovers(e *ecs.ECS) {
	td, ok := trackData(e)
	if !ok || td.Err != nil {
		return
	}
	dt := frameTime()
	tags.Mover.Each(e.World, func(entry *donburi.Entry) {
		if td.Err != nil {
			return
		}
		obj := components.Object.Get(entry).Object
		if err := stepMover(td.Resolver, obj, components.Mover.Get(entry), dt); err != nil {
			fail(td, err, "mover step failed")
		}
	})
}

func stepMover(r *collision.Resolver, obj *collision.Object, mv *components.MoverData, dt float64) error {
	obj.KeepOld()

	frac, _, done := mv.Seq.Update(float32(dt))
	if done {
		mv.Seq = factory.NewMoverSequence(mv.Period)
	}
	target := mv.Base.Add(mv.Offset.Mul(float64(frac)))
	m := &collision.Motion{Coord: target, Delta: target.Sub(obj.Coord).Mul(1 / dt), Dt: dt}

	if _, err := r.Resolve(obj, m, collision.CTypeTerrain, 0); err != nil {
		return fmt.Errorf("moving %s: %w", obj.Name, err)
	}
	obj.Commit(m)
	return nil
}
