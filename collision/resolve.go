package collision

import (
	"context"
	"fmt"
	"math"

	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel/metric"
)

// Result summarises one Resolve call.
type Result struct {
	Sides        Sides // solid sides hit across all passes
	Passes       int
	OnGround     bool
	Impenetrable bool
	Records      []Record // valid until the next Resolve on the same Resolver
}

// Resolver pushes a moving object back out of whatever it ran into.
type Resolver struct {
	Space      *Space
	Terrain    terrain.Oracle // optional; used when the mask carries CTypeTerrain
	Triggers   Triggers
	MaxPasses  int
	Separation float64

	list *Collisions

	passes   metric.Int64Counter
	records  metric.Int64Counter
	overflow metric.Int64Counter
}

// NewResolver creates a resolver over space using the configured limits.
func NewResolver(space *Space, ground terrain.Oracle, triggers Triggers) (*Resolver, error) {
	if triggers == nil {
		triggers = Triggers{}
	}
	r := &Resolver{
		Space:      space,
		Terrain:    ground,
		Triggers:   triggers,
		MaxPasses:  config.Collision.MaxPasses,
		Separation: config.Collision.Separation,
		list:       NewCollisions(config.Collision.MaxCollisions),
	}

	m := meter()
	var err error
	r.passes, err = m.Int64Counter("collision.resolve.passes",
		metric.WithDescription("Resolver passes run"))
	if err != nil {
		return nil, fmt.Errorf("creating passes counter: %w", err)
	}
	r.records, err = m.Int64Counter("collision.records",
		metric.WithDescription("Collision records produced by the detector"))
	if err != nil {
		return nil, fmt.Errorf("creating records counter: %w", err)
	}
	r.overflow, err = m.Int64Counter("collision.capacity_exceeded",
		metric.WithDescription("Resolve calls aborted by a full collision list"))
	if err != nil {
		return nil, fmt.Errorf("creating capacity counter: %w", err)
	}
	return r, nil
}

// axisFix is the deepest correction seen on one axis during a pass.
type axisFix struct {
	depth float64
	sign  float64
}

func (a *axisFix) offer(depth, sign float64) {
	if a.sign == 0 || depth > a.depth {
		a.depth = depth
		a.sign = sign
	}
}

func (a axisFix) offset() float64 {
	return a.depth * a.sign
}

// Resolve detects obj's contacts at the proposed motion and corrects m in
// place. Triggers are dispatched as they are met. X and Z velocity on a hit
// axis is scaled by bounce and Y velocity is zeroed. Up to MaxPasses passes
// run; an impenetrable hit ends resolution at once.
func (r *Resolver) Resolve(obj *Object, m *Motion, mask CType, bounce float64) (Result, error) {
	var res Result
	if len(obj.Shapes) == 0 {
		return res, ErrNoCollisionBox
	}
	if len(obj.Boxes) != len(obj.Shapes) {
		obj.UpdateBoxes()
		obj.KeepOld()
	}

	r.list.Reset()
	ctx := context.Background()

	for res.Passes < r.MaxPasses {
		res.Passes++
		obj.UpdateBoxesAt(m.Coord)

		start := r.list.Len()
		if _, err := r.Space.Detect(obj, m, mask, r.list); err != nil {
			r.overflow.Add(ctx, 1)
			res.Records = r.list.Records()
			return res, err
		}
		pass := r.list.Records()[start:]
		r.records.Add(ctx, int64(len(pass)))

		var fx, fy, fz axisFix
		solidHits := 0

		for i := range pass {
			rec := &pass[i]
			target := rec.Target
			if target.removed {
				rec.Sides = 0
				continue
			}

			if target.CType.Has(CTypeTrigger) && mask.Has(CTypeTrigger) {
				solid, err := r.Triggers.Handle(target, obj, rec.Sides)
				if err != nil {
					return res, err
				}
				if !solid {
					rec.Sides = 0
				}
			}
			if rec.Sides == 0 {
				continue
			}

			solidHits++
			if target.CType.Has(CTypeImpenetrable) {
				res.Impenetrable = true
				fx, fy, fz = axisFix{}, axisFix{}, axisFix{}
			}

			b := obj.Boxes[rec.BaseBox]
			t := target.Boxes[rec.TargetBox]

			if rec.Sides.Has(SideBack) {
				fz.offer(t.Front-b.Back+r.Separation, 1)
				m.Delta[2] *= bounce
			} else if rec.Sides.Has(SideFront) {
				fz.offer(b.Front-t.Back+r.Separation, -1)
				m.Delta[2] *= bounce
			}

			if rec.Sides.Has(SideLeft) {
				fx.offer(t.Right-b.Left+r.Separation, 1)
				m.Delta[0] *= bounce
			} else if rec.Sides.Has(SideRight) {
				fx.offer(b.Right-t.Left+r.Separation, -1)
				m.Delta[0] *= bounce
			}

			if rec.Sides.Has(SideBottom) {
				fy.offer(t.Top-b.Bottom+r.Separation, 1)
				m.Delta[1] = 0
			} else if rec.Sides.Has(SideTop) {
				fy.offer(b.Top-t.Bottom+r.Separation, -1)
				m.Delta[1] = 0
			}

			res.Sides |= rec.Sides
			if res.Impenetrable {
				break
			}
		}

		if solidHits == 0 {
			break
		}
		m.Coord = m.Coord.Add(mgl64.Vec3{fx.offset(), fy.offset(), fz.offset()})
		if res.Sides.Has(SideBottom) {
			res.OnGround = true
		}
		if res.Impenetrable {
			break
		}
	}
	r.passes.Add(ctx, int64(res.Passes))

	obj.UpdateBoxesAt(m.Coord)
	if mask.Has(CTypeTerrain) && r.Terrain != nil {
		if err := r.clampToTerrain(obj, m, bounce); err != nil {
			res.Records = r.list.Records()
			return res, err
		}
	}

	res.Records = r.list.Records()
	return res, nil
}

// clampToTerrain lifts obj so its lowest box bottom rests on the ground.
func (r *Resolver) clampToTerrain(obj *Object, m *Motion, bounce float64) error {
	bottom := math.Inf(1)
	for _, b := range obj.Boxes {
		bottom = min(bottom, b.Bottom)
	}
	y, _ := r.Terrain.Height(m.Coord.X(), m.Coord.Z())
	if bottom >= y {
		return nil
	}
	m.Coord[1] += y - bottom
	m.Delta[1] *= bounce
	obj.UpdateBoxesAt(m.Coord)
	return r.list.add(Record{Sides: SideBottom, Kind: KindTerrain})
}
