package collision

import "github.com/go-gl/mathgl/mgl64"

// Detect finds every target whose boxes overlap base's boxes at the proposed
// motion and appends a record for each contact to list. The returned sides
// are the OR of the sides recorded by this call.
//
// base's boxes must already be placed at m.Coord, with their Old extents
// holding the start of the step.
func (s *Space) Detect(base *Object, m *Motion, mask CType, list *Collisions) (Sides, error) {
	if len(base.Boxes) == 0 {
		return 0, ErrNoCollisionBox
	}

	moved := m.Coord.Sub(base.OldCoord)
	var total Sides

	for _, target := range s.objects {
		if target.Slot >= s.sentinel {
			break
		}
		if target == base || target == base.Chain || target.removed {
			continue
		}
		if !target.CType.Has(mask) || !target.Solidity.Collidable() {
			continue
		}

		rel := moved.Sub(target.Delta.Mul(m.Dt))

		for bi := range base.Boxes {
			b := &base.Boxes[bi]
			for ti := range target.Boxes {
				t := &target.Boxes[ti]
				if !b.Overlaps(t.Extents) {
					continue
				}

				if target.Solidity.IsTouchable() {
					if err := list.add(Record{BaseBox: bi, TargetBox: ti, Target: target}); err != nil {
						return total, err
					}
					continue
				}

				sides := sweptSides(b, t, rel, target.Solidity.Sides())
				if sides == 0 && !target.CType.Has(CTypeImpenetrable) {
					continue
				}
				if err := list.add(Record{BaseBox: bi, TargetBox: ti, Sides: sides, Target: target}); err != nil {
					return total, err
				}
				total |= sides
			}
		}
	}
	return total, nil
}

// sweptSides works out which of the mover's faces crossed into the target
// this step. A face only counts when the target is solid on the face it
// meets and the relative motion runs into it.
func sweptSides(b, t *Box, rel mgl64.Vec3, solid Sides) Sides {
	var sides Sides

	if rel.X() > 0 {
		if solid.Has(SideLeft) && b.Old.Right < t.Old.Left && b.Right >= t.Left && b.Right <= t.Right {
			sides |= SideRight
		}
	} else if rel.X() < 0 {
		if solid.Has(SideRight) && b.Old.Left > t.Old.Right && b.Left <= t.Right && b.Left >= t.Left {
			sides |= SideLeft
		}
	}

	if rel.Y() > 0 {
		if solid.Has(SideBottom) && b.Old.Top < t.Old.Bottom && b.Top >= t.Bottom && b.Top <= t.Top {
			sides |= SideTop
		}
	} else if rel.Y() < 0 {
		if solid.Has(SideTop) && b.Old.Bottom >= t.Old.Top && b.Bottom <= t.Top && b.Bottom >= t.Bottom {
			sides |= SideBottom
		}
	}

	if rel.Z() > 0 {
		if solid.Has(SideBack) && b.Old.Front < t.Old.Back && b.Front >= t.Back && b.Front <= t.Front {
			sides |= SideFront
		}
	} else if rel.Z() < 0 {
		if solid.Has(SideFront) && b.Old.Back > t.Old.Front && b.Back <= t.Front && b.Back >= t.Back {
			sides |= SideBack
		}
	}

	return sides
}
