package factory

import (
	"fmt"

	"github.com/automoto/rallycore/archetypes"
	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// hazardType maps TMX flags onto a capability mask and solidity. Touchable
// hazards are not scenery, so they do not carry CTypeMisc.
func hazardType(flags []string) (collision.CType, collision.Solidity, error) {
	var ctype collision.CType
	touchable := false
	for _, f := range flags {
		switch f {
		case "avoid":
			ctype |= collision.CTypeAvoid
		case "impenetrable":
			ctype |= collision.CTypeImpenetrable
		case "impenetrable2":
			ctype |= collision.CTypeImpenetrable | collision.CTypeImpenetrable2
		case "viscous":
			ctype |= collision.CTypeViscous
		case "touchable":
			touchable = true
		default:
			return 0, collision.Solidity{}, fmt.Errorf("%w: %q", ErrUnknownFlag, f)
		}
	}
	if touchable {
		return ctype, collision.Touchable(), nil
	}
	return ctype | collision.CTypeMisc, collision.Solid(collision.AllSides), nil
}

func CreateHazard(ecs *ecs.ECS, td *components.TrackData, h trackdata.Hazard) (*donburi.Entry, error) {
	ctype, solidity, err := hazardType(h.Flags)
	if err != nil {
		return nil, fmt.Errorf("hazard %s: %w", h.Name, err)
	}

	hazard := archetypes.Hazard.Spawn(ecs)
	at, _ := groundAt(td, h.Rect)
	obj := collision.NewObject(h.Name, at, ctype, solidity, boxShape(h.Rect, h.Y, h.Y+h.Height))
	obj.Slot = slotHazard
	obj.Data = hazard // Link for O(1) lookup
	components.Object.SetValue(hazard, components.ObjectData{Object: obj})

	td.Space.Add(obj)
	td.Avoid.Add(obj)
	return hazard, nil
}

// CreateLiquid adds a water volume whose top sits at an absolute height.
func CreateLiquid(ecs *ecs.ECS, td *components.TrackData, l trackdata.Liquid) *donburi.Entry {
	liquid := archetypes.Liquid.Spawn(ecs)
	c := l.Rect.Center()
	obj := collision.NewObject(l.Name, mgl64.Vec3{c.X, l.Top, c.Z}, collision.CTypeLiquid,
		collision.Touchable(), boxShape(l.Rect, -l.Depth, 0))
	obj.Kind = collision.TriggerKind(l.Kind)
	obj.Slot = slotLiquid
	obj.Data = liquid
	components.Object.SetValue(liquid, components.ObjectData{Object: obj})

	td.Space.Add(obj)
	return liquid
}

// CreateTrigger adds a trigger box standing on the ground. Triggers with
// named sides are solid except through those faces.
func CreateTrigger(ecs *ecs.ECS, td *components.TrackData, t trackdata.Trigger) (*donburi.Entry, error) {
	solidity := collision.Touchable()
	var sides collision.Sides
	if t.Sides != "" {
		s, err := collision.ParseSides(t.Sides)
		if err != nil {
			return nil, fmt.Errorf("trigger %s: %w", t.Name, err)
		}
		sides = s
		solidity = collision.Solid(collision.AllSides)
	}

	trigger := archetypes.Trigger.Spawn(ecs)
	at, _ := groundAt(td, t.Rect)
	obj := collision.NewObject(t.Name, at, collision.CTypeTrigger, solidity, boxShape(t.Rect, 0, t.Height))
	obj.Kind = collision.TriggerKind(t.Kind)
	obj.TriggerSides = sides
	obj.Slot = slotTrigger
	obj.Data = t.Index
	components.Object.SetValue(trigger, components.ObjectData{Object: obj})
	td.Space.Add(obj)

	if t.Kind == tags.TriggerCheckpoint {
		if n := t.Index + 1; n > len(td.Checkpoints) {
			td.Checkpoints = append(td.Checkpoints, make([]mgl64.Vec3, n-len(td.Checkpoints))...)
		}
		td.Checkpoints[t.Index] = at
	}
	return trigger, nil
}
