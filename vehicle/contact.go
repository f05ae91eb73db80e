package vehicle

import (
	"slices"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// LiquidWater marks liquid volumes that splash when a car lands in them.
const LiquidWater collision.TriggerKind = "water"

const thudVolumeSpeed = 3000

// carContacts resolves the car against the space and reacts to what it hit:
// other cars, liquid, hard scenery and viscous patches.
func (s *Sim) carContacts(c *Car, m *collision.Motion) error {
	v := config.Vehicle
	body := c.Body
	wasOnWater := c.OnWater
	pre := m.Delta

	res, err := s.Resolver.Resolve(body, m, collision.PlayerMask, 0)
	if err != nil {
		return err
	}
	if res.OnGround {
		body.OnGround = true
	}

	c.OnWater = false
	c.hitThisPass = c.hitThisPass[:0]

	for _, rec := range res.Records {
		t := rec.Target
		if rec.Kind != collision.KindObject || t == nil || t.Removed() {
			continue
		}

		switch {
		case t.CType.Has(collision.CTypePlayer):
			other, ok := CarOf(t)
			if ok && !slices.Contains(c.hitThisPass, other) {
				c.hitThisPass = append(c.hitThisPass, other)
				s.carHitCar(c, other, m, pre)
			}

		case t.CType.Has(collision.CTypeLiquid):
			// solid ground under the car wins over the liquid
			if !res.Sides.Has(collision.SideBottom) {
				s.floatCar(c, t.Boxes[rec.TargetBox].Top, t.Kind, m, wasOnWater)
			}

		case t.CType.Has(collision.CTypeMisc) && body.Speed2D > v.CrashThudSpeed:
			if c.BumpSoundTimer <= 0 {
				volume := min(max(body.Speed2D/thudVolumeSpeed, .5), 2)
				s.Effects.Sound(SoundCrashThud, m.Coord, volume)
				c.BumpSoundTimer = v.BumpSoundCooldown
			}
		}

		if t.CType.Has(collision.CTypeViscous) {
			m.Delta = gamemath.ApplyFrictionToDeltas(m.Delta, v.ViscousFriction, v.Epsilon)
		}
	}
	return nil
}

// floatCar sits the car level on a liquid surface at top unless the terrain
// there already reaches it.
func (s *Sim) floatCar(c *Car, top float64, kind collision.TriggerKind, m *collision.Motion, wasOnWater bool) {
	if groundY, _ := s.Terrain.Height(m.Coord.X(), m.Coord.Z()); groundY >= top {
		return
	}
	body := c.Body
	c.OnWater = true
	c.WaterY = top
	body.Rot[0], body.Rot[2] = 0, 0
	body.DeltaRot[0], body.DeltaRot[2] = 0, 0
	m.Delta[1] = 0
	m.Coord[1] = top
	if !wasOnWater && kind == LiquidWater {
		s.Effects.Splash(mgl64.Vec3{m.Coord.X(), top, m.Coord.Z()})
	}
}
