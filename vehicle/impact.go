package vehicle

import (
	"math"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

var wreckCues = [4]struct {
	cue   Cue
	delay float64
}{
	{CueGottaHurt, .3},
	{CueNiceDriving, .4},
	{CueCostYa, .4},
	{CueWatchIt, .4},
}

// Bounce returns the velocities of two bodies after they strike each other.
// Each body's motion relative to the other is reflected about the other's and
// scaled by the relative speed, then added to its velocity. v1 and v2 are the
// unit relative motions, rel the relative speed.
func Bounce(d1, d2 mgl64.Vec3) (out1, out2, v1, v2 mgl64.Vec3, rel float64) {
	eps := config.Vehicle.Epsilon
	rel1 := d1.Sub(d2)
	rel = rel1.Len()
	v1 = gamemath.Normalize(rel1, eps)
	v2 = gamemath.Normalize(rel1.Mul(-1), eps)

	b1 := gamemath.Reflect(v1, v2, eps).Mul(rel)
	b2 := gamemath.Reflect(v2, v1, eps).Mul(rel)
	return d1.Add(b1), d2.Add(b2), v1, v2, rel
}

// carHitCar applies the game-mode rules and the bounce for c1 running into
// c2. pre is c1's velocity before the resolver zeroed the blocked axes.
func (s *Sim) carHitCar(c1, c2 *Car, m *collision.Motion, pre mgl64.Vec3) {
	r := config.Rules

	switch s.Race.Mode {
	case ModeTag1, ModeTag2:
		s.Race.tag(c1, c2)
	case ModeSurvival:
		survivalDamage(c1, c2, pre)
	case ModeCaptureFlag:
		for _, c := range [2]*Car{c1, c2} {
			if c.HasFlag {
				c.HasFlag = false
				s.Effects.DropFlag(c)
			}
		}
	}

	d1, d2, v1, v2, rel := Bounce(pre, c2.Body.Delta)
	m.Delta = d1
	c2.Body.Delta = d2

	if !c1.OnWater && !c2.OnWater {
		s.wreck(c1, c2, m, v1.Dot(v2), rel)
	}

	if rel > r.CrashSpeed {
		s.Effects.Sound(SoundCrash, m.Coord, 1)
	}
	s.Log.Debug().
		Str("car", c1.Body.Name).
		Str("other", c2.Body.Name).
		Float64("rel", rel).
		Msg("vehicle impact")
}

// survivalDamage hurts both cars by the impact speed, the slower car taking
// the full share.
func survivalDamage(c1, c2 *Car, pre mgl64.Vec3) {
	r := config.Rules
	impact := pre.Sub(c2.Body.Delta).Len()
	if impact <= r.SurvivalThreshold {
		return
	}
	impact /= r.SurvivalDamageScale

	s1, s2 := c1.Body.Speed3D, c2.Body.Speed3D
	eps := config.Vehicle.Epsilon
	dam1, dam2 := impact, impact
	if s1 > s2 {
		dam1 = impact * s2 / (s1 + eps)
	} else {
		dam2 = impact * s1 / (s2 + eps)
	}

	for _, hit := range [2]struct {
		car *Car
		dam float64
	}{{c1, dam1}, {c2, dam2}} {
		if hit.car.ImpactResetTimer <= 0 {
			hit.car.LoseHealth(hit.dam)
			hit.car.ImpactResetTimer = r.ImpactResetTime
		}
	}
}

// wreck throws hard-hit cars into the air and into a spin.
func (s *Sim) wreck(c1, c2 *Car, m *collision.Motion, dot, rel float64) {
	r := config.Rules

	if dot < r.KickDot {
		if m.Delta.Y() >= 0 {
			m.Delta[1] += rel * r.KickScale
		}
		if c2.Body.Delta.Y() >= 0 {
			c2.Body.Delta[1] += rel * r.KickScale
		}
	}

	if rel <= r.WreckSpeed {
		return
	}

	spin := 2 * math.Pi * (1 - dot) * r.WreckSpin
	c1.Body.DeltaRot[1] = spin
	c2.Body.DeltaRot[1] = -spin
	for _, c := range [2]*Car{c1, c2} {
		c.Body.DeltaRot[0] = (s.Rand.Float64() - .5) * r.WreckWobble
		c.Body.DeltaRot[2] = (s.Rand.Float64() - .5) * r.WreckWobble
		c.GreasedTimer = r.GreaseTime
		c.Planing = true
	}

	s.Effects.Sparks(m.Coord.Add(c2.Body.Coord).Mul(.5), r.SparkRadius)

	if rel > r.AnnounceSpeed && !s.Race.Mode.IsTag() && (!c1.CPU || !c2.CPU) {
		w := wreckCues[s.frame&3]
		s.Effects.Announce(w.cue, w.delay)
	}
}
