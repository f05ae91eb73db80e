// Package vehicle drives land vehicles and submarines through the collision
// system: traction, planing, steering, ground conforming and vehicle impacts.
package vehicle

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/terrain"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/rallycore/vehicle"

// Driver produces a car's Intent each sub-step. Human cars have none; their
// intent is written by the input system.
type Driver interface {
	Drive(c *Car, dt float64)
}

// Sim steps vehicles against a terrain and a collision space.
type Sim struct {
	Terrain  terrain.Oracle
	Surface  terrain.Surface // optional tile attributes
	Resolver *collision.Resolver
	Effects  Effects
	Race     *Race
	Rand     *rand.Rand
	Log      zerolog.Logger

	frame    uint64
	substeps metric.Int64Counter
}

// NewSim creates a simulator. The surface is taken from ground when it also
// implements terrain.Surface.
func NewSim(ground terrain.Oracle, resolver *collision.Resolver, race *Race, log zerolog.Logger) (*Sim, error) {
	s := &Sim{
		Terrain:  ground,
		Resolver: resolver,
		Effects:  NopEffects{},
		Race:     race,
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Log:      log.With().Str("component", "vehicle").Logger(),
	}
	if surf, ok := ground.(terrain.Surface); ok {
		s.Surface = surf
	}
	if s.Race == nil {
		s.Race = &Race{Difficulty: DifficultyMedium}
	}

	var err error
	s.substeps, err = otel.Meter(instrumentationName).Int64Counter("vehicle.substeps",
		metric.WithDescription("Vehicle motion sub-steps run"))
	if err != nil {
		return nil, fmt.Errorf("creating substeps counter: %w", err)
	}
	return s, nil
}

// Frame advances the race clock and every vehicle by one frame, one vehicle
// after another.
func (s *Sim) Frame(cars []*Car, subs []*Submarine, dt float64) error {
	s.BeginFrame(dt)
	for _, c := range cars {
		c.Body.KeepOld()
	}
	for _, sub := range subs {
		sub.Body.KeepOld()
	}
	for _, c := range cars {
		if err := s.MoveCar(c, dt); err != nil {
			return err
		}
	}
	for _, sub := range subs {
		if err := s.MoveSubmarine(sub, dt); err != nil {
			return err
		}
	}
	return nil
}

// BeginFrame ticks race-wide timers. Call it once per frame before moving
// any vehicle.
func (s *Sim) BeginFrame(dt float64) {
	s.frame++
	s.Race.Tick(dt)
}

// substeps splits a frame so no single pass travels further than the
// configured distance.
func substeps(speed2D, dt float64) int {
	v := config.Vehicle
	n := int(speed2D * dt / v.SubstepDistance)
	return min(max(n, 1), v.MaxSubsteps)
}

// runPasses moves body through n passes of pass. The frame-start old boxes
// are put back afterwards so other vehicles sweep against the whole frame.
func (s *Sim) runPasses(body *collision.Object, dt float64, pass func(dt float64) error) error {
	if len(body.Boxes) == 0 {
		return collision.ErrNoCollisionBox
	}
	n := substeps(body.Speed2D, dt)
	sub := dt / float64(n)

	saved := make([]collision.Extents, len(body.Boxes))
	for i, b := range body.Boxes {
		saved[i] = b.Old
	}
	defer func() {
		for i := range body.Boxes {
			body.Boxes[i].Old = saved[i]
		}
	}()

	for i := range n {
		if i > 0 {
			body.KeepOld()
		}
		if err := pass(sub); err != nil {
			return fmt.Errorf("moving %s: %w", body.Name, err)
		}
	}
	s.substeps.Add(context.Background(), int64(n))
	return nil
}
