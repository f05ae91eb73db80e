package systems

import (
	"context"
	"fmt"

	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/vehicle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type EffectKind int

const (
	EffectSound EffectKind = iota
	EffectCue
	EffectSparks
	EffectSplash
	EffectDropFlag
)

func (k EffectKind) String() string {
	return [...]string{"sound", "cue", "sparks", "splash", "drop-flag"}[k]
}

// EffectEvent is one presentation event raised by the simulation.
type EffectEvent struct {
	Kind   EffectKind
	Sound  vehicle.Sound
	Cue    vehicle.Cue
	At     mgl64.Vec3
	Volume float64
	Delay  float64
	Radius float64
	Car    string
}

var EffectEvents = events.NewEventType[EffectEvent]()

// EffectPublisher queues simulation effects on the world. They are delivered
// by UpdateEffects at the end of the frame.
type EffectPublisher struct {
	World donburi.World
}

func (p EffectPublisher) Sound(s vehicle.Sound, at mgl64.Vec3, volume float64) {
	EffectEvents.Publish(p.World, EffectEvent{Kind: EffectSound, Sound: s, At: at, Volume: volume})
}

func (p EffectPublisher) Announce(c vehicle.Cue, delay float64) {
	EffectEvents.Publish(p.World, EffectEvent{Kind: EffectCue, Cue: c, Delay: delay})
}

func (p EffectPublisher) Sparks(at mgl64.Vec3, radius float64) {
	EffectEvents.Publish(p.World, EffectEvent{Kind: EffectSparks, At: at, Radius: radius})
}

func (p EffectPublisher) Splash(at mgl64.Vec3) {
	EffectEvents.Publish(p.World, EffectEvent{Kind: EffectSplash, At: at})
}

func (p EffectPublisher) DropFlag(car *vehicle.Car) {
	EffectEvents.Publish(p.World, EffectEvent{Kind: EffectDropFlag, At: car.Body.Coord, Car: car.Body.Name})
}

// SubscribeEffects installs the subscribers that tally, log and count effect
// events.
func SubscribeEffects(world donburi.World, log zerolog.Logger) error {
	published, err := meter().Int64Counter("effects.published",
		metric.WithDescription("Presentation events raised by the simulation"))
	if err != nil {
		return fmt.Errorf("creating effects counter: %w", err)
	}

	EffectEvents.Subscribe(world, tallyEffect)
	EffectEvents.Subscribe(world, func(w donburi.World, ev EffectEvent) {
		published.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", ev.Kind.String())))
		log.Debug().
			Stringer("kind", ev.Kind).
			Float64("x", ev.At.X()).
			Float64("z", ev.At.Z()).
			Str("car", ev.Car).
			Msg("effect")
	})
	return nil
}

func tallyEffect(w donburi.World, ev EffectEvent) {
	entry, ok := components.EffectTally.First(w)
	if !ok {
		return
	}
	t := components.EffectTally.Get(entry)
	switch ev.Kind {
	case EffectSound:
		t.Sounds++
	case EffectCue:
		t.Cues++
	case EffectSparks:
		t.Sparks++
	case EffectSplash:
		t.Splashes++
	case EffectDropFlag:
		t.Flags++
	}
}

// UpdateEffects delivers the effect events queued this frame.
func UpdateEffects(e *ecs.ECS) {
	EffectEvents.ProcessEvents(e.World)
}
