package archetypes

import (
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Car = newArchetype(
		tags.Car,
		components.Car,
		components.Object,
		components.Progress,
	)
	Submarine = newArchetype(
		tags.Submarine,
		components.Submarine,
		components.Object,
		components.Progress,
	)
	Hazard = newArchetype(
		tags.Hazard,
		components.Object,
	)
	Liquid = newArchetype(
		tags.Liquid,
		components.Object,
	)
	Trigger = newArchetype(
		tags.Trigger,
		components.Object,
	)
	Mover = newArchetype(
		tags.Mover,
		tags.Hazard,
		components.Object,
		components.Mover,
	)
	Track = newArchetype(
		components.Track,
		components.EffectTally,
	)
	Camera = newArchetype(
		components.Camera,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
