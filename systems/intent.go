package systems

import (
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/tags"
	"github.com/automoto/rallycore/vehicle"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// IntentFromInput maps the action state onto a driving intent. The analog
// stick wins over the steering keys; positive steer turns right.
func IntentFromInput(input *components.InputData) vehicle.Intent {
	in := vehicle.Intent{
		Throttle: input.Current[cfg.ActionThrottle],
		Reverse:  input.Current[cfg.ActionReverse],
		Brake:    input.Current[cfg.ActionBrake],
		Nitro:    GetAction(input, cfg.ActionNitro).JustPressed,
		Throw:    GetAction(input, cfg.ActionThrow).JustPressed,
	}

	left, right := input.Current[cfg.ActionSteerLeft], input.Current[cfg.ActionSteerRight]
	switch {
	case input.Steer != 0:
		in.Steer = max(-1, min(1, input.Steer))
		in.Analog = true
	case left && !right:
		in.Steer = -1
	case right && !left:
		in.Steer = 1
	}
	return in
}

// UpdateHumanIntent hands the polled input to every human car.
func UpdateHumanIntent(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	intent := IntentFromInput(input)
	tags.Human.Each(ecs.World, func(entry *donburi.Entry) {
		components.Car.Get(entry).Intent = intent
	})
}
