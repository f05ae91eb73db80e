package systems

import (
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSettings handles the debug toggles. It runs even while paused.
func UpdateSettings(ecs *ecs.ECS) {
	settings := GetOrCreateSettings(ecs)
	input := getOrCreateInput(ecs)

	if GetAction(input, cfg.ActionTogglePause).JustPressed {
		settings.Paused = !settings.Paused
	}
	if GetAction(input, cfg.ActionToggleBoxes).JustPressed {
		settings.ShowBoxes = !settings.ShowBoxes
	}
}

// WithPauseCheck wraps a system to skip execution when paused.
func WithPauseCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if settings := GetOrCreateSettings(e); settings.Paused {
			return
		}
		system(e)
	}
}

// GetOrCreateSettings returns the singleton Settings component, creating if needed.
func GetOrCreateSettings(ecs *ecs.ECS) *components.SettingsData {
	if _, ok := components.Settings.First(ecs.World); !ok {
		ent := ecs.World.Entry(ecs.World.Create(components.Settings))
		components.Settings.SetValue(ent, components.SettingsData{
			ShowBoxes: cfg.Debug.ShowBoxes,
		})
	}

	ent, _ := components.Settings.First(ecs.World)
	return components.Settings.Get(ent)
}
