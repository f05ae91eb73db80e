package systems

import (
	"math"

	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera follows the first human car, or the leader when every car is
// CPU driven.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	target, ok := cameraTarget(e)
	if ok {
		pos := components.Object.Get(target).Coord
		camera.Position.X += (pos.X() - camera.Position.X) * config.Debug.FollowSmoothing
		camera.Position.Y += (pos.Z() - camera.Position.Y) * config.Debug.FollowSmoothing
	}

	updateScreenShake(cameraEntry)
}

func cameraTarget(e *ecs.ECS) (*donburi.Entry, bool) {
	if entry, ok := tags.Human.First(e.World); ok {
		return entry, true
	}
	var leader *donburi.Entry
	components.Car.Each(e.World, func(entry *donburi.Entry) {
		if components.Car.Get(entry).Place == 1 {
			leader = entry
		}
	})
	return leader, leader != nil
}

// updateScreenShake advances the shake and removes it when complete
func updateScreenShake(cameraEntry *donburi.Entry) {
	if !cameraEntry.HasComponent(components.ScreenShake) {
		return
	}

	shake := components.ScreenShake.Get(cameraEntry)
	shake.Elapsed++

	// Remove component when shake is complete
	if shake.Elapsed >= shake.Duration {
		cameraEntry.RemoveComponent(components.ScreenShake)
	}
}

// shakeOffset is the current pixel offset of an active shake.
func shakeOffset(cameraEntry *donburi.Entry) (float64, float64) {
	if !cameraEntry.HasComponent(components.ScreenShake) {
		return 0, 0
	}
	shake := components.ScreenShake.Get(cameraEntry)

	// Calculate decaying intensity
	progress := max(float64(shake.Duration-shake.Elapsed)/float64(shake.Duration), 0)
	intensity := shake.Intensity * progress

	// Oscillating offset using sine/cosine for smooth shake
	return math.Sin(float64(shake.Elapsed)*1.1) * intensity, math.Cos(float64(shake.Elapsed)*1.3) * intensity
}

// TriggerScreenShake starts a screen shake effect
func TriggerScreenShake(w donburi.World, intensity float64, duration int) {
	cameraEntry, ok := components.Camera.First(w)
	if !ok {
		return
	}

	// Add or update screen shake component
	if cameraEntry.HasComponent(components.ScreenShake) {
		shake := components.ScreenShake.Get(cameraEntry)
		// Only override if new shake is stronger
		if intensity > shake.Intensity {
			shake.Intensity = intensity
			shake.Duration = duration
			shake.Elapsed = 0
		}
	} else {
		cameraEntry.AddComponent(components.ScreenShake)
		components.ScreenShake.Set(cameraEntry, &components.ScreenShakeData{
			Intensity: intensity,
			Duration:  duration,
			Elapsed:   0,
		})
	}
}

// ShakeOnSparks subscribes the camera shake to wreck sparks.
func ShakeOnSparks(world donburi.World) {
	EffectEvents.Subscribe(world, func(w donburi.World, ev EffectEvent) {
		if ev.Kind == EffectSparks {
			TriggerScreenShake(w, config.Debug.ShakeIntensity, config.Debug.ShakeFrames)
		}
	})
}
