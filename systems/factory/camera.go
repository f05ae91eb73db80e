package factory

import (
	"github.com/automoto/rallycore/archetypes"
	"github.com/automoto/rallycore/components"
	cfg "github.com/automoto/rallycore/config"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreateCamera looks at the given world X/Z point.
func CreateCamera(ecs *ecs.ECS, x, z float64) {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{
		Position: math.Vec2{X: x, Y: z},
		Zoom:     1 / cfg.Debug.Scale,
	})
}
