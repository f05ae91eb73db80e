package vehicle

import (
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/terrain"
)

// GroundFromSurface picks grip parameters for the tile attributes under the
// car. Water overrides the tile.
func GroundFromSurface(attrib terrain.Attrib, onWater bool) config.SurfaceParams {
	switch {
	case onWater:
		return config.Ground.Water
	case attrib&terrain.AttribIce != 0:
		return config.Ground.Ice
	case attrib&terrain.AttribSnow != 0:
		return config.Ground.Snow
	}
	return config.Ground.Default
}
