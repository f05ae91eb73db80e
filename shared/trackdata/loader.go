package trackdata

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

var ErrNoSpawns = errors.New("track has no spawn points")

// Load parses a TMX track. It takes an fs.FS so callers can pass embed.FS
// (viewer) or os.DirFS (headless runner).
func Load(fsys fs.FS, tmxPath string) (*Track, error) {
	trackMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	scale := DefaultScale
	for _, layer := range trackMap.Layers {
		if layer.Name == "Terrain" {
			if s := layer.Properties.GetFloat("worldScale"); s > 0 {
				scale = s
			}
		}
	}

	t := &Track{
		Name:  strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Scale: scale,
		Width: float64(trackMap.Width*trackMap.TileWidth) * scale,
		Depth: float64(trackMap.Height*trackMap.TileHeight) * scale,
	}
	t.Terrain = loadTerrain(trackMap, scale)

	rect := func(o *tiled.Object) Rect {
		return Rect{X: o.X * scale, Z: o.Y * scale, W: o.Width * scale, D: o.Height * scale}
	}

	for _, og := range trackMap.ObjectGroups {
		switch og.Name {
		case "Hazards":
			for _, o := range og.Objects {
				var flags []string
				for _, f := range strings.Split(o.Properties.GetString("flags"), ",") {
					if f = strings.TrimSpace(f); f != "" {
						flags = append(flags, f)
					}
				}
				t.Hazards = append(t.Hazards, Hazard{
					Name:   o.Name,
					Rect:   rect(o),
					Y:      o.Properties.GetFloat("y"),
					Height: orDefault(o.Properties.GetFloat("height"), 400),
					Flags:  flags,
				})
			}
		case "Liquids":
			for _, o := range og.Objects {
				t.Liquids = append(t.Liquids, Liquid{
					Name:  o.Name,
					Rect:  rect(o),
					Top:   o.Properties.GetFloat("top"),
					Depth: orDefault(o.Properties.GetFloat("depth"), 1000),
					Kind:  orDefaultString(o.Properties.GetString("kind"), "water"),
				})
			}
		case "Triggers":
			for _, o := range og.Objects {
				t.Triggers = append(t.Triggers, Trigger{
					Name:   o.Name,
					Rect:   rect(o),
					Height: orDefault(o.Properties.GetFloat("height"), 1000),
					Kind:   objectClass(o),
					Sides:  o.Properties.GetString("sides"),
					Index:  o.Properties.GetInt("index"),
				})
			}
		case "Movers":
			for _, o := range og.Objects {
				t.Movers = append(t.Movers, Mover{
					Name:   o.Name,
					Rect:   rect(o),
					Height: orDefault(o.Properties.GetFloat("height"), 400),
					DX:     o.Properties.GetFloat("dx") * scale,
					DZ:     o.Properties.GetFloat("dz") * scale,
					Period: orDefault(o.Properties.GetFloat("period"), 2),
				})
			}
		case "Spawns":
			for _, o := range og.Objects {
				t.Spawns = append(t.Spawns, Spawn{
					Index:   o.Properties.GetInt("index"),
					X:       o.X * scale,
					Z:       o.Y * scale,
					Yaw:     o.Properties.GetFloat("yawDegrees") * math.Pi / 180,
					Vehicle: orDefaultString(o.Properties.GetString("vehicle"), "car"),
				})
			}
		case "Path":
			for _, o := range og.Objects {
				if len(o.PolyLines) == 0 {
					continue
				}
				// Use the first polyline if multiple polylines exist
				polyline := o.PolyLines[0]
				if polyline.Points == nil {
					continue
				}
				for _, p := range *polyline.Points {
					t.Path = append(t.Path, Point{X: (o.X + p.X) * scale, Z: (o.Y + p.Y) * scale})
				}
				break
			}
		}
	}

	if len(t.Spawns) == 0 {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrNoSpawns)
	}
	sort.SliceStable(t.Spawns, func(i, j int) bool {
		return t.Spawns[i].Index < t.Spawns[j].Index
	})
	return t, nil
}

// loadTerrain reads the Terrain tile layer. Each tile's tileset entry carries
// height and surface properties; empty tiles are flat ground at 0.
func loadTerrain(m *tiled.Map, scale float64) TerrainGrid {
	cell := float64(m.TileWidth) * scale
	g := TerrainGrid{
		OriginX:  cell / 2,
		OriginZ:  float64(m.TileHeight) * scale / 2,
		CellSize: cell,
		Cols:     m.Width,
		Rows:     m.Height,
		Heights:  make([]float64, m.Width*m.Height),
		Surfaces: make([]string, m.Width*m.Height),
	}

	for _, layer := range m.Layers {
		if layer.Name != "Terrain" {
			continue
		}
		for i, tile := range layer.Tiles {
			if i >= len(g.Heights) || tile.IsNil() {
				continue
			}
			tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
			if err != nil {
				continue
			}
			g.Heights[i] = tilesetTile.Properties.GetFloat("height")
			g.Surfaces[i] = tilesetTile.Properties.GetString("surface")
		}
		break
	}
	return g
}

func objectClass(o *tiled.Object) string {
	if o.Class != "" {
		return o.Class
	}
	return o.Type //nolint:staticcheck // TMX uses type= attribute
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
