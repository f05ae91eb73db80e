package systems

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/automoto/rallycore/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const hudMargin = 10

// DrawHUD prints the standings and the effect tally in the top-left corner.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	td, ok := trackData(ecs)
	if !ok {
		return
	}
	ebitenutil.DebugPrintAt(screen, HUDText(ecs, td), hudMargin, hudMargin)
}

// HUDText renders the standings as text.
func HUDText(ecs *ecs.ECS, td *components.TrackData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  frame %d\n", td.Track.Name, td.Race.Mode, td.Frames)

	type line struct {
		place int
		text  string
	}
	var lines []line
	components.Car.Each(ecs.World, func(entry *donburi.Entry) {
		c := components.Car.Get(entry).Car
		p := components.Progress.Get(entry)
		text := fmt.Sprintf("%d. %-8s lap %d cp %d %5.0f", c.Place, c.Body.Name, p.Lap, p.Checkpoint, c.Body.Speed2D)
		switch {
		case p.Eliminated:
			text += " out"
		case c.IsIt:
			text += " it"
		case c.NitroTimer > 0:
			text += " nitro"
		}
		lines = append(lines, line{c.Place, text})
	})
	components.Submarine.Each(ecs.World, func(entry *donburi.Entry) {
		s := components.Submarine.Get(entry).Submarine
		lines = append(lines, line{s.Place, fmt.Sprintf("%d. %-8s sub %5.0f", s.Place, s.Body.Name, s.Body.Speed3D)})
	})
	slices.SortFunc(lines, func(a, b line) int { return cmp.Compare(a.place, b.place) })
	for _, l := range lines {
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}

	if entry, ok := components.EffectTally.First(ecs.World); ok {
		t := components.EffectTally.Get(entry)
		fmt.Fprintf(&sb, "sounds %d cues %d sparks %d splashes %d\n", t.Sounds, t.Cues, t.Sparks, t.Splashes)
	}
	if td.Race.Completed {
		sb.WriteString("FINISHED\n")
	}
	if GetOrCreateSettings(ecs).Paused {
		sb.WriteString("PAUSED\n")
	}
	if td.Err != nil {
		fmt.Fprintf(&sb, "stopped: %v\n", td.Err)
	}
	return sb.String()
}
