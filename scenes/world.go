package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/sim"
	"github.com/automoto/rallycore/systems"
	"github.com/automoto/rallycore/vehicle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger swaps the scene the game draws.
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// RaceConfig holds what a race scene needs to build its world.
type RaceConfig struct {
	Track      *trackdata.Track
	Mode       vehicle.Mode
	Difficulty vehicle.Difficulty
	Humans     int
	CPUs       int
	Laps       int
	Tuning     *systems.TuningStore
	Log        zerolog.Logger
}

// RaceScene runs one race in the viewer.
type RaceScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	config       RaceConfig
	once         sync.Once
	err          error
}

func NewRaceScene(sc SceneChanger, config RaceConfig) *RaceScene {
	return &RaceScene{sceneChanger: sc, config: config}
}

func (rs *RaceScene) Update() {
	rs.once.Do(rs.configure)
	if rs.ecs == nil || rs.err != nil {
		return
	}
	rs.ecs.Update()

	if err := systems.TrackErr(rs.ecs); err != nil {
		rs.err = err
		rs.config.Log.Error().Err(err).Msg("race stopped")
	}
}

func (rs *RaceScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if rs.ecs != nil {
		rs.ecs.Draw(screen)
	}
	if rs.err != nil {
		ebitenutil.DebugPrintAt(screen, rs.err.Error(), 10, screen.Bounds().Dy()-20)
	}
}

func (rs *RaceScene) configure() {
	c := rs.config
	e, err := sim.Build(c.Track, sim.Options{
		Mode:       c.Mode,
		Difficulty: c.Difficulty,
		Humans:     c.Humans,
		CPUs:       c.CPUs,
		Laps:       c.Laps,
		Log:        c.Log,
		Viewer:     true,
		Tuning:     c.Tuning,
	})
	if err != nil {
		rs.err = err
		c.Log.Error().Err(err).Msg("could not build race")
		return
	}

	e.AddRenderer(cfg.Default, systems.DrawTrack)
	e.AddRenderer(cfg.Default, systems.DrawDebug)
	e.AddRenderer(cfg.Default, systems.DrawHUD)

	rs.ecs = e
}
