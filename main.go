package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/automoto/rallycore/assets"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/scenes"
	"github.com/automoto/rallycore/shared/logging"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/systems"
	"github.com/automoto/rallycore/vehicle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/viper"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

// loadTrack prefers a track on disk and falls back to the bundled sandbox.
func loadTrack(p string) (*trackdata.Track, error) {
	if _, err := os.Stat(p); err == nil {
		return trackdata.Load(os.DirFS(filepath.Dir(p)), filepath.Base(p))
	}
	return assets.LoadTrack("sandbox.tmx")
}

func main() {
	err := config.Load(".")
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		err = config.Apply()
	}
	log := logging.New(os.Stdout, config.GetString("logLevel"), config.GetBool("prettyLog"))
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	track, err := loadTrack(config.GetString("track"))
	if err != nil {
		log.Fatal().Err(err).Msg("loading track")
	}

	// Restore the last saved tuning block
	store, err := systems.OpenTuningStore(config.GetString("dataDir"))
	if err != nil {
		log.Warn().Err(err).Msg("could not open tuning store")
	} else if ok, err := store.Apply(); err != nil {
		log.Warn().Err(err).Msg("could not load tuning")
	} else if ok {
		log.Info().Msg("saved tuning applied")
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("rallycore: " + track.Name)
	ebiten.SetTPS(config.C.TickRate)

	g := &Game{}
	g.scene = scenes.NewRaceScene(g, scenes.RaceConfig{
		Track:      track,
		Mode:       vehicle.ParseMode(config.GetString("race.mode")),
		Difficulty: vehicle.ParseDifficulty(config.GetString("race.difficulty")),
		Humans:     config.GetInt("race.humanCars"),
		CPUs:       config.GetInt("race.cpuCars"),
		Laps:       config.GetInt("race.laps"),
		Tuning:     store,
		Log:        log,
	})

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("viewer")
	}
}
