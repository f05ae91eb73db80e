// Command rallysim races CPU cars around a track without a window and reports
// the standings. Configured human cars are placed but never driven.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/rallycore/collision"
	"github.com/automoto/rallycore/components"
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/logging"
	"github.com/automoto/rallycore/shared/trackdata"
	"github.com/automoto/rallycore/sim"
	"github.com/automoto/rallycore/vehicle"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/yohamta/donburi"
)

func main() {
	configDir := flag.String("config", ".", "Directory holding rallycore.yaml")
	trackPath := flag.String("track", "", "TMX track to load (overrides the config file)")
	flag.Parse()

	os.Exit(run(*configDir, *trackPath))
}

func run(configDir, trackPath string) int {
	err := config.Load(configDir)
	defaulted := errors.As(err, &viper.ConfigFileNotFoundError{})
	if defaulted {
		err = config.Apply()
	}

	log := logging.New(os.Stdout, config.GetString("logLevel"), config.GetBool("prettyLog"))
	if err != nil {
		log.Error().Err(err).Msg("config")
		return 1
	}
	if defaulted {
		log.Warn().Str("dir", configDir).Msg("no config file, using defaults")
	}

	if trackPath == "" {
		trackPath = config.GetString("track")
	}
	track, err := trackdata.Load(os.DirFS(filepath.Dir(trackPath)), filepath.Base(trackPath))
	if err != nil {
		log.Error().Err(err).Msg("loading track")
		return 1
	}

	e, err := sim.Build(track, raceOptions(log))
	if err != nil {
		log.Error().Err(err).Msg("building race")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	duration := config.GetDuration("duration")
	loop := sim.NewLoop(e, config.C.TickRate, log)
	if config.GetBool("realtime") {
		ctx, cancel := context.WithTimeout(ctx, duration)
		defer cancel()
		err = loop.Run(ctx)
	} else {
		err = loop.RunFrames(ctx, int(duration.Seconds()*float64(config.C.TickRate)))
	}

	report(log, e.World)
	if err != nil {
		log.Error().Err(err).Uint64("ticks", loop.Ticks()).Msg("simulation stopped")
		if errors.Is(err, collision.ErrCapacityExceeded) {
			return 2
		}
		return 1
	}
	return 0
}

// raceOptions reads the race block. Human cars get no input here and sit on
// the grid, which still anchors the CPU catch-up handicaps.
func raceOptions(log zerolog.Logger) sim.Options {
	return sim.Options{
		Mode:       vehicle.ParseMode(config.GetString("race.mode")),
		Difficulty: vehicle.ParseDifficulty(config.GetString("race.difficulty")),
		Humans:     config.GetInt("race.humanCars"),
		CPUs:       config.GetInt("race.cpuCars"),
		Laps:       config.GetInt("race.laps"),
		Log:        log,
	}
}

// report logs the final standings.
func report(log zerolog.Logger, w donburi.World) {
	components.Car.Each(w, func(entry *donburi.Entry) {
		c := components.Car.Get(entry).Car
		p := components.Progress.Get(entry)
		log.Info().
			Str("car", c.Body.Name).
			Int("place", c.Place).
			Int("lap", p.Lap).
			Int("checkpoint", p.Checkpoint).
			Bool("finished", p.Finished).
			Bool("eliminated", p.Eliminated).
			Float64("speed", c.Body.Speed2D).
			Msg("standing")
	})
}
