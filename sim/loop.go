package sim

import (
	"context"
	"time"

	"github.com/automoto/rallycore/systems"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// Loop steps a world at a fixed tick rate.
type Loop struct {
	ecs      *ecs.ECS
	tickRate int
	log      zerolog.Logger
	ticks    uint64
}

func NewLoop(e *ecs.ECS, tickRate int, log zerolog.Logger) *Loop {
	return &Loop{
		ecs:      e,
		tickRate: max(tickRate, 1),
		log:      log.With().Str("component", "loop").Logger(),
	}
}

// Ticks is the number of frames stepped so far.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Step runs one frame and reports the error that stopped the simulation, if
// any.
func (l *Loop) Step() error {
	l.ecs.Update()
	l.ticks++
	return systems.TrackErr(l.ecs)
}

// Run steps on a wall-clock ticker until ctx is done or a frame fails.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	l.log.Info().Int("tickRate", l.tickRate).Msg("loop started")

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Uint64("ticks", l.ticks).Msg("loop stopped")
			return nil
		case <-ticker.C:
			if err := l.Step(); err != nil {
				return err
			}
		}
	}
}

// RunFrames steps n frames back to back, without waiting on the clock.
func (l *Loop) RunFrames(ctx context.Context, n int) error {
	for range n {
		if ctx.Err() != nil {
			return nil
		}
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}
