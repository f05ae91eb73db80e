// Package logging builds the zerolog loggers used by the viewer and the
// headless runner.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level maps a config string onto a zerolog level, defaulting to info.
func Level(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a timestamped logger writing to w. pretty selects the console
// format.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).Level(Level(level)).With().Timestamp().Logger()
}

// Sampled wraps log for per-frame events: a burst of 5 every 10 seconds,
// then 1 in 100.
func Sampled(log zerolog.Logger) zerolog.Logger {
	return log.With().Bool("sampled", true).Logger().Sample(&zerolog.BurstSampler{
		Burst:       5,
		Period:      10 * time.Second,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})
}
