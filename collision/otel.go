package collision

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/rallycore/collision"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
