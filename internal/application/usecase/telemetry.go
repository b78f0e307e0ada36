package usecase

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/bibbank/treasury/internal/application/usecase"

var tracer = otel.Tracer(instrumentationName)

// instruments are created from the global meter provider, so they report to
// whichever provider observability.InitMetrics installed.
type instruments struct {
	valuations    metric.Int64Counter
	unconvertible metric.Int64Counter
	seriesPoints  metric.Int64Histogram
}

func newInstruments() instruments {
	meter := otel.Meter(instrumentationName)

	valuations, err := meter.Int64Counter("treasury.valuations",
		metric.WithDescription("Number of accrual valuations computed, by operation."))
	if err != nil {
		otel.Handle(err)
	}
	unconvertible, err := meter.Int64Counter("treasury.unconvertible_contributions",
		metric.WithDescription("Contributions or series points with no usable FX rate."))
	if err != nil {
		otel.Handle(err)
	}
	seriesPoints, err := meter.Int64Histogram("treasury.series.points",
		metric.WithDescription("Number of points in generated daily series."))
	if err != nil {
		otel.Handle(err)
	}

	return instruments{
		valuations:    valuations,
		unconvertible: unconvertible,
		seriesPoints:  seriesPoints,
	}
}
