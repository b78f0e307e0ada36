package service

import (
	"fmt"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
)

// SeriesGenerator produces one accrual point per calendar day for charting.
type SeriesGenerator struct {
	engine    *AccrualEngine
	converter *CurrencyConverter
}

// NewSeriesGenerator creates a new SeriesGenerator.
func NewSeriesGenerator(engine *AccrualEngine, converter *CurrencyConverter) *SeriesGenerator {
	return &SeriesGenerator{engine: engine, converter: converter}
}

// Generate returns a point for every day from start to end inclusive, each
// accrued from the investment's own start date. Only the ROI is converted,
// with the rate re-resolved for each day; principal stays native. A day with
// no usable rate reports zero ROI with method UNCONVERTIBLE. End before start
// yields an empty series.
func (g *SeriesGenerator) Generate(
	inv model.Investment,
	start, end valueobject.Date,
	opts ConversionOptions,
) ([]model.DailyPoint, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: series requires start and end dates", model.ErrInvalidDate)
	}
	if end.Before(start) {
		return []model.DailyPoint{}, nil
	}

	points := make([]model.DailyPoint, 0, start.DaysUntil(end)+1)
	for day := start; !day.After(end); day = day.AddDays(1) {
		res, err := g.engine.AccrueInvestment(inv, day)
		if err != nil {
			return nil, fmt.Errorf("series for %s: %w", day, err)
		}
		conv := g.converter.Convert(res.Interest, inv.Currency(), opts.TargetCurrency, day, opts.Rates)
		points = append(points, model.DailyPoint{
			Date:      day,
			ROI:       conv.Amount,
			Principal: res.Principal,
			Method:    conv.Method,
		})
	}
	return points, nil
}
