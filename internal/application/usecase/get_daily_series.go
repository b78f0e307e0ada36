package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/bibbank/treasury/internal/application/dto"
	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/port"
	"github.com/bibbank/treasury/internal/domain/service"
)

// GetDailySeries produces a per-day ROI series for one investment.
type GetDailySeries struct {
	investments port.InvestmentRepository
	rates       port.FXRateRepository
	generator   *service.SeriesGenerator
	logger      *slog.Logger
	metrics     instruments
}

// NewGetDailySeries creates a new GetDailySeries use case.
func NewGetDailySeries(
	investments port.InvestmentRepository,
	rates port.FXRateRepository,
	generator *service.SeriesGenerator,
	logger *slog.Logger,
) *GetDailySeries {
	return &GetDailySeries{
		investments: investments,
		rates:       rates,
		generator:   generator,
		logger:      logger,
		metrics:     newInstruments(),
	}
}

// Execute generates the series. The rate table is loaded once as of the end
// date and re-resolved per day by the generator.
func (uc *GetDailySeries) Execute(ctx context.Context, req dto.GetDailySeriesRequest) (dto.DailySeriesResponse, error) {
	ctx, span := tracer.Start(ctx, "GetDailySeries.Execute")
	defer span.End()

	target, err := parseTargetCurrency(req.TargetCurrency)
	if err != nil {
		return dto.DailySeriesResponse{}, err
	}
	end := dateOrToday(req.EndDate)
	span.SetAttributes(
		attribute.String("investment.id", req.InvestmentID.String()),
		attribute.String("end_date", end.String()),
		attribute.String("target_currency", target.Code()),
	)

	var (
		inv   model.Investment
		rates []model.FXRate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inv, err = uc.investments.FindByID(gctx, req.InvestmentID)
		if err != nil {
			return fmt.Errorf("find investment %s: %w", req.InvestmentID, err)
		}
		return nil
	})
	if !target.IsZero() {
		g.Go(func() error {
			var err error
			rates, err = uc.rates.ListEffectiveOnOrBefore(gctx, end)
			if err != nil {
				return fmt.Errorf("list fx rates: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.DailySeriesResponse{}, err
	}

	start := req.StartDate
	if start.IsZero() {
		start = inv.StartDate()
	}

	points, err := uc.generator.Generate(inv, start, end, service.ConversionOptions{
		TargetCurrency: target,
		Rates:          rates,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.DailySeriesResponse{}, err
	}

	attrs := metric.WithAttributes(attribute.String("operation", "series"))
	uc.metrics.valuations.Add(ctx, 1, attrs)
	uc.metrics.seriesPoints.Record(ctx, int64(len(points)), attrs)

	resp := dto.DailySeriesResponse{
		InvestmentID:     inv.ID(),
		Currency:         inv.Currency().Code(),
		ReportedCurrency: inv.Currency().Code(),
		Points:           make([]dto.DailyPointDTO, 0, len(points)),
	}
	if !target.IsZero() {
		resp.ReportedCurrency = target.Code()
	}

	var unconvertible int64
	for _, p := range points {
		if p.Unconvertible() {
			unconvertible++
		}
		resp.Points = append(resp.Points, dto.DailyPointDTO{
			Date:          p.Date.String(),
			ROI:           p.ROI,
			Principal:     p.Principal,
			Unconvertible: p.Unconvertible(),
		})
	}
	if unconvertible > 0 {
		uc.metrics.unconvertible.Add(ctx, unconvertible, attrs)
		uc.logger.DebugContext(ctx, "series has unconvertible days",
			"investment_id", inv.ID(),
			"days", unconvertible,
		)
	}

	return resp, nil
}
