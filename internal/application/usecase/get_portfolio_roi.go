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
	"github.com/bibbank/treasury/internal/domain/event"
	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/port"
	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/pkg/money"
)

// GetPortfolioROI aggregates accrued interest across a set of investments.
type GetPortfolioROI struct {
	investments     port.InvestmentRepository
	rates           port.FXRateRepository
	publisher       port.EventPublisher
	aggregator      *service.PortfolioAggregator
	defaultCurrency money.Currency
	logger          *slog.Logger
	metrics         instruments
}

// NewGetPortfolioROI creates a new GetPortfolioROI use case. defaultCurrency
// is used when a request names no target currency; zero keeps native sums.
func NewGetPortfolioROI(
	investments port.InvestmentRepository,
	rates port.FXRateRepository,
	publisher port.EventPublisher,
	aggregator *service.PortfolioAggregator,
	defaultCurrency money.Currency,
	logger *slog.Logger,
) *GetPortfolioROI {
	return &GetPortfolioROI{
		investments:     investments,
		rates:           rates,
		publisher:       publisher,
		aggregator:      aggregator,
		defaultCurrency: defaultCurrency,
		logger:          logger,
		metrics:         newInstruments(),
	}
}

// Execute values the selected investments as of the requested date. Investments
// with no usable rate are listed as unconvertible and the response is Partial.
func (uc *GetPortfolioROI) Execute(ctx context.Context, req dto.GetPortfolioROIRequest) (dto.PortfolioROIResponse, error) {
	ctx, span := tracer.Start(ctx, "GetPortfolioROI.Execute")
	defer span.End()

	target, err := parseTargetCurrency(req.TargetCurrency)
	if err != nil {
		return dto.PortfolioROIResponse{}, err
	}
	if target.IsZero() {
		target = uc.defaultCurrency
	}
	asOf := dateOrToday(req.AsOf)
	span.SetAttributes(
		attribute.Int("investments.requested", len(req.InvestmentIDs)),
		attribute.String("as_of", asOf.String()),
		attribute.String("target_currency", target.Code()),
	)

	var (
		investments []model.Investment
		rates       []model.FXRate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		investments, err = uc.investments.List(gctx, req.InvestmentIDs...)
		if err != nil {
			return fmt.Errorf("list investments: %w", err)
		}
		return nil
	})
	if !target.IsZero() {
		g.Go(func() error {
			var err error
			rates, err = uc.rates.ListEffectiveOnOrBefore(gctx, asOf)
			if err != nil {
				return fmt.Errorf("list fx rates: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.PortfolioROIResponse{}, err
	}

	valuation, err := uc.aggregator.Aggregate(investments, asOf, service.ConversionOptions{
		TargetCurrency: target,
		Rates:          rates,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.PortfolioROIResponse{}, err
	}

	attrs := metric.WithAttributes(attribute.String("operation", "portfolio"))
	uc.metrics.valuations.Add(ctx, 1, attrs)
	if missing := valuation.Unconvertible(); len(missing) > 0 {
		uc.metrics.unconvertible.Add(ctx, int64(len(missing)), attrs)
		uc.logger.WarnContext(ctx, "portfolio valuation is partial",
			"unconvertible", len(missing),
			"target_currency", target.Code(),
			"as_of", asOf.String(),
		)
	}

	evt := event.NewPortfolioValued(valuation)
	if err := uc.publisher.Publish(ctx, TopicPortfolioValued, evt); err != nil {
		uc.logger.WarnContext(ctx, "publish portfolio valued event", "valuation_id", evt.ValuationID, "error", err)
	}

	return toPortfolioResponse(valuation), nil
}

func toPortfolioResponse(v model.PortfolioValuation) dto.PortfolioROIResponse {
	resp := dto.PortfolioROIResponse{
		AsOf:          v.AsOf,
		Currency:      v.Currency.Code(),
		TotalInterest: v.TotalInterest,
		Partial:       v.Partial(),
		Contributions: make([]dto.ContributionDTO, 0, len(v.Contributions)),
	}
	for _, c := range v.Contributions {
		resp.Contributions = append(resp.Contributions, dto.ContributionDTO{
			InvestmentID:   c.InvestmentID,
			Currency:       c.Native.Currency().Code(),
			NativeInterest: c.Native.Amount(),
			Principal:      c.Principal.Amount(),
			Reported:       c.Reported,
			Conversion:     string(c.Conversion.Method),
			Unconvertible:  c.Unconvertible(),
		})
	}
	return resp
}
