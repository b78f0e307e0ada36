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

// GetInvestmentROI accrues one investment as of a date and optionally
// converts the interest into a reporting currency.
type GetInvestmentROI struct {
	investments port.InvestmentRepository
	rates       port.FXRateRepository
	publisher   port.EventPublisher
	engine      *service.AccrualEngine
	converter   *service.CurrencyConverter
	logger      *slog.Logger
	metrics     instruments
}

// NewGetInvestmentROI creates a new GetInvestmentROI use case.
func NewGetInvestmentROI(
	investments port.InvestmentRepository,
	rates port.FXRateRepository,
	publisher port.EventPublisher,
	engine *service.AccrualEngine,
	converter *service.CurrencyConverter,
	logger *slog.Logger,
) *GetInvestmentROI {
	return &GetInvestmentROI{
		investments: investments,
		rates:       rates,
		publisher:   publisher,
		engine:      engine,
		converter:   converter,
		logger:      logger,
		metrics:     newInstruments(),
	}
}

// Execute loads the investment and, when converting, the rate table in
// parallel, then accrues and publishes an InvestmentAccrued event.
func (uc *GetInvestmentROI) Execute(ctx context.Context, req dto.GetInvestmentROIRequest) (dto.InvestmentROIResponse, error) {
	ctx, span := tracer.Start(ctx, "GetInvestmentROI.Execute")
	defer span.End()

	target, err := parseTargetCurrency(req.TargetCurrency)
	if err != nil {
		return dto.InvestmentROIResponse{}, err
	}
	asOf := dateOrToday(req.AsOf)
	span.SetAttributes(
		attribute.String("investment.id", req.InvestmentID.String()),
		attribute.String("as_of", asOf.String()),
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
		return dto.InvestmentROIResponse{}, err
	}

	res, err := uc.engine.AccrueInvestment(inv, asOf)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.InvestmentROIResponse{}, fmt.Errorf("accrue investment: %w", err)
	}

	conv := uc.converter.Convert(res.Interest, inv.Currency(), target, asOf, rates)
	uc.metrics.valuations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "investment")))
	if !conv.Converted() {
		uc.metrics.unconvertible.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "investment")))
		uc.logger.WarnContext(ctx, "no fx rate for investment",
			"investment_id", inv.ID(),
			"interest", money.New(res.Interest, inv.Currency()).String(),
			"target_currency", target.Code(),
			"as_of", asOf.String(),
		)
	}

	resp := dto.InvestmentROIResponse{
		InvestmentID:     inv.ID(),
		AsOf:             asOf,
		Currency:         inv.Currency().Code(),
		Interest:         res.Interest,
		Principal:        res.Principal,
		ReportedCurrency: inv.Currency().Code(),
		ReportedInterest: conv.Amount,
		Conversion:       string(conv.Method),
	}
	if !target.IsZero() {
		resp.ReportedCurrency = target.Code()
		original, m1 := uc.converter.EffectiveRate(inv.Currency(), target, inv.StartDate(), rates)
		current, m2 := uc.converter.EffectiveRate(inv.Currency(), target, asOf, rates)
		if m1 != model.ConversionUnavailable && m2 != model.ConversionUnavailable {
			impact := service.FXImpact(res.Interest, original, current)
			resp.FXImpact = &impact
		}
	}

	evt := event.NewInvestmentAccrued(inv, asOf, res, target.Code(), conv)
	if err := uc.publisher.Publish(ctx, TopicInvestmentAccrued, evt); err != nil {
		uc.logger.WarnContext(ctx, "publish investment accrued event", "investment_id", inv.ID(), "error", err)
	}

	return resp, nil
}
