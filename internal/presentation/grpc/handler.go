package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/treasury/internal/application/dto"
	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
)

// Use case contracts, satisfied by the application/usecase types.
type (
	InvestmentROIQuery interface {
		Execute(ctx context.Context, req dto.GetInvestmentROIRequest) (dto.InvestmentROIResponse, error)
	}
	PortfolioROIQuery interface {
		Execute(ctx context.Context, req dto.GetPortfolioROIRequest) (dto.PortfolioROIResponse, error)
	}
	DailySeriesQuery interface {
		Execute(ctx context.Context, req dto.GetDailySeriesRequest) (dto.DailySeriesResponse, error)
	}
)

// Compile-time assertion that Handler implements TreasuryServiceServer.
var _ TreasuryServiceServer = (*Handler)(nil)

// Handler implements the TreasuryServiceServer gRPC interface.
type Handler struct {
	UnimplementedTreasuryServiceServer
	investmentROI InvestmentROIQuery
	portfolioROI  PortfolioROIQuery
	dailySeries   DailySeriesQuery
	logger        *slog.Logger
}

// NewHandler creates a new gRPC Handler.
func NewHandler(
	investmentROI InvestmentROIQuery,
	portfolioROI PortfolioROIQuery,
	dailySeries DailySeriesQuery,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		investmentROI: investmentROI,
		portfolioROI:  portfolioROI,
		dailySeries:   dailySeries,
		logger:        logger,
	}
}

// GetInvestmentROI returns the interest accrued by one investment.
func (h *Handler) GetInvestmentROI(ctx context.Context, req *GetInvestmentROIRequest) (*GetInvestmentROIResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := parseID("investment_id", req.InvestmentID)
	if err != nil {
		return nil, err
	}
	asOf, err := parseOptionalDate("as_of_date", req.AsOfDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.investmentROI.Execute(ctx, dto.GetInvestmentROIRequest{
		InvestmentID:   id,
		AsOf:           asOf,
		TargetCurrency: req.TargetCurrency,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "GetInvestmentROI failed", "error", err, "investment_id", req.InvestmentID)
		return nil, toStatus(err)
	}

	h.logger.InfoContext(ctx, "GetInvestmentROI succeeded",
		"investment_id", resp.InvestmentID.String(),
		"as_of", resp.AsOf.String(),
		"interest", resp.Interest.String(),
	)
	out := &GetInvestmentROIResponse{
		InvestmentID: resp.InvestmentID.String(),
		AsOfDate:     resp.AsOf.String(),
		Interest:     moneyMsg(resp.Interest, resp.Currency),
		Principal:    moneyMsg(resp.Principal, resp.Currency),
		Conversion:   resp.Conversion,
	}
	if resp.ReportedCurrency != "" {
		out.Reported = moneyMsg(resp.ReportedInterest, resp.ReportedCurrency)
	}
	if resp.FXImpact != nil {
		out.FXImpact = resp.FXImpact.String()
	}
	return out, nil
}

// GetPortfolioROI values a set of investments, optionally in one currency.
func (h *Handler) GetPortfolioROI(ctx context.Context, req *GetPortfolioROIRequest) (*GetPortfolioROIResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	ids := make([]uuid.UUID, 0, len(req.InvestmentIDs))
	for _, raw := range req.InvestmentIDs {
		id, err := parseID("investment_ids", raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	asOf, err := parseOptionalDate("as_of_date", req.AsOfDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.portfolioROI.Execute(ctx, dto.GetPortfolioROIRequest{
		InvestmentIDs:  ids,
		AsOf:           asOf,
		TargetCurrency: req.TargetCurrency,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "GetPortfolioROI failed", "error", err, "investments", len(ids))
		return nil, toStatus(err)
	}

	h.logger.InfoContext(ctx, "GetPortfolioROI succeeded",
		"as_of", resp.AsOf.String(),
		"currency", resp.Currency,
		"total_interest", resp.TotalInterest.String(),
		"partial", resp.Partial,
	)
	out := &GetPortfolioROIResponse{
		AsOfDate:      resp.AsOf.String(),
		TotalInterest: moneyMsg(resp.TotalInterest, resp.Currency),
		Partial:       resp.Partial,
		Contributions: make([]*ContributionMsg, 0, len(resp.Contributions)),
	}
	for _, c := range resp.Contributions {
		out.Contributions = append(out.Contributions, &ContributionMsg{
			InvestmentID:   c.InvestmentID.String(),
			NativeInterest: moneyMsg(c.NativeInterest, c.Currency),
			Principal:      moneyMsg(c.Principal, c.Currency),
			Reported:       c.Reported.String(),
			Conversion:     c.Conversion,
			Unconvertible:  c.Unconvertible,
		})
	}
	return out, nil
}

// GetDailySeries returns one accrued-interest point per day.
func (h *Handler) GetDailySeries(ctx context.Context, req *GetDailySeriesRequest) (*GetDailySeriesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := parseID("investment_id", req.InvestmentID)
	if err != nil {
		return nil, err
	}
	start, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.dailySeries.Execute(ctx, dto.GetDailySeriesRequest{
		InvestmentID:   id,
		StartDate:      start,
		EndDate:        end,
		TargetCurrency: req.TargetCurrency,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "GetDailySeries failed", "error", err, "investment_id", req.InvestmentID)
		return nil, toStatus(err)
	}

	out := &GetDailySeriesResponse{
		InvestmentID: resp.InvestmentID.String(),
		Currency:     resp.ReportedCurrency,
		Points:       make([]*DailyPointMsg, 0, len(resp.Points)),
	}
	for _, p := range resp.Points {
		out.Points = append(out.Points, &DailyPointMsg{
			Date:          p.Date,
			ROI:           p.ROI.String(),
			Principal:     p.Principal.String(),
			Unconvertible: p.Unconvertible,
		})
	}
	return out, nil
}

func moneyMsg(amount decimal.Decimal, currency string) *MoneyMsg {
	return &MoneyMsg{Amount: amount.String(), Currency: currency}
}

func parseID(field, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return id, nil
}

func parseOptionalDate(field, raw string) (valueobject.Date, error) {
	if raw == "" {
		return valueobject.Date{}, nil
	}
	d, err := valueobject.ParseDate(raw)
	if err != nil {
		return valueobject.Date{}, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return d, nil
}

// toStatus maps domain errors to gRPC status codes. Unknown errors are not
// echoed to the caller.
func toStatus(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrNegativeRate),
		errors.Is(err, model.ErrUnsupportedCurrency),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidDate):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
