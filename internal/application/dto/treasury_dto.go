package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/valueobject"
)

// --- Investment ROI DTOs ---

// GetInvestmentROIRequest is the input DTO for a single investment's accrued interest.
type GetInvestmentROIRequest struct {
	InvestmentID uuid.UUID
	// AsOf defaults to today.
	AsOf valueobject.Date
	// TargetCurrency is optional; empty reports natively.
	TargetCurrency string
}

// InvestmentROIResponse is the output DTO for investment ROI queries.
type InvestmentROIResponse struct {
	InvestmentID     uuid.UUID
	AsOf             valueobject.Date
	Currency         string
	Interest         decimal.Decimal
	Principal        decimal.Decimal
	ReportedCurrency string
	ReportedInterest decimal.Decimal
	Conversion       string
	// FXImpact is set when rates exist at both the start date and AsOf.
	FXImpact *decimal.Decimal
}

// --- Portfolio DTOs ---

// GetPortfolioROIRequest is the input DTO for aggregating investments.
type GetPortfolioROIRequest struct {
	// InvestmentIDs selects investments; empty means all.
	InvestmentIDs  []uuid.UUID
	AsOf           valueobject.Date
	TargetCurrency string
}

// ContributionDTO is one investment's share of a portfolio valuation.
type ContributionDTO struct {
	InvestmentID   uuid.UUID
	Currency       string
	NativeInterest decimal.Decimal
	Principal      decimal.Decimal
	Reported       decimal.Decimal
	Conversion     string
	Unconvertible  bool
}

// PortfolioROIResponse is the output DTO for portfolio valuations.
type PortfolioROIResponse struct {
	AsOf          valueobject.Date
	Currency      string
	TotalInterest decimal.Decimal
	Partial       bool
	Contributions []ContributionDTO
}

// --- Daily series DTOs ---

// GetDailySeriesRequest is the input DTO for an investment's daily series.
type GetDailySeriesRequest struct {
	InvestmentID uuid.UUID
	// StartDate defaults to the investment's start date and EndDate to today.
	StartDate      valueobject.Date
	EndDate        valueobject.Date
	TargetCurrency string
}

// DailyPointDTO is one day of a series.
type DailyPointDTO struct {
	Date          string
	ROI           decimal.Decimal
	Principal     decimal.Decimal
	Unconvertible bool
}

// DailySeriesResponse is the output DTO for daily series queries.
type DailySeriesResponse struct {
	InvestmentID     uuid.UUID
	Currency         string
	ReportedCurrency string
	Points           []DailyPointDTO
}
