package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// AccrualResult is the accrued interest and the principal in effect on the
// query date, both in the investment's currency.
type AccrualResult struct {
	Interest  decimal.Decimal
	Principal decimal.Decimal
}

// ConversionMethod records how an amount reached the reporting currency.
type ConversionMethod string

const (
	// ConversionNative means no conversion was needed.
	ConversionNative ConversionMethod = "NATIVE"
	// ConversionForward multiplied by the from→to rate.
	ConversionForward ConversionMethod = "FORWARD"
	// ConversionReverse divided by the to→from rate.
	ConversionReverse ConversionMethod = "REVERSE"
	// ConversionUnavailable means neither direction had a rate as of the date.
	ConversionUnavailable ConversionMethod = "UNCONVERTIBLE"
)

// Conversion is the outcome of converting an amount as of a date.
type Conversion struct {
	Amount decimal.Decimal
	// Currency is the currency Amount is expressed in: the target, or the
	// source currency for native conversions.
	Currency money.Currency
	Method   ConversionMethod
	// Rate is the rate record used; zero for native and unconvertible conversions.
	Rate FXRate
}

// Converted reports whether the amount is expressed in the target currency.
func (c Conversion) Converted() bool {
	return c.Method != ConversionUnavailable
}

// Contribution is one investment's share of a portfolio valuation.
type Contribution struct {
	InvestmentID uuid.UUID
	Native       money.Money
	Principal    money.Money
	// Reported is zero when the conversion is unavailable; check Conversion.Method.
	Reported     decimal.Decimal
	Conversion   Conversion
}

// Unconvertible reports whether the contribution was left out of the total.
func (c Contribution) Unconvertible() bool {
	return !c.Conversion.Converted()
}

// PortfolioValuation is the aggregated interest of a set of investments.
type PortfolioValuation struct {
	AsOf valueobject.Date
	// Currency is the reporting currency; zero when amounts were summed natively.
	Currency      money.Currency
	TotalInterest decimal.Decimal
	Contributions []Contribution
}

// Partial reports whether any contribution could not be converted.
func (v PortfolioValuation) Partial() bool {
	for _, c := range v.Contributions {
		if c.Unconvertible() {
			return true
		}
	}
	return false
}

// Unconvertible returns the IDs of investments left out of the total.
func (v PortfolioValuation) Unconvertible() []uuid.UUID {
	var ids []uuid.UUID
	for _, c := range v.Contributions {
		if c.Unconvertible() {
			ids = append(ids, c.InvestmentID)
		}
	}
	return ids
}

// DailyPoint is one day of an investment's accrual series. ROI is in the
// reporting currency when one was requested; Principal stays native.
type DailyPoint struct {
	Date      valueobject.Date
	ROI       decimal.Decimal
	Principal decimal.Decimal
	Method    ConversionMethod
}

// Unconvertible reports whether the day's ROI could not be converted and was zeroed.
func (p DailyPoint) Unconvertible() bool {
	return p.Method == ConversionUnavailable
}
