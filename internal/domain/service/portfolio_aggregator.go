package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// PortfolioAggregator sums accrued interest across investments, optionally in
// a single reporting currency.
type PortfolioAggregator struct {
	engine    *AccrualEngine
	converter *CurrencyConverter
}

// NewPortfolioAggregator creates a new PortfolioAggregator.
func NewPortfolioAggregator(engine *AccrualEngine, converter *CurrencyConverter) *PortfolioAggregator {
	return &PortfolioAggregator{engine: engine, converter: converter}
}

// Aggregate accrues every investment to target and sums the interest.
//
// With a target currency each investment's interest is converted as of
// target. An investment with no forward or reverse rate contributes zero to
// the total and is reported as unconvertible; PortfolioValuation.Partial is
// then true. Without a target currency native amounts are summed as-is.
//
// The first malformed investment aborts the aggregation.
func (a *PortfolioAggregator) Aggregate(
	investments []model.Investment,
	target valueobject.Date,
	opts ConversionOptions,
) (model.PortfolioValuation, error) {
	valuation := model.PortfolioValuation{
		AsOf:          target,
		Currency:      opts.TargetCurrency,
		TotalInterest: decimal.Zero,
		Contributions: make([]model.Contribution, 0, len(investments)),
	}
	if valuation.Currency.IsZero() {
		valuation.Currency = commonCurrency(investments)
	}

	total := money.Zero(valuation.Currency)
	for _, inv := range investments {
		res, err := a.engine.AccrueInvestment(inv, target)
		if err != nil {
			return model.PortfolioValuation{}, fmt.Errorf("aggregate portfolio: %w", err)
		}

		conv := a.converter.Convert(res.Interest, inv.Currency(), opts.TargetCurrency, target, opts.Rates)
		valuation.Contributions = append(valuation.Contributions, model.Contribution{
			InvestmentID: inv.ID(),
			Native:       money.New(res.Interest, inv.Currency()),
			Principal:    money.New(res.Principal, inv.Currency()),
			Reported:     conv.Amount,
			Conversion:   conv,
		})
		if total.Currency().IsZero() {
			// Mixed native currencies with no target: plain decimal sum.
			valuation.TotalInterest = valuation.TotalInterest.Add(conv.Amount)
			continue
		}
		if total, err = total.Add(money.New(conv.Amount, conv.Currency)); err != nil {
			return model.PortfolioValuation{}, fmt.Errorf("aggregate portfolio: investment %s: %w", inv.ID(), err)
		}
	}
	if !total.Currency().IsZero() {
		valuation.TotalInterest = total.Amount()
	}

	return valuation, nil
}

// commonCurrency returns the currency shared by all investments, or the zero
// Currency when they are mixed or there are none.
func commonCurrency(investments []model.Investment) money.Currency {
	if len(investments) == 0 {
		return money.Currency{}
	}
	cur := investments[0].Currency()
	for _, inv := range investments[1:] {
		if inv.Currency() != cur {
			return money.Currency{}
		}
	}
	return cur
}
