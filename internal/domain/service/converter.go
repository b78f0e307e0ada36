package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// ConversionOptions selects an optional reporting currency and the rate table
// used to reach it. A zero TargetCurrency keeps amounts in their native currency.
type ConversionOptions struct {
	TargetCurrency money.Currency
	Rates          []model.FXRate
}

// CurrencyConverter converts amounts as of a date using the forward pair and,
// when that is missing, the reverse pair. It applies to every currency pair.
type CurrencyConverter struct {
	resolver *RateResolver
}

// NewCurrencyConverter creates a converter backed by resolver.
func NewCurrencyConverter(resolver *RateResolver) *CurrencyConverter {
	return &CurrencyConverter{resolver: resolver}
}

// Convert expresses amount (in from) in to as of asOf. A forward rate
// multiplies; a reverse rate divides. When neither direction resolves the
// result has method UNCONVERTIBLE and a zero amount in to.
func (c *CurrencyConverter) Convert(
	amount decimal.Decimal,
	from, to money.Currency,
	asOf valueobject.Date,
	rates []model.FXRate,
) model.Conversion {
	src := money.New(amount, from)
	if to.IsZero() || from == to {
		return conversion(src, model.ConversionNative, model.FXRate{})
	}
	if rate, ok := c.resolver.Resolve(from, to, asOf, rates); ok {
		return conversion(src.ConvertTo(to, rate.Rate().Rate()), model.ConversionForward, rate)
	}
	if rate, ok := c.resolver.Resolve(to, from, asOf, rates); ok {
		return conversion(src.ConvertByInverse(to, rate.Rate().Rate()), model.ConversionReverse, rate)
	}
	return conversion(money.Zero(to), model.ConversionUnavailable, model.FXRate{})
}

func conversion(m money.Money, method model.ConversionMethod, rate model.FXRate) model.Conversion {
	return model.Conversion{Amount: m.Amount(), Currency: m.Currency(), Method: method, Rate: rate}
}

// EffectiveRate returns how many units of to one unit of from buys as of asOf,
// inverting a reverse record when needed.
func (c *CurrencyConverter) EffectiveRate(
	from, to money.Currency,
	asOf valueobject.Date,
	rates []model.FXRate,
) (decimal.Decimal, model.ConversionMethod) {
	if to.IsZero() || from == to {
		return decimal.NewFromInt(1), model.ConversionNative
	}
	if rate, ok := c.resolver.Resolve(from, to, asOf, rates); ok {
		return rate.Rate().Rate(), model.ConversionForward
	}
	if rate, ok := c.resolver.Resolve(to, from, asOf, rates); ok {
		return rate.Rate().Inverse(), model.ConversionReverse
	}
	return decimal.Zero, model.ConversionUnavailable
}
