package service

import (
	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// RateResolver selects the FX rate in force for an ordered currency pair on a
// given date from an unordered table of historical rate records.
type RateResolver struct{}

// NewRateResolver creates a new RateResolver.
func NewRateResolver() *RateResolver {
	return &RateResolver{}
}

// Resolve returns the record for from→to with the latest effective date on or
// before asOf. Among records sharing that date the latest createdAt wins; an
// exact createdAt tie keeps the earlier record in the table.
//
// The pair is direction-sensitive and inverses are never inferred. The
// boolean is false when no record qualifies. The status flag is not consulted.
func (r *RateResolver) Resolve(from, to money.Currency, asOf valueobject.Date, rates []model.FXRate) (model.FXRate, bool) {
	var (
		best  model.FXRate
		found bool
	)
	for _, rate := range rates {
		if rate.From() != from || rate.To() != to || rate.EffectiveDate().After(asOf) {
			continue
		}
		if !found || newer(rate, best) {
			best, found = rate, true
		}
	}
	return best, found
}

func newer(a, b model.FXRate) bool {
	if c := a.EffectiveDate().Compare(b.EffectiveDate()); c != 0 {
		return c > 0
	}
	return a.CreatedAt().After(b.CreatedAt())
}
