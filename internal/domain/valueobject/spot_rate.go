package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SpotRate is the quote carried by one directed rate record: one unit of the
// record's from-currency buys Rate units of its to-currency.
//
// A record is read forward when converting from→to (multiply by Rate) and in
// reverse when the requested pair is to→from and no forward record exists
// (divide by Rate, i.e. multiply by Inverse). The quote itself never
// changes direction; only the reader does.
type SpotRate struct {
	rate decimal.Decimal
}

// NewSpotRate rejects zero and negative quotes, which cannot be inverted.
func NewSpotRate(rate decimal.Decimal) (SpotRate, error) {
	if !rate.IsPositive() {
		return SpotRate{}, fmt.Errorf("spot rate must be positive, got %s", rate.String())
	}
	return SpotRate{rate: rate}, nil
}

// Rate is the forward quote.
func (sr SpotRate) Rate() decimal.Decimal {
	return sr.rate
}

// Inverse is the quote as seen from the reverse pair, 1/Rate.
func (sr SpotRate) Inverse() decimal.Decimal {
	return decimal.NewFromInt(1).Div(sr.rate)
}
