package valueobject

import (
	"fmt"

	"github.com/bibbank/treasury/pkg/money"
)

// CurrencyPair is an ordered from/to currency pair. USD/NGN and NGN/USD are
// different pairs.
type CurrencyPair struct {
	from money.Currency
	to   money.Currency
}

// NewCurrencyPair creates a CurrencyPair; both currencies must be set and differ.
func NewCurrencyPair(from, to money.Currency) (CurrencyPair, error) {
	if from.IsZero() || to.IsZero() {
		return CurrencyPair{}, fmt.Errorf("currency pair requires both currencies, got %q/%q", from, to)
	}
	if from == to {
		return CurrencyPair{}, fmt.Errorf("from and to currencies must differ: %s/%s", from, to)
	}
	return CurrencyPair{from: from, to: to}, nil
}

// From returns the currency being converted from.
func (cp CurrencyPair) From() money.Currency { return cp.from }

// To returns the currency being converted to.
func (cp CurrencyPair) To() money.Currency { return cp.to }

// String returns the pair formatted as "FROM/TO" (e.g., "USD/NGN").
func (cp CurrencyPair) String() string {
	return fmt.Sprintf("%s/%s", cp.from, cp.to)
}

// Inverse returns the reversed pair (e.g., USD/NGN becomes NGN/USD).
func (cp CurrencyPair) Inverse() CurrencyPair {
	return CurrencyPair{from: cp.to, to: cp.from}
}
