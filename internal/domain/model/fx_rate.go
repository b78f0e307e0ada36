package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// RateStatus marks whether a rate record has been superseded. The resolver
// does its own as-of selection and ignores it.
type RateStatus string

const (
	RateStatusActive     RateStatus = "ACTIVE"
	RateStatusSuperseded RateStatus = "SUPERSEDED"
)

// FXRate is one historical rate record for an ordered currency pair.
// Several records may share a pair and effective date; the latest createdAt wins.
type FXRate struct {
	id            uuid.UUID
	pair          valueobject.CurrencyPair
	rate          valueobject.SpotRate
	effectiveDate valueobject.Date
	status        RateStatus
	createdAt     time.Time
}

// NewFXRate validates and creates an FXRate.
func NewFXRate(
	id uuid.UUID,
	from, to money.Currency,
	rate decimal.Decimal,
	effectiveDate valueobject.Date,
	status RateStatus,
	createdAt time.Time,
) (FXRate, error) {
	pair, err := valueobject.NewCurrencyPair(from, to)
	if err != nil {
		return FXRate{}, fmt.Errorf("%w: %w", ErrUnsupportedCurrency, err)
	}
	spot, err := valueobject.NewSpotRate(rate)
	if err != nil {
		return FXRate{}, fmt.Errorf("%w: %s: %w", ErrInvalidAmount, pair, err)
	}
	if effectiveDate.IsZero() {
		return FXRate{}, fmt.Errorf("%w: effective date is required for %s", ErrInvalidDate, pair)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	if status == "" {
		status = RateStatusActive
	}
	return FXRate{
		id:            id,
		pair:          pair,
		rate:          spot,
		effectiveDate: effectiveDate,
		status:        status,
		createdAt:     createdAt.UTC(),
	}, nil
}

// Accessors
func (r FXRate) ID() uuid.UUID                  { return r.id }
func (r FXRate) Pair() valueobject.CurrencyPair { return r.pair }
func (r FXRate) From() money.Currency           { return r.pair.From() }
func (r FXRate) To() money.Currency             { return r.pair.To() }
func (r FXRate) Rate() valueobject.SpotRate     { return r.rate }
func (r FXRate) EffectiveDate() valueobject.Date { return r.effectiveDate }
func (r FXRate) Status() RateStatus             { return r.status }
func (r FXRate) CreatedAt() time.Time           { return r.createdAt }
