package service

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
)

// AccrualEngine is a domain service that computes simple daily interest on a
// principal that steps up and down at withdrawal and rollover events.
// It holds no state between calls and is safe for concurrent use.
type AccrualEngine struct {
	allowNegativeRates bool
}

// AccrualOption configures an AccrualEngine.
type AccrualOption func(*AccrualEngine)

// WithNegativeRates lets the engine accrue on negative daily rates, for
// investments that intentionally model a loss.
func WithNegativeRates() AccrualOption {
	return func(e *AccrualEngine) {
		e.allowNegativeRates = true
	}
}

// NewAccrualEngine creates a new AccrualEngine.
func NewAccrualEngine(opts ...AccrualOption) *AccrualEngine {
	e := &AccrualEngine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AccrueInvestment accrues an investment from its start date to target.
func (e *AccrualEngine) AccrueInvestment(inv model.Investment, target valueobject.Date) (model.AccrualResult, error) {
	if err := inv.Validate(); err != nil {
		return model.AccrualResult{}, err
	}
	res, err := e.Accrue(inv.Principal(), inv.DailyRate(), inv.StartDate(), target, inv.Events())
	if err != nil {
		return model.AccrualResult{}, fmt.Errorf("investment %s: %w", inv.ID(), err)
	}
	return res, nil
}

// Accrue walks events in order from start to target. Each interval between
// consecutive event dates earns principal × dailyRate × days on the principal
// in effect during that interval, so interest compounds only at event
// boundaries. Events after target are ignored. When start is after target
// the result is zero interest and the unchanged principal.
//
// The cursor follows every applied event, so an event dated before start
// moves the next interval's origin back to that event's date.
func (e *AccrualEngine) Accrue(
	principal, dailyRate decimal.Decimal,
	start, target valueobject.Date,
	events iter.Seq[model.PrincipalEvent],
) (model.AccrualResult, error) {
	if dailyRate.IsNegative() && !e.allowNegativeRates {
		return model.AccrualResult{}, fmt.Errorf("%w: %s", model.ErrNegativeRate, dailyRate)
	}
	if start.IsZero() || target.IsZero() {
		return model.AccrualResult{}, fmt.Errorf("%w: accrual requires start and target dates", model.ErrInvalidDate)
	}
	if start.After(target) {
		return model.AccrualResult{Interest: decimal.Zero, Principal: principal}, nil
	}

	cursor := start
	current := principal
	total := decimal.Zero

	if events != nil {
		for ev := range events {
			if ev.Date().After(target) {
				break
			}
			if days := cursor.DaysUntil(ev.Date()); days > 0 {
				total = total.Add(segmentInterest(current, dailyRate, days))
			}
			current = ev.Apply(current)
			cursor = ev.Date()
		}
	}

	if days := cursor.DaysUntil(target); days > 0 {
		total = total.Add(segmentInterest(current, dailyRate, days))
	}

	return model.AccrualResult{Interest: total, Principal: current}, nil
}

func segmentInterest(principal, dailyRate decimal.Decimal, days int) decimal.Decimal {
	return principal.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days)))
}
