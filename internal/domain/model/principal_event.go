package model

import (
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/valueobject"
)

// EventKind tags a principal-changing event.
type EventKind string

const (
	EventKindWithdrawal EventKind = "WITHDRAWAL"
	EventKindRollover   EventKind = "ROLLOVER"
)

// PrincipalEvent is a change to an investment's principal on a given date.
// Withdrawal and Rollover are the only implementations.
type PrincipalEvent interface {
	ID() uuid.UUID
	Kind() EventKind
	Date() valueobject.Date
	Amount() decimal.Decimal
	Fee() decimal.Decimal
	// Apply returns principal after the event.
	Apply(principal decimal.Decimal) decimal.Decimal

	principalEvent()
}

// Withdrawal removes amount plus fee from the principal.
type Withdrawal struct {
	id     uuid.UUID
	amount decimal.Decimal
	fee    decimal.Decimal
	date   valueobject.Date
}

// NewWithdrawal validates and creates a Withdrawal. A zero fee is the default.
func NewWithdrawal(id uuid.UUID, amount, fee decimal.Decimal, date valueobject.Date) (Withdrawal, error) {
	if amount.IsNegative() {
		return Withdrawal{}, fmt.Errorf("%w: withdrawal amount %s is negative", ErrInvalidAmount, amount)
	}
	if fee.IsNegative() {
		return Withdrawal{}, fmt.Errorf("%w: withdrawal fee %s is negative", ErrInvalidAmount, fee)
	}
	if date.IsZero() {
		return Withdrawal{}, fmt.Errorf("%w: withdrawal date is required", ErrInvalidDate)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Withdrawal{id: id, amount: amount, fee: fee, date: date}, nil
}

func (w Withdrawal) ID() uuid.UUID           { return w.id }
func (w Withdrawal) Kind() EventKind         { return EventKindWithdrawal }
func (w Withdrawal) Date() valueobject.Date  { return w.date }
func (w Withdrawal) Amount() decimal.Decimal { return w.amount }
func (w Withdrawal) Fee() decimal.Decimal    { return w.fee }

// Apply subtracts amount and fee. The result is not floored at zero.
func (w Withdrawal) Apply(principal decimal.Decimal) decimal.Decimal {
	return principal.Sub(w.amount).Sub(w.fee)
}

func (Withdrawal) principalEvent() {}

// Rollover injects amount into the principal.
type Rollover struct {
	id     uuid.UUID
	amount decimal.Decimal
	date   valueobject.Date
}

// NewRollover validates and creates a Rollover.
func NewRollover(id uuid.UUID, amount decimal.Decimal, date valueobject.Date) (Rollover, error) {
	if amount.IsNegative() {
		return Rollover{}, fmt.Errorf("%w: rollover amount %s is negative", ErrInvalidAmount, amount)
	}
	if date.IsZero() {
		return Rollover{}, fmt.Errorf("%w: rollover date is required", ErrInvalidDate)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Rollover{id: id, amount: amount, date: date}, nil
}

func (r Rollover) ID() uuid.UUID           { return r.id }
func (r Rollover) Kind() EventKind         { return EventKindRollover }
func (r Rollover) Date() valueobject.Date  { return r.date }
func (r Rollover) Amount() decimal.Decimal { return r.amount }
func (r Rollover) Fee() decimal.Decimal    { return decimal.Zero }

// Apply adds the rolled-over amount.
func (r Rollover) Apply(principal decimal.Decimal) decimal.Decimal {
	return principal.Add(r.amount)
}

func (Rollover) principalEvent() {}

// EventStream merges withdrawals and rollovers into one sequence ordered by
// date. Withdrawals are placed first and the sort is stable, so on the same
// date withdrawals come before rollovers and each kind keeps its input order.
// The merge runs on every iteration; the sequence can be ranged repeatedly.
func EventStream(withdrawals []Withdrawal, rollovers []Rollover) iter.Seq[PrincipalEvent] {
	return func(yield func(PrincipalEvent) bool) {
		merged := make([]PrincipalEvent, 0, len(withdrawals)+len(rollovers))
		for _, w := range withdrawals {
			merged = append(merged, w)
		}
		for _, r := range rollovers {
			merged = append(merged, r)
		}
		slices.SortStableFunc(merged, func(a, b PrincipalEvent) int {
			return a.Date().Compare(b.Date())
		})
		for _, ev := range merged {
			if !yield(ev) {
				return
			}
		}
	}
}
