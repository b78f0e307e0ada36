package model

import (
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// InvestmentStatus is the lifecycle state of an investment. Accrual does not
// consult it.
type InvestmentStatus string

const (
	InvestmentStatusActive     InvestmentStatus = "ACTIVE"
	InvestmentStatusMatured    InvestmentStatus = "MATURED"
	InvestmentStatusTerminated InvestmentStatus = "TERMINATED"
)

// ParseInvestmentStatus validates a status string.
func ParseInvestmentStatus(s string) (InvestmentStatus, error) {
	switch st := InvestmentStatus(s); st {
	case InvestmentStatusActive, InvestmentStatusMatured, InvestmentStatusTerminated:
		return st, nil
	default:
		return "", fmt.Errorf("unknown investment status %q", s)
	}
}

// InvestmentParams carries the fields of an Investment snapshot.
type InvestmentParams struct {
	ID           uuid.UUID
	BankID       uuid.UUID
	Principal    decimal.Decimal
	DailyRate    decimal.Decimal
	Currency     money.Currency
	StartDate    valueobject.Date
	MaturityDate *valueobject.Date
	Status       InvestmentStatus
	Withdrawals  []Withdrawal
	Rollovers    []Rollover
}

// Investment is a read-only snapshot of a time deposit: a principal earning a
// daily rate from its start date, changed over time by withdrawals and rollovers.
type Investment struct {
	id           uuid.UUID
	bankID       uuid.UUID
	principal    decimal.Decimal
	dailyRate    decimal.Decimal
	currency     money.Currency
	startDate    valueobject.Date
	maturityDate *valueobject.Date
	status       InvestmentStatus
	withdrawals  []Withdrawal
	rollovers    []Rollover
}

// NewInvestment creates an Investment, validating the opening principal,
// currency and start date. A missing ID is generated and a missing status
// defaults to ACTIVE. The sign of the daily rate is checked by the accrual engine.
func NewInvestment(p InvestmentParams) (Investment, error) {
	if p.Principal.IsNegative() {
		return Investment{}, fmt.Errorf("%w: principal %s is negative", ErrInvalidAmount, p.Principal)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = InvestmentStatusActive
	}
	inv := ReconstructInvestment(p)
	if err := inv.Validate(); err != nil {
		return Investment{}, err
	}
	if inv.maturityDate != nil && inv.maturityDate.Before(inv.startDate) {
		return Investment{}, fmt.Errorf("%w: maturity date %s is before start date %s", ErrInvalidDate, inv.maturityDate, inv.startDate)
	}
	return inv, nil
}

// ReconstructInvestment recreates an Investment from persistence without validation.
func ReconstructInvestment(p InvestmentParams) Investment {
	return Investment{
		id:           p.ID,
		bankID:       p.BankID,
		principal:    p.Principal,
		dailyRate:    p.DailyRate,
		currency:     p.Currency,
		startDate:    p.StartDate,
		maturityDate: p.MaturityDate,
		status:       p.Status,
		withdrawals:  slices.Clone(p.Withdrawals),
		rollovers:    slices.Clone(p.Rollovers),
	}
}

// Validate checks the fields the accrual walk cannot do without: a supported
// currency and a start date. The principal sign is only checked at creation.
func (inv Investment) Validate() error {
	if _, err := money.NewCurrency(inv.currency.Code()); err != nil {
		return fmt.Errorf("investment %s: %w", inv.id, err)
	}
	if inv.startDate.IsZero() {
		return fmt.Errorf("investment %s: %w: start date is required", inv.id, ErrInvalidDate)
	}
	return nil
}

// WithWithdrawal returns a copy of the investment with w appended.
func (inv Investment) WithWithdrawal(w Withdrawal) Investment {
	out := inv
	out.withdrawals = append(slices.Clone(inv.withdrawals), w)
	return out
}

// WithRollover returns a copy of the investment with r appended.
func (inv Investment) WithRollover(r Rollover) Investment {
	out := inv
	out.rollovers = append(slices.Clone(inv.rollovers), r)
	return out
}

// Events returns the merged, date-ordered principal events of the investment.
func (inv Investment) Events() iter.Seq[PrincipalEvent] {
	return EventStream(inv.withdrawals, inv.rollovers)
}

// Accessors
func (inv Investment) ID() uuid.UUID                    { return inv.id }
func (inv Investment) BankID() uuid.UUID                { return inv.bankID }
func (inv Investment) Principal() decimal.Decimal       { return inv.principal }
func (inv Investment) DailyRate() decimal.Decimal       { return inv.dailyRate }
func (inv Investment) Currency() money.Currency         { return inv.currency }
func (inv Investment) StartDate() valueobject.Date      { return inv.startDate }
func (inv Investment) MaturityDate() *valueobject.Date  { return inv.maturityDate }
func (inv Investment) Status() InvestmentStatus         { return inv.status }
func (inv Investment) Withdrawals() []Withdrawal        { return slices.Clone(inv.withdrawals) }
func (inv Investment) Rollovers() []Rollover            { return slices.Clone(inv.rollovers) }
