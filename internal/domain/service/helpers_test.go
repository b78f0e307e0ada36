package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

var target = valueobject.MustParseDate("2025-06-30")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func daysBefore(n int) valueobject.Date {
	return target.AddDays(-n)
}

func newInvestment(t *testing.T, principal, rate string, cur money.Currency, start valueobject.Date) model.Investment {
	t.Helper()
	inv, err := model.NewInvestment(model.InvestmentParams{
		Principal: dec(principal),
		DailyRate: dec(rate),
		Currency:  cur,
		StartDate: start,
	})
	require.NoError(t, err)
	return inv
}

func withdrawal(t *testing.T, amount, fee string, date valueobject.Date) model.Withdrawal {
	t.Helper()
	w, err := model.NewWithdrawal(uuid.Nil, dec(amount), dec(fee), date)
	require.NoError(t, err)
	return w
}

func rollover(t *testing.T, amount string, date valueobject.Date) model.Rollover {
	t.Helper()
	r, err := model.NewRollover(uuid.Nil, dec(amount), date)
	require.NoError(t, err)
	return r
}

func fxRate(t *testing.T, from, to money.Currency, rate string, effective valueobject.Date, createdAt time.Time) model.FXRate {
	t.Helper()
	r, err := model.NewFXRate(uuid.Nil, from, to, dec(rate), effective, model.RateStatusActive, createdAt)
	require.NoError(t, err)
	return r
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}
