package model_test

import (
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

func validParams() model.InvestmentParams {
	return model.InvestmentParams{
		BankID:    uuid.New(),
		Principal: decimal.NewFromInt(50_000_000),
		DailyRate: decimal.RequireFromString("0.00045"),
		Currency:  money.NGN,
		StartDate: valueobject.MustParseDate("2025-01-01"),
	}
}

func TestNewInvestment_Defaults(t *testing.T) {
	inv, err := model.NewInvestment(validParams())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, inv.ID())
	assert.Equal(t, model.InvestmentStatusActive, inv.Status())
	assert.Equal(t, money.NGN, inv.Currency())
	assert.Nil(t, inv.MaturityDate())
}

func TestNewInvestment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *model.InvestmentParams)
		wantErr error
	}{
		{
			name:    "negative principal",
			mutate:  func(p *model.InvestmentParams) { p.Principal = decimal.NewFromInt(-1) },
			wantErr: model.ErrInvalidAmount,
		},
		{
			name:    "missing currency",
			mutate:  func(p *model.InvestmentParams) { p.Currency = money.Currency{} },
			wantErr: model.ErrUnsupportedCurrency,
		},
		{
			name:    "missing start date",
			mutate:  func(p *model.InvestmentParams) { p.StartDate = valueobject.Date{} },
			wantErr: model.ErrInvalidDate,
		},
		{
			name: "maturity before start",
			mutate: func(p *model.InvestmentParams) {
				m := valueobject.MustParseDate("2024-12-31")
				p.MaturityDate = &m
			},
			wantErr: model.ErrInvalidDate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			_, err := model.NewInvestment(p)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewInvestment_ZeroPrincipalAllowed(t *testing.T) {
	p := validParams()
	p.Principal = decimal.Zero
	_, err := model.NewInvestment(p)
	assert.NoError(t, err)
}

func TestInvestment_WithEventsIsCopy(t *testing.T) {
	inv, err := model.NewInvestment(validParams())
	require.NoError(t, err)

	w := mustWithdrawal(t, 1_000, 0, "2025-02-01")
	r := mustRollover(t, 2_000, "2025-01-15")
	updated := inv.WithWithdrawal(w).WithRollover(r)

	assert.Empty(t, inv.Withdrawals())
	assert.Empty(t, inv.Rollovers())
	assert.Len(t, updated.Withdrawals(), 1)
	assert.Len(t, updated.Rollovers(), 1)

	events := slices.Collect(updated.Events())
	require.Len(t, events, 2)
	assert.Equal(t, model.EventKindRollover, events[0].Kind())
	assert.Equal(t, model.EventKindWithdrawal, events[1].Kind())
}

func TestReconstructInvestment_ClonesSlices(t *testing.T) {
	p := validParams()
	p.Withdrawals = []model.Withdrawal{mustWithdrawal(t, 1, 0, "2025-02-01")}
	inv := model.ReconstructInvestment(p)

	p.Withdrawals[0] = mustWithdrawal(t, 999, 0, "2025-02-02")
	assert.True(t, inv.Withdrawals()[0].Amount().Equal(decimal.NewFromInt(1)))
}

func TestParseInvestmentStatus(t *testing.T) {
	st, err := model.ParseInvestmentStatus("MATURED")
	require.NoError(t, err)
	assert.Equal(t, model.InvestmentStatusMatured, st)

	_, err = model.ParseInvestmentStatus("CLOSED")
	assert.Error(t, err)
}
