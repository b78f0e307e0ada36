package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/treasury/internal/application/dto"
	"github.com/bibbank/treasury/internal/application/usecase"
	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/internal/domain/valueobject"
)

func newGetDailySeries(repo *mockInvestmentRepo, rates *mockFXRateRepo) *usecase.GetDailySeries {
	gen := service.NewSeriesGenerator(service.NewAccrualEngine(), newConverter())
	return usecase.NewGetDailySeries(repo, rates, gen, discardLogger())
}

func TestGetDailySeries_DefaultsToInvestmentStart(t *testing.T) {
	inv := ngnInvestment(t)
	repo := &mockInvestmentRepo{
		findByIDFunc: func(context.Context, uuid.UUID) (model.Investment, error) { return inv, nil },
	}

	resp, err := newGetDailySeries(repo, &mockFXRateRepo{}).Execute(context.Background(), dto.GetDailySeriesRequest{
		InvestmentID: inv.ID(),
		EndDate:      asOf,
	})
	require.NoError(t, err)

	require.Len(t, resp.Points, 46)
	assert.Equal(t, inv.StartDate().String(), resp.Points[0].Date)
	assert.Equal(t, "2025-06-30", resp.Points[45].Date)
	assert.True(t, resp.Points[0].ROI.IsZero())
	assert.True(t, decimal.NewFromInt(1_012_500).Equal(resp.Points[45].ROI))
	assert.Equal(t, "NGN", resp.ReportedCurrency)
}

func TestGetDailySeries_ConvertedWithGaps(t *testing.T) {
	inv := ngnInvestment(t)
	repo := &mockInvestmentRepo{
		findByIDFunc: func(context.Context, uuid.UUID) (model.Investment, error) { return inv, nil },
	}
	table := []model.FXRate{usdNGNRate(t, "1500", asOf.AddDays(-1))}
	rates := &mockFXRateRepo{
		listFunc: func(_ context.Context, d valueobject.Date) ([]model.FXRate, error) {
			assert.Equal(t, asOf, d)
			return table, nil
		},
	}

	resp, err := newGetDailySeries(repo, rates).Execute(context.Background(), dto.GetDailySeriesRequest{
		InvestmentID:   inv.ID(),
		StartDate:      asOf.AddDays(-2),
		EndDate:        asOf,
		TargetCurrency: "USD",
	})
	require.NoError(t, err)

	require.Len(t, resp.Points, 3)
	assert.Equal(t, "USD", resp.ReportedCurrency)
	assert.True(t, resp.Points[0].Unconvertible)
	assert.True(t, resp.Points[0].ROI.IsZero())
	assert.False(t, resp.Points[2].Unconvertible)
	assert.True(t, decimal.NewFromInt(675).Equal(resp.Points[2].ROI))
	// Principal stays in the investment currency.
	assert.True(t, decimal.NewFromInt(50_000_000).Equal(resp.Points[2].Principal))
}

func TestGetDailySeries_NotFound(t *testing.T) {
	_, err := newGetDailySeries(&mockInvestmentRepo{}, &mockFXRateRepo{}).Execute(context.Background(), dto.GetDailySeriesRequest{
		InvestmentID: uuid.New(),
		EndDate:      asOf,
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
