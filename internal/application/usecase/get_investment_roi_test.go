package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/treasury/internal/application/dto"
	"github.com/bibbank/treasury/internal/application/usecase"
	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/events"
	"github.com/bibbank/treasury/pkg/money"
)

var asOf = valueobject.MustParseDate("2025-06-30")

func ngnInvestment(t *testing.T) model.Investment {
	t.Helper()
	inv, err := model.NewInvestment(model.InvestmentParams{
		Principal: decimal.NewFromInt(50_000_000),
		DailyRate: decimal.RequireFromString("0.00045"),
		Currency:  money.NGN,
		StartDate: asOf.AddDays(-45),
	})
	require.NoError(t, err)
	return inv
}

func usdNGNRate(t *testing.T, rate string, effective valueobject.Date) model.FXRate {
	t.Helper()
	r, err := model.NewFXRate(uuid.Nil, money.USD, money.NGN, decimal.RequireFromString(rate), effective, "", time.Now())
	require.NoError(t, err)
	return r
}

func newGetInvestmentROI(repo *mockInvestmentRepo, rates *mockFXRateRepo, pub *mockEventPublisher) *usecase.GetInvestmentROI {
	return usecase.NewGetInvestmentROI(repo, rates, pub, service.NewAccrualEngine(), newConverter(), discardLogger())
}

func TestGetInvestmentROI_Native(t *testing.T) {
	inv := ngnInvestment(t)
	repo := &mockInvestmentRepo{
		findByIDFunc: func(_ context.Context, id uuid.UUID) (model.Investment, error) {
			assert.Equal(t, inv.ID(), id)
			return inv, nil
		},
	}
	rates := &mockFXRateRepo{}
	pub := &mockEventPublisher{}

	resp, err := newGetInvestmentROI(repo, rates, pub).Execute(context.Background(), dto.GetInvestmentROIRequest{
		InvestmentID: inv.ID(),
		AsOf:         asOf,
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1_012_500).Equal(resp.Interest))
	assert.True(t, resp.Interest.Equal(resp.ReportedInterest))
	assert.Equal(t, "NGN", resp.ReportedCurrency)
	assert.Equal(t, string(model.ConversionNative), resp.Conversion)
	assert.Nil(t, resp.FXImpact)

	// The rate table is not needed for native reporting.
	assert.Zero(t, rates.calls)

	require.Len(t, pub.publishedEvents, 1)
	assert.Equal(t, usecase.TopicInvestmentAccrued, pub.topics[0])
	assert.Equal(t, inv.ID(), pub.publishedEvents[0].AggregateID())
}

func TestGetInvestmentROI_ConvertedWithFXImpact(t *testing.T) {
	inv := ngnInvestment(t)
	repo := &mockInvestmentRepo{
		findByIDFunc: func(context.Context, uuid.UUID) (model.Investment, error) { return inv, nil },
	}
	table := []model.FXRate{
		usdNGNRate(t, "1000", asOf.AddDays(-60)),
		usdNGNRate(t, "1500", asOf.AddDays(-1)),
	}
	rates := &mockFXRateRepo{
		listFunc: func(_ context.Context, d valueobject.Date) ([]model.FXRate, error) {
			assert.Equal(t, asOf, d)
			return table, nil
		},
	}

	resp, err := newGetInvestmentROI(repo, rates, &mockEventPublisher{}).Execute(context.Background(), dto.GetInvestmentROIRequest{
		InvestmentID:   inv.ID(),
		AsOf:           asOf,
		TargetCurrency: "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", resp.ReportedCurrency)
	assert.Equal(t, string(model.ConversionReverse), resp.Conversion)
	assert.True(t, decimal.NewFromInt(675).Equal(resp.ReportedInterest), "got %s", resp.ReportedInterest)

	// 1,012,500 × (1/1500 − 1/1000)
	require.NotNil(t, resp.FXImpact)
	want := decimal.NewFromInt(1_012_500).Mul(
		decimal.NewFromInt(1).Div(decimal.NewFromInt(1500)).Sub(decimal.NewFromInt(1).Div(decimal.NewFromInt(1000))))
	assert.True(t, want.Equal(*resp.FXImpact), "want %s, got %s", want, resp.FXImpact)
	assert.True(t, resp.FXImpact.IsNegative())
}

func TestGetInvestmentROI_Unconvertible(t *testing.T) {
	inv := ngnInvestment(t)
	repo := &mockInvestmentRepo{
		findByIDFunc: func(context.Context, uuid.UUID) (model.Investment, error) { return inv, nil },
	}
	pub := &mockEventPublisher{}

	resp, err := newGetInvestmentROI(repo, &mockFXRateRepo{}, pub).Execute(context.Background(), dto.GetInvestmentROIRequest{
		InvestmentID:   inv.ID(),
		AsOf:           asOf,
		TargetCurrency: "EUR",
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.ConversionUnavailable), resp.Conversion)
	assert.True(t, resp.ReportedInterest.IsZero())
	assert.True(t, decimal.NewFromInt(1_012_500).Equal(resp.Interest))
	assert.Nil(t, resp.FXImpact)
	assert.Len(t, pub.publishedEvents, 1)
}

func TestGetInvestmentROI_NotFound(t *testing.T) {
	_, err := newGetInvestmentROI(&mockInvestmentRepo{}, &mockFXRateRepo{}, &mockEventPublisher{}).
		Execute(context.Background(), dto.GetInvestmentROIRequest{InvestmentID: uuid.New(), AsOf: asOf})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGetInvestmentROI_UnsupportedCurrency(t *testing.T) {
	_, err := newGetInvestmentROI(&mockInvestmentRepo{}, &mockFXRateRepo{}, &mockEventPublisher{}).
		Execute(context.Background(), dto.GetInvestmentROIRequest{InvestmentID: uuid.New(), TargetCurrency: "JPY"})
	assert.ErrorIs(t, err, model.ErrUnsupportedCurrency)
}

func TestGetInvestmentROI_RateLoadFailure(t *testing.T) {
	inv := ngnInvestment(t)
	repo := &mockInvestmentRepo{
		findByIDFunc: func(context.Context, uuid.UUID) (model.Investment, error) { return inv, nil },
	}
	rates := &mockFXRateRepo{
		listFunc: func(context.Context, valueobject.Date) ([]model.FXRate, error) {
			return nil, errors.New("connection reset")
		},
	}

	_, err := newGetInvestmentROI(repo, rates, &mockEventPublisher{}).Execute(context.Background(), dto.GetInvestmentROIRequest{
		InvestmentID:   inv.ID(),
		AsOf:           asOf,
		TargetCurrency: "USD",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list fx rates")
}

func TestGetInvestmentROI_PublishFailureIsNotFatal(t *testing.T) {
	inv := ngnInvestment(t)
	repo := &mockInvestmentRepo{
		findByIDFunc: func(context.Context, uuid.UUID) (model.Investment, error) { return inv, nil },
	}
	pub := &mockEventPublisher{
		publishFunc: func(context.Context, string, ...events.DomainEvent) error {
			return errors.New("broker unavailable")
		},
	}

	resp, err := newGetInvestmentROI(repo, &mockFXRateRepo{}, pub).Execute(context.Background(), dto.GetInvestmentROIRequest{
		InvestmentID: inv.ID(),
		AsOf:         asOf,
	})
	require.NoError(t, err)
	assert.False(t, resp.Interest.IsZero())
}
