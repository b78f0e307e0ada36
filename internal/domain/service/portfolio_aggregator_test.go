package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/pkg/money"
)

func newAggregator(opts ...service.AccrualOption) *service.PortfolioAggregator {
	return service.NewPortfolioAggregator(service.NewAccrualEngine(opts...), newConverter())
}

func TestPortfolioAggregator_NativeSum(t *testing.T) {
	investments := []model.Investment{
		newInvestment(t, "50000000", "0.00045", money.NGN, daysBefore(45)),
		newInvestment(t, "100000000", "0.0005", money.NGN, daysBefore(20)).
			WithWithdrawal(withdrawal(t, "10000000", "10000", daysBefore(10))),
	}

	v, err := newAggregator().Aggregate(investments, target, service.ConversionOptions{})
	require.NoError(t, err)

	assertDecimal(t, "1962450", v.TotalInterest)
	assert.Equal(t, money.NGN, v.Currency)
	assert.False(t, v.Partial())
	require.Len(t, v.Contributions, 2)
	assert.Equal(t, model.ConversionNative, v.Contributions[0].Conversion.Method)
	assertDecimal(t, "89990000", v.Contributions[1].Principal.Amount())
}

func TestPortfolioAggregator_MixedCurrenciesWithoutTarget(t *testing.T) {
	investments := []model.Investment{
		newInvestment(t, "1000", "0.01", money.NGN, daysBefore(1)),
		newInvestment(t, "1000", "0.01", money.USD, daysBefore(1)),
	}

	v, err := newAggregator().Aggregate(investments, target, service.ConversionOptions{})
	require.NoError(t, err)
	assert.True(t, v.Currency.IsZero())
	assertDecimal(t, "20", v.TotalInterest)
}

func TestPortfolioAggregator_ConvertsToReportingCurrency(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rates := []model.FXRate{
		fxRate(t, money.USD, money.NGN, "1500", daysBefore(30), created),
		fxRate(t, money.EUR, money.USD, "1.1", daysBefore(30), created),
	}
	investments := []model.Investment{
		// 3,000,000 NGN interest, reverse USD/NGN: 2,000 USD
		newInvestment(t, "10000000", "0.01", money.NGN, daysBefore(30)),
		// 100 EUR interest, forward EUR/USD: 110 USD
		newInvestment(t, "1000", "0.01", money.EUR, daysBefore(10)),
		// 50 USD native
		newInvestment(t, "500", "0.01", money.USD, daysBefore(10)),
	}

	v, err := newAggregator().Aggregate(investments, target, service.ConversionOptions{
		TargetCurrency: money.USD,
		Rates:          rates,
	})
	require.NoError(t, err)

	assertDecimal(t, "2160", v.TotalInterest)
	assert.Equal(t, money.USD, v.Currency)
	assert.False(t, v.Partial())

	methods := []model.ConversionMethod{
		v.Contributions[0].Conversion.Method,
		v.Contributions[1].Conversion.Method,
		v.Contributions[2].Conversion.Method,
	}
	assert.Equal(t, []model.ConversionMethod{model.ConversionReverse, model.ConversionForward, model.ConversionNative}, methods)
	assertDecimal(t, "3000000", v.Contributions[0].Native.Amount())
	assertDecimal(t, "2000", v.Contributions[0].Reported)
}

func TestPortfolioAggregator_UnconvertibleIsFlagged(t *testing.T) {
	convertible := newInvestment(t, "1000", "0.01", money.USD, daysBefore(10))
	orphan := newInvestment(t, "1000", "0.01", money.GBP, daysBefore(10))
	rates := []model.FXRate{
		// Takes effect after the query date, so it must not be used.
		fxRate(t, money.GBP, money.NGN, "2000", target.AddDays(1), time.Now()),
		fxRate(t, money.USD, money.NGN, "1500", target, time.Now()),
	}

	v, err := newAggregator().Aggregate([]model.Investment{convertible, orphan}, target, service.ConversionOptions{
		TargetCurrency: money.NGN,
		Rates:          rates,
	})
	require.NoError(t, err)

	assert.True(t, v.Partial())
	assert.Equal(t, []uuid.UUID{orphan.ID()}, v.Unconvertible())
	assertDecimal(t, "150000", v.TotalInterest)

	missing := v.Contributions[1]
	assert.True(t, missing.Unconvertible())
	assert.True(t, missing.Reported.IsZero())
	assertDecimal(t, "100", missing.Native.Amount())
	assert.Equal(t, money.GBP, missing.Native.Currency())
}

func TestPortfolioAggregator_TotalStaysInReportingCurrency(t *testing.T) {
	investments := []model.Investment{
		newInvestment(t, "1000", "0.01", money.USD, daysBefore(10)),
		newInvestment(t, "300000", "0.001", money.NGN, daysBefore(5)),
	}
	rates := []model.FXRate{fxRate(t, money.USD, money.NGN, "1500", target, time.Now())}

	v, err := newAggregator().Aggregate(investments, target, service.ConversionOptions{
		TargetCurrency: money.NGN,
		Rates:          rates,
	})
	require.NoError(t, err)

	// 100 USD × 1500 + 1500 NGN native
	assertDecimal(t, "151500", v.TotalInterest)
	assert.Equal(t, money.NGN, v.Currency)
	for _, c := range v.Contributions {
		assert.Equal(t, money.NGN, c.Conversion.Currency)
	}
}

func TestPortfolioAggregator_Empty(t *testing.T) {
	v, err := newAggregator().Aggregate(nil, target, service.ConversionOptions{TargetCurrency: money.USD})
	require.NoError(t, err)
	assert.True(t, v.TotalInterest.IsZero())
	assert.Empty(t, v.Contributions)
	assert.False(t, v.Partial())
}

func TestPortfolioAggregator_FailsFastOnMalformedInvestment(t *testing.T) {
	investments := []model.Investment{
		newInvestment(t, "1000", "0.01", money.USD, daysBefore(10)),
		newInvestment(t, "1000", "-0.01", money.USD, daysBefore(10)),
	}

	_, err := newAggregator().Aggregate(investments, target, service.ConversionOptions{})
	assert.ErrorIs(t, err, model.ErrNegativeRate)

	v, err := newAggregator(service.WithNegativeRates()).Aggregate(investments, target, service.ConversionOptions{})
	require.NoError(t, err)
	assert.True(t, v.TotalInterest.IsZero())
}

func TestPortfolioAggregator_ConcurrentUse(t *testing.T) {
	agg := newAggregator()
	rates := []model.FXRate{fxRate(t, money.USD, money.NGN, "1500", daysBefore(60), time.Now())}
	investments := []model.Investment{
		newInvestment(t, "50000000", "0.00045", money.NGN, daysBefore(45)),
		newInvestment(t, "25000", "0.0003", money.USD, daysBefore(40)).
			WithWithdrawal(withdrawal(t, "1000", "10", daysBefore(20))),
	}
	opts := service.ConversionOptions{TargetCurrency: money.USD, Rates: rates}

	want, err := agg.Aggregate(investments, target, opts)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]model.PortfolioValuation, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := agg.Aggregate(investments, target, opts)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.True(t, want.TotalInterest.Equal(got.TotalInterest))
	}
}
