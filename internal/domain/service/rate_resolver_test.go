package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/pkg/money"
)

func TestRateResolver_AsOfSelection(t *testing.T) {
	resolver := service.NewRateResolver()
	today := target
	yesterday := target.AddDays(-1)
	created := time.Date(2025, 6, 29, 8, 0, 0, 0, time.UTC)

	rates := []model.FXRate{
		fxRate(t, money.USD, money.NGN, "1550.25", today, created.Add(24*time.Hour)),
		fxRate(t, money.USD, money.NGN, "1540.00", yesterday, created),
	}

	got, ok := resolver.Resolve(money.USD, money.NGN, today, rates)
	require.True(t, ok)
	assertDecimal(t, "1550.25", got.Rate().Rate())

	got, ok = resolver.Resolve(money.USD, money.NGN, yesterday, rates)
	require.True(t, ok)
	assertDecimal(t, "1540.00", got.Rate().Rate())
}

func TestRateResolver_IgnoresStatus(t *testing.T) {
	r, err := model.NewFXRate(uuid.Nil, money.USD, money.NGN, dec("1540"), target, model.RateStatusSuperseded, time.Now())
	require.NoError(t, err)

	got, ok := service.NewRateResolver().Resolve(money.USD, money.NGN, target, []model.FXRate{r})
	require.True(t, ok)
	assert.Equal(t, model.RateStatusSuperseded, got.Status())
}

func TestRateResolver_NoneBeforeFirstEffectiveDate(t *testing.T) {
	rates := []model.FXRate{fxRate(t, money.USD, money.NGN, "1550", target, time.Now())}

	_, ok := service.NewRateResolver().Resolve(money.USD, money.NGN, target.AddDays(-1), rates)
	assert.False(t, ok)
}

func TestRateResolver_DirectionSensitive(t *testing.T) {
	rates := []model.FXRate{fxRate(t, money.USD, money.NGN, "1550", target, time.Now())}

	_, ok := service.NewRateResolver().Resolve(money.NGN, money.USD, target, rates)
	assert.False(t, ok)
}

func TestRateResolver_TieBreakOnCreatedAt(t *testing.T) {
	resolver := service.NewRateResolver()
	base := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)

	older := fxRate(t, money.EUR, money.NGN, "1700", target, base)
	newer := fxRate(t, money.EUR, money.NGN, "1710", target, base.Add(time.Minute))

	for _, rates := range [][]model.FXRate{{older, newer}, {newer, older}} {
		got, ok := resolver.Resolve(money.EUR, money.NGN, target, rates)
		require.True(t, ok)
		assert.Equal(t, newer.ID(), got.ID())
	}
}

func TestRateResolver_LaterEffectiveBeatsLaterCreated(t *testing.T) {
	base := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	effective := fxRate(t, money.GBP, money.USD, "1.27", target.AddDays(-1), base)
	// Entered later, but backdated further.
	backdated := fxRate(t, money.GBP, money.USD, "1.25", target.AddDays(-5), base.Add(time.Hour))

	got, ok := service.NewRateResolver().Resolve(money.GBP, money.USD, target, []model.FXRate{backdated, effective})
	require.True(t, ok)
	assert.Equal(t, effective.ID(), got.ID())
}

func TestRateResolver_ExactTieKeepsTableOrder(t *testing.T) {
	created := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	first := fxRate(t, money.USD, money.EUR, "0.91", target, created)
	second := fxRate(t, money.USD, money.EUR, "0.92", target, created)

	got, ok := service.NewRateResolver().Resolve(money.USD, money.EUR, target, []model.FXRate{first, second})
	require.True(t, ok)
	assert.Equal(t, first.ID(), got.ID())
}

func TestRateResolver_EmptyTable(t *testing.T) {
	_, ok := service.NewRateResolver().Resolve(money.USD, money.NGN, target, nil)
	assert.False(t, ok)
}
