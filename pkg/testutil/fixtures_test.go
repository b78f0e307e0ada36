package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
	"github.com/bibbank/treasury/pkg/testutil"
)

func TestReferenceInvestments_Accrue(t *testing.T) {
	asOf := valueobject.MustParseDate("2025-06-30")
	engine := service.NewAccrualEngine()

	want := []struct {
		interest  string
		principal string
	}{
		// 50,000,000 × 0.00045 × 45
		{interest: "1012500", principal: "50000000"},
		// 25,000,000 × 0.00035 × 400; maturity is informational
		{interest: "3500000", principal: "25000000"},
		// 100,000,000 × 0.0005 × 60 + 89,990,000 × 0.0005 × 30
		{interest: "4349850", principal: "89990000"},
	}

	investments := testutil.ReferenceInvestments(asOf)
	require.Len(t, investments, len(want))
	for i, inv := range investments {
		res, err := engine.AccrueInvestment(inv, asOf)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, want[i].interest, res.Interest, "investment %d", i)
		testutil.AssertDecimalEqual(t, want[i].principal, res.Principal, "investment %d", i)
	}
}

func TestReferenceRates_Resolve(t *testing.T) {
	asOf := valueobject.MustParseDate("2025-06-30")
	resolver := service.NewRateResolver()
	rates := testutil.ReferenceRates(asOf)

	today, ok := resolver.Resolve(money.USD, money.NGN, asOf, rates)
	require.True(t, ok)
	testutil.AssertDecimalEqual(t, "1550.25", today.Rate().Rate())

	yesterday, ok := resolver.Resolve(money.USD, money.NGN, asOf.AddDays(-1), rates)
	require.True(t, ok)
	testutil.AssertDecimalEqual(t, "1540.00", yesterday.Rate().Rate())

	_, ok = resolver.Resolve(money.NGN, money.USD, asOf, rates)
	assert.False(t, ok)
}
