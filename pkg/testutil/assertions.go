package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimalEqual checks that got equals the decimal literal want,
// ignoring trailing zeros.
func AssertDecimalEqual(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) bool {
	t.Helper()
	w, err := decimal.NewFromString(want)
	if !assert.NoError(t, err, "bad decimal literal %q", want) {
		return false
	}
	if w.Equal(got) {
		return true
	}
	return assert.Fail(t, "decimals differ: want "+w.String()+", got "+got.String(), msgAndArgs...)
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}
