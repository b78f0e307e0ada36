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
)

func mustWithdrawal(t *testing.T, amount, fee int64, date string) model.Withdrawal {
	t.Helper()
	w, err := model.NewWithdrawal(uuid.Nil, decimal.NewFromInt(amount), decimal.NewFromInt(fee), valueobject.MustParseDate(date))
	require.NoError(t, err)
	return w
}

func mustRollover(t *testing.T, amount int64, date string) model.Rollover {
	t.Helper()
	r, err := model.NewRollover(uuid.Nil, decimal.NewFromInt(amount), valueobject.MustParseDate(date))
	require.NoError(t, err)
	return r
}

func TestNewWithdrawal_Validation(t *testing.T) {
	date := valueobject.MustParseDate("2025-03-01")

	_, err := model.NewWithdrawal(uuid.Nil, decimal.NewFromInt(-1), decimal.Zero, date)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = model.NewWithdrawal(uuid.Nil, decimal.NewFromInt(1), decimal.NewFromInt(-1), date)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = model.NewWithdrawal(uuid.Nil, decimal.NewFromInt(1), decimal.Zero, valueobject.Date{})
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	w, err := model.NewWithdrawal(uuid.Nil, decimal.NewFromInt(10), decimal.Zero, date)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, w.ID())
	assert.Equal(t, model.EventKindWithdrawal, w.Kind())
	assert.True(t, w.Fee().IsZero())
}

func TestNewRollover_Validation(t *testing.T) {
	_, err := model.NewRollover(uuid.Nil, decimal.NewFromInt(-5), valueobject.MustParseDate("2025-03-01"))
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = model.NewRollover(uuid.Nil, decimal.NewFromInt(5), valueobject.Date{})
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestPrincipalEvent_Apply(t *testing.T) {
	principal := decimal.NewFromInt(100_000_000)

	w := mustWithdrawal(t, 10_000_000, 10_000, "2025-03-01")
	assert.True(t, w.Apply(principal).Equal(decimal.NewFromInt(89_990_000)))

	r := mustRollover(t, 5_000_000, "2025-03-01")
	assert.True(t, r.Fee().IsZero())
	assert.True(t, r.Apply(principal).Equal(decimal.NewFromInt(105_000_000)))

	// Overdrawing is allowed and leaves a negative principal.
	big := mustWithdrawal(t, 150_000_000, 0, "2025-03-01")
	assert.True(t, big.Apply(principal).Equal(decimal.NewFromInt(-50_000_000)))
}

func TestEventStream_OrdersByDate(t *testing.T) {
	withdrawals := []model.Withdrawal{
		mustWithdrawal(t, 3, 0, "2025-03-10"),
		mustWithdrawal(t, 1, 0, "2025-03-01"),
	}
	rollovers := []model.Rollover{
		mustRollover(t, 2, "2025-03-05"),
	}

	var dates []string
	for ev := range model.EventStream(withdrawals, rollovers) {
		dates = append(dates, ev.Date().String())
	}
	assert.Equal(t, []string{"2025-03-01", "2025-03-05", "2025-03-10"}, dates)
}

func TestEventStream_SameDateTieBreak(t *testing.T) {
	r1 := mustRollover(t, 1, "2025-03-05")
	w1 := mustWithdrawal(t, 2, 0, "2025-03-05")
	w2 := mustWithdrawal(t, 3, 0, "2025-03-05")
	r2 := mustRollover(t, 4, "2025-03-05")

	events := slices.Collect(model.EventStream([]model.Withdrawal{w1, w2}, []model.Rollover{r1, r2}))
	require.Len(t, events, 4)

	ids := []uuid.UUID{events[0].ID(), events[1].ID(), events[2].ID(), events[3].ID()}
	assert.Equal(t, []uuid.UUID{w1.ID(), w2.ID(), r1.ID(), r2.ID()}, ids)
}

func TestEventStream_Restartable(t *testing.T) {
	seq := model.EventStream(
		[]model.Withdrawal{mustWithdrawal(t, 1, 0, "2025-03-02")},
		[]model.Rollover{mustRollover(t, 1, "2025-03-01")},
	)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	// Stopping early must not disturb later iterations.
	for range seq {
		break
	}
	assert.Equal(t, first, slices.Collect(seq))
}

func TestEventStream_Empty(t *testing.T) {
	assert.Empty(t, slices.Collect(model.EventStream(nil, nil)))
}
