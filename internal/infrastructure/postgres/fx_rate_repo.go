package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/port"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/money"
)

// Compile-time interface check.
var _ port.FXRateRepository = (*FXRateRepo)(nil)

// FXRateRepo implements FXRateRepository using PostgreSQL.
type FXRateRepo struct {
	pool *pgxpool.Pool
}

// NewFXRateRepo creates a new FXRateRepo.
func NewFXRateRepo(pool *pgxpool.Pool) *FXRateRepo {
	return &FXRateRepo{pool: pool}
}

// Save inserts a rate record. Records are append-only; an existing ID is left untouched.
func (r *FXRateRepo) Save(ctx context.Context, rate model.FXRate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO fx_rates (id, from_currency, to_currency, rate, effective_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, rate.ID(), rate.From().Code(), rate.To().Code(), rate.Rate().Rate(),
		rate.EffectiveDate().Time(), string(rate.Status()), rate.CreatedAt())
	if err != nil {
		return fmt.Errorf("insert fx rate: %w", err)
	}
	return nil
}

// ListEffectiveOnOrBefore returns every rate record effective on or before asOf.
// The resolver picks the winner per pair, so superseded records are included.
func (r *FXRateRepo) ListEffectiveOnOrBefore(ctx context.Context, asOf valueobject.Date) ([]model.FXRate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, from_currency, to_currency, rate, effective_date, status, created_at
		FROM fx_rates
		WHERE effective_date <= $1
		ORDER BY from_currency, to_currency, effective_date, created_at, id
	`, asOf.Time())
	if err != nil {
		return nil, fmt.Errorf("query fx rates: %w", err)
	}
	return pgx.CollectRows(rows, scanFXRate)
}

func scanFXRate(row pgx.CollectableRow) (model.FXRate, error) {
	var (
		id        uuid.UUID
		from, to  string
		rate      decimal.Decimal
		effective time.Time
		status    string
		createdAt time.Time
	)
	if err := row.Scan(&id, &from, &to, &rate, &effective, &status, &createdAt); err != nil {
		return model.FXRate{}, fmt.Errorf("scan fx rate: %w", err)
	}

	fromCur, err := money.NewCurrency(from)
	if err != nil {
		return model.FXRate{}, fmt.Errorf("fx rate %s: %w", id, err)
	}
	toCur, err := money.NewCurrency(to)
	if err != nil {
		return model.FXRate{}, fmt.Errorf("fx rate %s: %w", id, err)
	}
	return model.NewFXRate(id, fromCur, toCur, rate, valueobject.DateOf(effective), model.RateStatus(status), createdAt)
}
