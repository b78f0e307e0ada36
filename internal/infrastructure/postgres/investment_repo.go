package postgres

import (
	"context"
	"errors"
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
	pgpkg "github.com/bibbank/treasury/pkg/postgres"
)

// Compile-time interface check.
var _ port.InvestmentRepository = (*InvestmentRepo)(nil)

// InvestmentRepo implements InvestmentRepository using PostgreSQL.
type InvestmentRepo struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepo creates a new InvestmentRepo.
func NewInvestmentRepo(pool *pgxpool.Pool) *InvestmentRepo {
	return &InvestmentRepo{pool: pool}
}

const selectInvestments = `
	SELECT id, bank_id, principal, daily_rate, currency, start_date, maturity_date, status
	FROM investments`

const selectEvents = `
	SELECT id, investment_id, kind, amount, fee, event_date
	FROM investment_events
	WHERE investment_id = ANY($1)
	ORDER BY investment_id, kind, seq`

// Save replaces an investment and its events in one transaction.
func (r *InvestmentRepo) Save(ctx context.Context, inv model.Investment) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var maturity *time.Time
		if m := inv.MaturityDate(); m != nil {
			t := m.Time()
			maturity = &t
		}
		var bankID *uuid.UUID
		if inv.BankID() != uuid.Nil {
			id := inv.BankID()
			bankID = &id
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO investments (id, bank_id, principal, daily_rate, currency, start_date, maturity_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				bank_id = EXCLUDED.bank_id,
				principal = EXCLUDED.principal,
				daily_rate = EXCLUDED.daily_rate,
				currency = EXCLUDED.currency,
				start_date = EXCLUDED.start_date,
				maturity_date = EXCLUDED.maturity_date,
				status = EXCLUDED.status
		`, inv.ID(), bankID, inv.Principal(), inv.DailyRate(), inv.Currency().Code(),
			inv.StartDate().Time(), maturity, string(inv.Status()))
		if err != nil {
			return fmt.Errorf("upsert investment: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM investment_events WHERE investment_id = $1`, inv.ID()); err != nil {
			return fmt.Errorf("clear investment events: %w", err)
		}

		batch := &pgx.Batch{}
		const insertEvent = `
			INSERT INTO investment_events (id, investment_id, kind, seq, amount, fee, event_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for i, w := range inv.Withdrawals() {
			batch.Queue(insertEvent, w.ID(), inv.ID(), string(model.EventKindWithdrawal), i, w.Amount(), w.Fee(), w.Date().Time())
		}
		for i, ro := range inv.Rollovers() {
			batch.Queue(insertEvent, ro.ID(), inv.ID(), string(model.EventKindRollover), i, ro.Amount(), decimal.Zero, ro.Date().Time())
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert investment events: %w", err)
		}
		return nil
	})
}

// FindByID loads one investment with its events from a single snapshot.
func (r *InvestmentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Investment, error) {
	var found []model.Investment
	err := pgpkg.WithTxOptions(ctx, r.pool, pgpkg.ReadSnapshot, func(tx pgx.Tx) error {
		var err error
		found, err = loadInvestments(ctx, tx, selectInvestments+` WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return model.Investment{}, err
	}
	if len(found) == 0 {
		return model.Investment{}, fmt.Errorf("investment %s: %w", id, model.ErrNotFound)
	}
	return found[0], nil
}

// List loads the investments with the given IDs, or every investment when ids
// is empty, ordered by start date. Missing IDs are reported as ErrNotFound.
func (r *InvestmentRepo) List(ctx context.Context, ids ...uuid.UUID) ([]model.Investment, error) {
	var out []model.Investment
	err := pgpkg.WithTxOptions(ctx, r.pool, pgpkg.ReadSnapshot, func(tx pgx.Tx) error {
		var err error
		if len(ids) == 0 {
			out, err = loadInvestments(ctx, tx, selectInvestments+` ORDER BY start_date, id`)
		} else {
			out, err = loadInvestments(ctx, tx, selectInvestments+` WHERE id = ANY($1) ORDER BY start_date, id`, ids)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 && len(out) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("%d of %d investments: %w", len(uniqueIDs(ids))-len(out), len(uniqueIDs(ids)), model.ErrNotFound)
	}
	return out, nil
}

func loadInvestments(ctx context.Context, q pgpkg.Querier, query string, args ...any) ([]model.Investment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query investments: %w", err)
	}
	params, err := pgx.CollectRows(rows, scanInvestment)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(params))
	byID := make(map[uuid.UUID]*model.InvestmentParams, len(params))
	for i := range params {
		ids = append(ids, params[i].ID)
		byID[params[i].ID] = &params[i]
	}

	rows, err = q.Query(ctx, selectEvents, ids)
	if err != nil {
		return nil, fmt.Errorf("query investment events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scanEventInto(rows, byID); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate investment events: %w", err)
	}

	out := make([]model.Investment, 0, len(params))
	for _, p := range params {
		out = append(out, model.ReconstructInvestment(p))
	}
	return out, nil
}

func scanInvestment(row pgx.CollectableRow) (model.InvestmentParams, error) {
	var (
		p        model.InvestmentParams
		bankID   *uuid.UUID
		currency string
		start    time.Time
		maturity *time.Time
		status   string
	)
	if err := row.Scan(&p.ID, &bankID, &p.Principal, &p.DailyRate, &currency, &start, &maturity, &status); err != nil {
		return model.InvestmentParams{}, fmt.Errorf("scan investment: %w", err)
	}

	cur, err := money.NewCurrency(currency)
	if err != nil {
		return model.InvestmentParams{}, fmt.Errorf("investment %s: %w", p.ID, err)
	}
	p.Currency = cur
	if bankID != nil {
		p.BankID = *bankID
	}
	p.StartDate = valueobject.DateOf(start)
	if maturity != nil {
		d := valueobject.DateOf(*maturity)
		p.MaturityDate = &d
	}
	if p.Status, err = model.ParseInvestmentStatus(status); err != nil {
		return model.InvestmentParams{}, fmt.Errorf("investment %s: %w", p.ID, err)
	}
	return p, nil
}

func scanEventInto(rows pgx.Rows, byID map[uuid.UUID]*model.InvestmentParams) error {
	var (
		id, investmentID uuid.UUID
		kind             string
		amount, fee      decimal.Decimal
		date             time.Time
	)
	if err := rows.Scan(&id, &investmentID, &kind, &amount, &fee, &date); err != nil {
		return fmt.Errorf("scan investment event: %w", err)
	}
	p, ok := byID[investmentID]
	if !ok {
		return nil
	}

	switch model.EventKind(kind) {
	case model.EventKindWithdrawal:
		w, err := model.NewWithdrawal(id, amount, fee, valueobject.DateOf(date))
		if err != nil {
			return fmt.Errorf("investment %s: %w", investmentID, err)
		}
		p.Withdrawals = append(p.Withdrawals, w)
	case model.EventKindRollover:
		ro, err := model.NewRollover(id, amount, valueobject.DateOf(date))
		if err != nil {
			return fmt.Errorf("investment %s: %w", investmentID, err)
		}
		p.Rollovers = append(p.Rollovers, ro)
	default:
		return errors.New("unknown investment event kind " + kind)
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
