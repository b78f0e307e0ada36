package snapshot

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/port"
	"github.com/bibbank/treasury/internal/domain/valueobject"
)

var (
	_ port.InvestmentRepository = (*Store)(nil)
	_ port.FXRateRepository     = (*Store)(nil)
)

// Store is a read-only, in-memory InvestmentRepository and FXRateRepository.
// It is safe for concurrent use.
type Store struct {
	investments []model.Investment
	byID        map[uuid.UUID]int
	rates       []model.FXRate
}

// NewStore builds a Store. Investment IDs must be unique.
func NewStore(investments []model.Investment, rates []model.FXRate) (*Store, error) {
	byID := make(map[uuid.UUID]int, len(investments))
	for i, inv := range investments {
		if _, dup := byID[inv.ID()]; dup {
			return nil, fmt.Errorf("duplicate investment id %s", inv.ID())
		}
		byID[inv.ID()] = i
	}
	return &Store{
		investments: slices.Clone(investments),
		byID:        byID,
		rates:       slices.Clone(rates),
	}, nil
}

// FindByID returns the investment with id.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (model.Investment, error) {
	if err := ctx.Err(); err != nil {
		return model.Investment{}, err
	}
	i, ok := s.byID[id]
	if !ok {
		return model.Investment{}, fmt.Errorf("investment %s: %w", id, model.ErrNotFound)
	}
	return s.investments[i], nil
}

// List returns the investments with the given IDs in request order, or all of
// them in file order when ids is empty.
func (s *Store) List(ctx context.Context, ids ...uuid.UUID) ([]model.Investment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return slices.Clone(s.investments), nil
	}
	out := make([]model.Investment, 0, len(ids))
	for _, id := range ids {
		inv, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

// ListEffectiveOnOrBefore returns the rates effective on or before asOf.
func (s *Store) ListEffectiveOnOrBefore(ctx context.Context, asOf valueobject.Date) ([]model.FXRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.FXRate, 0, len(s.rates))
	for _, r := range s.rates {
		if !r.EffectiveDate().After(asOf) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Investments returns every investment in file order.
func (s *Store) Investments() []model.Investment {
	return slices.Clone(s.investments)
}

// Rates returns every rate record in file order.
func (s *Store) Rates() []model.FXRate {
	return slices.Clone(s.rates)
}
