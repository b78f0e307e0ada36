package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/events"
)

// InvestmentRepository loads investment snapshots with their withdrawals and rollovers.
type InvestmentRepository interface {
	// FindByID returns the investment or an error wrapping model.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (model.Investment, error)
	// List returns the investments with the given IDs, or all of them when ids is empty.
	List(ctx context.Context, ids ...uuid.UUID) ([]model.Investment, error)
}

// FXRateRepository loads the historical rate table.
type FXRateRepository interface {
	// ListEffectiveOnOrBefore returns every rate record effective on or before asOf,
	// in no particular order.
	ListEffectiveOnOrBefore(ctx context.Context, asOf valueobject.Date) ([]model.FXRate, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
