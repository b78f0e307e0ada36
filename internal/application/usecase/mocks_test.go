package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bibbank/treasury/internal/domain/model"
	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/internal/domain/valueobject"
	"github.com/bibbank/treasury/pkg/events"
)

// --- Mock implementations ---

type mockInvestmentRepo struct {
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.Investment, error)
	listFunc     func(ctx context.Context, ids ...uuid.UUID) ([]model.Investment, error)
}

func (m *mockInvestmentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Investment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Investment{}, fmt.Errorf("investment %s: %w", id, model.ErrNotFound)
}

func (m *mockInvestmentRepo) List(ctx context.Context, ids ...uuid.UUID) ([]model.Investment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ids...)
	}
	return nil, nil
}

type mockFXRateRepo struct {
	listFunc func(ctx context.Context, asOf valueobject.Date) ([]model.FXRate, error)
	calls    int
	mu       sync.Mutex
}

func (m *mockFXRateRepo) ListEffectiveOnOrBefore(ctx context.Context, asOf valueobject.Date) ([]model.FXRate, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.listFunc != nil {
		return m.listFunc(ctx, asOf)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, topic string, events ...events.DomainEvent) error
	publishedEvents []events.DomainEvent
	topics          []string
}

func (m *mockEventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, evts...)
	}
	m.topics = append(m.topics, topic)
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newConverter() *service.CurrencyConverter {
	return service.NewCurrencyConverter(service.NewRateResolver())
}
