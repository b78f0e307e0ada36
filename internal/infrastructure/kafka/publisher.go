package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/bibbank/treasury/internal/domain/port"
	"github.com/bibbank/treasury/pkg/events"
	pkgkafka "github.com/bibbank/treasury/pkg/kafka"
)

var (
	_ port.EventPublisher = (*EventPublisher)(nil)
	_ port.EventPublisher = LogPublisher{}
)

// producer is satisfied by *pkgkafka.Producer.
type producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements the EventPublisher port using Kafka. Events are
// keyed by aggregate ID, so valuations of one investment stay in order.
type EventPublisher struct {
	producer producer
	logger   *slog.Logger
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(producer producer, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		logger:   logger,
	}
}

// Publish sends domain events to topic as JSON envelopes. The trace context of
// ctx travels in the message headers.
func (p *EventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := events.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing event to Kafka",
			slog.String("topic", topic),
			slog.String("event_type", evt.EventType()),
			slog.Int("payload_size", len(payload)),
		)

		headers := map[string]string{
			"event_type":     evt.EventType(),
			"aggregate_type": evt.AggregateType(),
		}
		otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

		messages = append(messages, pkgkafka.Message{
			Key:     []byte(evt.AggregateID().String()),
			Value:   payload,
			Headers: headers,
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", topic, err)
	}

	return nil
}

// LogPublisher writes events to the log instead of a broker. It stands in
// when no Kafka brokers are configured.
type LogPublisher struct {
	Logger *slog.Logger
}

// Publish logs each event at info level.
func (p LogPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		p.Logger.InfoContext(ctx, "domain event",
			slog.String("topic", topic),
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("payload", string(evt.Payload())),
		)
	}
	return nil
}
