package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned by NewProducer when the config lists no brokers.
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// Message represents a Kafka message.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer publishes to any number of topics, holding one writer per topic.
// It is safe for concurrent use.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]writer
	newWriter func(topic string) writer
}

// NewProducer creates a new Producer with the given configuration.
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	transport, err := cfg.transport()
	if err != nil {
		return nil, err
	}

	brokers := cfg.Brokers
	return &Producer{
		writers: make(map[string]writer),
		newWriter: func(topic string) writer {
			return &kafkago.Writer{
				Addr:                   kafkago.TCP(brokers...),
				Topic:                  topic,
				Balancer:               &kafkago.Hash{},
				BatchTimeout:           10 * time.Millisecond,
				RequiredAcks:           kafkago.RequireAll,
				Transport:              transport,
				AllowAutoTopicCreation: false,
			}
		},
	}, nil
}

// Publish sends messages to the specified topic. Messages with the same key
// land on the same partition.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.getOrCreateWriter(topic)

	kafkaMessages := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		km := kafkago.Message{
			Key:   msg.Key,
			Value: msg.Value,
		}
		for k, v := range msg.Headers {
			km.Headers = append(km.Headers, kafkago.Header{
				Key:   k,
				Value: []byte(v),
			})
		}
		kafkaMessages = append(kafkaMessages, km)
	}

	if err := w.WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing writer for topic %s: %w", topic, err))
		}
	}
	p.writers = make(map[string]writer)
	return errors.Join(errs...)
}

func (p *Producer) getOrCreateWriter(topic string) writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}
