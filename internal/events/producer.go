package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes event envelopes. Implementations must be safe for
// concurrent use.
type Producer interface {
	Publish(ctx context.Context, topic, key string, envelope Envelope) error
	Close() error
}

// KafkaProducer publishes envelopes to Kafka using kafka-go.
type KafkaProducer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewKafkaProducer creates a producer for the given brokers.
func NewKafkaProducer(brokers []string, logger *zap.Logger) *KafkaProducer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaProducer{writer: writer, logger: logger}
}

// Publish writes one envelope to the topic, keyed so events of one booking
// stay ordered within a partition.
func (p *KafkaProducer) Publish(ctx context.Context, topic, key string, envelope Envelope) error {
	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("type", envelope.Type),
		zap.String("key", key),
	)
	return nil
}

// Close closes the underlying writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopProducer discards events. Used when no brokers are configured, so the
// service runs standalone in development.
type NoopProducer struct{}

// Publish does nothing.
func (NoopProducer) Publish(context.Context, string, string, Envelope) error { return nil }

// Close does nothing.
func (NoopProducer) Close() error { return nil }
