package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
)

const (
	defaultTopic        = "sauki.transactions"
	defaultWriteTimeout = 5 * time.Second
)

// MessageWriter is the part of kafka.Writer the publisher uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes lifecycle events to a single topic, keyed by reference
type KafkaPublisher struct {
	writer  MessageWriter
	topic   string
	timeout time.Duration
	logger  core.Logger
}

var _ core.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a synchronous kafka writer for the configured brokers
func NewKafkaPublisher(cfg config.KafkaConfig, logger core.Logger) *KafkaPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: timeout,
	}
	return NewKafkaPublisherWithWriter(writer, cfg.Topic, timeout, logger)
}

// NewKafkaPublisherWithWriter wires an existing writer, mainly for tests
func NewKafkaPublisherWithWriter(writer MessageWriter, topic string, timeout time.Duration, logger core.Logger) *KafkaPublisher {
	if topic == "" {
		topic = defaultTopic
	}
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &KafkaPublisher{
		writer:  writer,
		topic:   topic,
		timeout: timeout,
		logger:  logger.With(map[string]any{"component": "kafka", "topic": topic}),
	}
}

// Publish writes one event and waits for the broker ack
func (p *KafkaPublisher) Publish(ctx context.Context, event core.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event %s for %s: %w", event.Type, event.Key, err)
	}

	p.logger.Debug("Event published", map[string]any{"type": event.Type, "key": event.Key})
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close kafka writer", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}
