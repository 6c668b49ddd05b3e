package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaEventPublisher writes every envelope to a single topic, keyed by the
// aggregate id so events for one loan stay ordered within a partition.
type KafkaEventPublisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

var _ Publisher = (*KafkaEventPublisher)(nil)

func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers cannot be empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic cannot be empty")
	}
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
	}
	return newKafkaEventPublisher(w, topic, logger), nil
}

func newKafkaEventPublisher(w messageWriter, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: w,
		topic:  topic,
		logger: logger.With("component", "KafkaEventPublisher", "topic", topic),
	}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, env Envelope) error {
	logCtx := p.logger.With(slog.String("type", string(env.Type)), slog.String("eventId", env.ID))

	wm, err := encode(env)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to encode event", slog.Any("error", err))
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(wm.Key),
		Value: wm.Body,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(env.Type)},
			{Key: "app-id", Value: []byte(publisherAppID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to Kafka", slog.Any("error", err))
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}

	logCtx.InfoContext(ctx, "Successfully published message")
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
