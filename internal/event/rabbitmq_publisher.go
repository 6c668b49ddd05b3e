package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of *amqp.Channel the publisher needs.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type broker interface {
	openChannel() (amqpChannel, error)
	IsClosed() bool
	Close() error
}

type amqpBroker struct {
	*amqp.Connection
}

func (b amqpBroker) openChannel() (amqpChannel, error) {
	ch, err := b.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// RabbitMQEventPublisher sends envelopes to a durable topic exchange. The routing key
// is the event type, so consumers bind on patterns such as "loan.*" or "user.blocked".
type RabbitMQEventPublisher struct {
	broker   broker
	exchange string
	logger   *slog.Logger
}

var _ Publisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchange string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, errors.New("rabbitmq connection cannot be nil")
	}
	return newRabbitMQEventPublisher(amqpBroker{conn}, exchange, logger)
}

func newRabbitMQEventPublisher(b broker, exchange string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if exchange == "" {
		return nil, errors.New("rabbitmq exchange name cannot be empty")
	}
	p := &RabbitMQEventPublisher{
		broker:   b,
		exchange: exchange,
		logger:   logger.With("component", "RabbitMQEventPublisher", "exchange", exchange),
	}
	if err := p.declareExchange(); err != nil {
		return nil, err
	}
	p.logger.Info("Loan event exchange ready", "kind", amqp.ExchangeTopic)
	return p, nil
}

func (p *RabbitMQEventPublisher) declareExchange() error {
	ch, err := p.broker.openChannel()
	if err != nil {
		return fmt.Errorf("open channel to declare exchange %q: %w", p.exchange, err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", p.exchange, err)
	}
	return nil
}

func (p *RabbitMQEventPublisher) Publish(ctx context.Context, env Envelope) error {
	log := p.logger.With(slog.String("type", string(env.Type)), slog.String("eventId", env.ID))

	wm, err := encode(env)
	if err != nil {
		log.ErrorContext(ctx, "Failed to encode event", slog.Any("error", err))
		return err
	}

	ch, err := p.broker.openChannel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("rabbitmq publish to %s: %w", p.exchange, err)
	}
	defer ch.Close()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    env.ID,
		Type:         string(env.Type),
		Timestamp:    env.OccurredAt,
		AppId:        publisherAppID,
		Headers:      amqp.Table{"aggregate-key": wm.Key},
		Body:         wm.Body,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, string(env.Type), false, false, msg); err != nil {
		log.ErrorContext(ctx, "Failed to publish event to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("rabbitmq publish to %s: %w", p.exchange, err)
	}

	log.DebugContext(ctx, "Published event", "key", wm.Key, "bytes", len(wm.Body))
	return nil
}

func (p *RabbitMQEventPublisher) Close() error {
	if p.broker.IsClosed() {
		return nil
	}
	return p.broker.Close()
}
