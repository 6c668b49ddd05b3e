package event

import (
	"context"
	"log/slog"
)

// NoopPublisher drops events. It backs the "none" events driver and tests.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger.With("component", "NoopPublisher")}
}

func (p *NoopPublisher) Publish(ctx context.Context, env Envelope) error {
	p.logger.DebugContext(ctx, "Dropping event, no broker configured", slog.String("type", string(env.Type)), slog.String("eventId", env.ID))
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
