package events

import (
	"context"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
	Close() error
}

type noopPublisher struct {
	log *zap.Logger
}

// NewNoopPublisher returns a publisher that only logs at debug level
func NewNoopPublisher(log *zap.Logger) Publisher {
	return &noopPublisher{log: log.With(zap.String("publisher", "noop"))}
}

func (p *noopPublisher) Publish(_ context.Context, event ReservationEvent) error {
	p.log.Debug("Event dropped, no broker configured",
		zap.String("type", event.Type),
		zap.String("reservation_id", event.ReservationID.String()),
	)
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
