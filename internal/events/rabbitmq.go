package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var queues = []string{TypeReservationConfirmed, TypeReservationCancelled}

type rabbitPublisher struct {
	url string
	log *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher dials the broker and declares one durable queue per
// event type. Messages go through the default exchange with the event type
// as routing key.
func NewRabbitPublisher(url string, log *zap.Logger) (Publisher, error) {
	p := &rabbitPublisher{
		url: url,
		log: log.With(zap.String("publisher", "rabbitmq")),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

// connect must be called with mu held
func (p *rabbitPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq open channel: %w", err)
	}

	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("rabbitmq declare queue %s: %w", queue, err)
		}
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.ReservationID.String(),
		Type:         event.Type,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() || p.conn == nil || p.conn.IsClosed() {
		p.log.Warn("Broker connection lost, reconnecting")
		if err := p.connect(); err != nil {
			return err
		}
	}

	if err := p.ch.PublishWithContext(ctx, "", event.Type, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", event.Type, err)
	}

	p.log.Debug("Event published",
		zap.String("type", event.Type),
		zap.String("reservation_id", event.ReservationID.String()),
	)
	return nil
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
