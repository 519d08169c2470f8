// Package messaging delivers activity events to a RabbitMQ fanout exchange.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// Dial opens an AMQP connection to url.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	return conn, nil
}

// AMQPPublisher publishes activity events as JSON messages on a durable
// fanout exchange. Routing keys are not used.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher opens a channel on conn and declares exchange.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

// Send publishes event. The event ID becomes the message ID so consumers can
// drop redeliveries.
func (p *AMQPPublisher) Send(ctx context.Context, event domain.ActivityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal activity %s: %w", event.ID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, msg); err != nil {
		return fmt.Errorf("publish activity %s: %w", event.ID, err)
	}
	return nil
}

// Close closes the underlying channel.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
