// Package rabbitmq publishes operation completion events to an AMQP exchange
// for downstream notification consumers.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
)

// Publisher emits OperationCompletedEvents onto a fanout-per-kind topic
// exchange. It is safe for concurrent use; amqp channels are not, so all
// publishing is serialized behind a mutex.
type Publisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

var _ portssvc.NotificationPublisher = (*Publisher)(nil)

// NewPublisher connects to the broker and declares the durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &Publisher{conn: conn, exchange: exchange, ch: ch}, nil
}

// PublishOperationCompleted emits the event with a routing key derived from
// the operation kind, e.g. "operation.completed.deposit".
func (p *Publisher) PublishOperationCompleted(ctx context.Context, event portssvc.OperationCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode operation event: %w", err)
	}

	routingKey := "operation.completed." + strings.ToLower(string(event.Kind))

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.Record.RecordID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish operation event: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to close rabbitmq channel: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("failed to close rabbitmq connection: %w", err)
	}
	return nil
}
