package events

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Event types published on the notification exchange.
const (
	OrderPlaced     = "order.placed"
	StockRestocked  = "stock.restocked"
	TailoringUpdate = "tailoring.updated"
)

// Event is the message body for a notification event.
type Event struct {
	Type      string         `json:"type"`
	Reference string         `json:"reference"`
	Data      map[string]any `json:"data,omitempty"`
	At        time.Time      `json:"at"`
}

// Publisher sends best-effort notification events over RabbitMQ. A nil
// Publisher is valid and drops everything, so wiring is optional.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	log      zerolog.Logger
}

// NewPublisher dials RabbitMQ and declares a durable exchange and queue.
func NewPublisher(url, exchange, queue string, log zerolog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	p := &Publisher{conn: conn, channel: ch, exchange: exchange, queue: queue, log: log}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) setup() error {
	if err := p.channel.ExchangeDeclare(
		p.exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := p.channel.QueueDeclare(
		p.queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return p.channel.QueueBind(p.queue, "", p.exchange, false, nil)
}

// Publish sends an event. Failures are logged and swallowed: notifications
// never fail the operation that triggered them.
func (p *Publisher) Publish(eventType, reference string, data map[string]any) {
	if p == nil || p.channel == nil {
		return
	}

	body, err := json.Marshal(Event{
		Type:      eventType,
		Reference: reference,
		Data:      data,
		At:        time.Now(),
	})
	if err != nil {
		p.log.Warn().Err(err).Str("event", eventType).Msg("failed to encode event")
		return
	}

	err = p.channel.Publish(
		p.exchange,
		"",
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		p.log.Warn().Err(err).Str("event", eventType).Str("ref", reference).Msg("failed to publish event")
	}
}

// Channel exposes the underlying AMQP channel so a consumer can share the
// connection.
func (p *Publisher) Channel() *amqp.Channel {
	if p == nil {
		return nil
	}
	return p.channel
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
