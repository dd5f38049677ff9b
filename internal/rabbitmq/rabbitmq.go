package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// RabbitMQ wraps an AMQP connection and channel used to publish
// seeding events. A single channel is shared by all publishers.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New creates a connection to RabbitMQ
func New(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &RabbitMQ{conn: conn, channel: ch}, nil
}

// Close shuts down channel and connection
func (r *RabbitMQ) Close() {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}

// DeclareQueue makes sure a durable queue exists so messages published to
// the default exchange with its name as routing key are not dropped.
func (r *RabbitMQ) DeclareQueue(name string) error {
	if _, err := r.channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

// Publish sends a message to an exchange with routing key
func (r *RabbitMQ) Publish(exchange, key string, body []byte) error {
	return r.channel.Publish(exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
