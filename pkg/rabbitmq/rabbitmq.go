package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
	"go.uber.org/multierr"
)

// DefaultQueue receives every training event.
const DefaultQueue = "training_events"

// channel is the subset of *amqp.Channel the client uses.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	mu      sync.Mutex // guards channel
	channel channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		err = multierr.Combine(err, ch.Close(), conn.Close())
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	log.WithField("queue", cfg.Queue).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

// Publish sends a JSON event to the queue. eventType is carried as the message type.
func (c *Client) Publish(eventType string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		"",      // exchange: default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			MessageId:    uuid.NewString(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	log.WithField("type", eventType).Debug("Event published")
	return nil
}

// Check reports an error when the connection has been lost.
func (c *Client) Check(_ context.Context) error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("connection closed")
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.channel != nil {
		if cerr := c.channel.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close channel: %w", cerr))
		}
		c.channel = nil
	}
	if c.conn != nil {
		if cerr := c.conn.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close connection: %w", cerr))
		}
		c.conn = nil
	}
	return err
}
