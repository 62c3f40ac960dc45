package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// BookingCreated is published after a booking commits.
type BookingCreated struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	ShowtimeID string    `json:"showtime_id"`
	Seats      []string  `json:"seats"`
	GrandTotal string    `json:"grand_total"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	// redialBackoff is how long publishes fail fast after a failed dial.
	redialBackoff      = 5 * time.Second
	defaultDialTimeout = 10 * time.Second
)

var errBrokerBackoff = errors.New("broker unavailable, waiting before redial")

type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreated) error
	Close() error
}

// NewPublisher returns an AMQP publisher for url, or a no-op publisher when url is empty.
func NewPublisher(url, queue string, log *zap.Logger) Publisher {
	log = log.With(zap.String("component", "events"))
	if url == "" {
		return &noopPublisher{log: log}
	}
	return &amqpPublisher{url: url, queue: queue, log: log, dial: amqp.DialConfig}
}

type amqpPublisher struct {
	url   string
	queue string
	log   *zap.Logger
	dial  func(url string, config amqp.Config) (*amqp.Connection, error)

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	failedAt time.Time
}

// channel dials lazily and redials after the broker dropped the connection.
// The dial is bounded by ctx, and a failed dial is not retried for redialBackoff.
func (p *amqpPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()

	if !p.failedAt.IsZero() && time.Since(p.failedAt) < redialBackoff {
		return nil, errBrokerBackoff
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := p.dial(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout(ctx)),
	})
	if err != nil {
		p.failedAt = time.Now()
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	p.failedAt = time.Time{}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *amqpPublisher) PublishBookingCreated(ctx context.Context, event BookingCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel(ctx)
	if err != nil {
		p.log.Warn("Broker unavailable", zap.Error(err))
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Warn("Failed to publish booking event", zap.Error(err), zap.String("booking_id", event.BookingID))
		return fmt.Errorf("publish booking event: %w", err)
	}

	p.log.Debug("Booking event published", zap.String("booking_id", event.BookingID))
	return nil
}

func dialTimeout(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultDialTimeout
	}
	if left := time.Until(deadline); left < defaultDialTimeout {
		return max(left, time.Millisecond)
	}
	return defaultDialTimeout
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *amqpPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

type noopPublisher struct {
	log *zap.Logger
}

func (p *noopPublisher) PublishBookingCreated(_ context.Context, event BookingCreated) error {
	p.log.Debug("Broker not configured, booking event dropped", zap.String("booking_id", event.BookingID))
	return nil
}

func (p *noopPublisher) Close() error { return nil }
