package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the row shape the engagement ingestion worker consumes from the
// bus: the event plus who sent it and when.
type Message struct {
	Event
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrNacked is returned when the broker refuses a publishing.
var ErrNacked = errors.New("rabbitmq nacked publishing")

// Confirmation is the broker's pending answer to one publishing.
type Confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type PublishingChannel interface {
	PublishWithConfirm(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) (Confirmation, error)
	Close() error
}

// confirmingChannel adapts a channel in confirm mode.
type confirmingChannel struct {
	ch *amqp.Channel
}

func (c confirmingChannel) PublishWithConfirm(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) (Confirmation, error) {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, mandatory, immediate, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("rabbitmq channel not in confirm mode")
	}
	return dc, nil
}

func (c confirmingChannel) Close() error { return c.ch.Close() }

// RabbitSink publishes events to a topic exchange instead of the HTTP
// endpoint. Send returns once the broker has confirmed the publishing.
type RabbitSink struct {
	conn       *amqp.Connection
	ch         PublishingChannel
	exchange   string
	routingKey string
	logger     *log.Logger
	now        func() time.Time
}

func NewRabbitSink(uri, exchange, routingKey string, logger *log.Logger) (*RabbitSink, error) {
	if logger == nil {
		logger = log.Default()
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connection failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel creation failed: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("exchange declare failed: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq confirm mode failed: %w", err)
	}

	logger.Printf("engagement: publishing to exchange %q with key %q", exchange, routingKey)

	return &RabbitSink{
		conn:       conn,
		ch:         confirmingChannel{ch: ch},
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (s *RabbitSink) Close() {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

func (s *RabbitSink) Send(ctx context.Context, ev Event, who Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(Message{
		Event:     ev,
		UserID:    who.UserID,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	conf, err := s.ch.PublishWithConfirm(
		ctx,
		s.exchange,
		s.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    s.now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("waiting for rabbitmq confirm: %w", err)
	}
	if !acked {
		return ErrNacked
	}
	return nil
}
