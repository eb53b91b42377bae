package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Типы событий
const (
	TypeCreated              = "booking.created"
	TypeStatusChanged        = "booking.status_changed"
	TypePaymentStatusChanged = "booking.payment_status_changed"
)

var (
	// ErrConnect возвращается при ошибке подключения к RabbitMQ
	ErrConnect = errors.New("events: failed to connect to rabbitmq")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: failed to publish event")
)

// BookingEvent событие изменения бронирования
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	OldValue   string    `json:"oldValue"`
	NewValue   string    `json:"newValue"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher публикует события в durable очередь RabbitMQ
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewPublisher подключается к RabbitMQ и объявляет очередь
func NewPublisher(url, queueName string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	q, err := channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare queue: %v", ErrConnect, err)
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
		queue:   q,
	}, nil
}

// Publish публикует событие
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",           // exchange
		p.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

func buildMessage(event BookingEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	}, nil
}
