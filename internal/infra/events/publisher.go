// Package events публикует события бронирований в RabbitMQ.
// Ошибки публикации возвращаются вызывающей стороне, которая решает,
// прерывать ли основной сценарий. Обычно не прерывает.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// Publisher издатель событий в topic exchange
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
	logger   Logger
	now      func() time.Time
}

// NewPublisher подключается к брокеру и объявляет durable exchange
func NewPublisher(url, exchange string, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(
		exchange,     // name
		exchangeKind, // kind
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %q: %v", ErrConnect, exchange, err)
	}

	p := NewPublisherWithChannel(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

// NewPublisherWithChannel создает издателя поверх готового канала
func NewPublisherWithChannel(ch Channel, exchange string, logger Logger) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
		now:      time.Now,
	}
}

// Publish публикует событие eventType с payload
// Тип события используется как routing key
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	msg, err := NewMessage(eventType, payload, p.now())
	if err != nil {
		return err
	}

	// amqp.Channel не безопасен для параллельной публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		eventType,  // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	); err != nil {
		p.logger.Error("events: publish %s failed: %v", eventType, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		firstErr = p.channel.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewMessage собирает persistent сообщение с JSON конвертом события
func NewMessage(eventType string, payload interface{}, now time.Time) (amqp.Publishing, error) {
	envelope := Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: now.UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("%w: %s: %v", ErrEncode, eventType, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    envelope.ID,
		Type:         eventType,
		Timestamp:    envelope.OccurredAt,
		Body:         body,
	}, nil
}

// NoopPublisher используется, когда брокер отключён в конфигурации
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}

// Close ничего не делает
func (NoopPublisher) Close() error {
	return nil
}
