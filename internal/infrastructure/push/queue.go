package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/socialjobs/workmatch/internal/domain/contract"
)

// publisher is the part of *amqp.Channel used to enqueue messages.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QueueMessage is the body read by the device-push worker.
type QueueMessage struct {
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// QueueChannel hands messages to an external device-push worker through a
// durable RabbitMQ queue.
type QueueChannel struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    publisher
	queue string
}

var _ contract.IPushChannel = (*QueueChannel)(nil)

// NewQueueChannel dials url and declares queue.
func NewQueueChannel(url, queue string) (*QueueChannel, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("amqp url is required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &QueueChannel{conn: conn, ch: ch, queue: queue}, nil
}

func (q *QueueChannel) Send(ctx context.Context, userID, title, body string) error {
	payload, err := json.Marshal(QueueMessage{UserID: userID, Title: title, Body: body, Timestamp: time.Now().UTC()})
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishes
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ch.PublishWithContext(ctx, "", q.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         payload,
	})
}

func (q *QueueChannel) Close() error {
	if q.conn == nil {
		return nil
	}
	return q.conn.Close()
}
