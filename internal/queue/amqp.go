package queue

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// retryHeader counts redeliveries of a message that failed processing.
const retryHeader = "x-retry-count"

// AMQPQueue implements Queue on a RabbitMQ connection. Topics map to durable
// queues on the default exchange; payloads travel as JSON and subscribers
// receive the raw []byte body.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	mu       sync.Mutex
	declared map[string]bool

	MaxRetries int
}

func DialAMQP(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &AMQPQueue{
		conn:       conn,
		ch:         ch,
		declared:   make(map[string]bool),
		MaxRetries: 3,
	}, nil
}

func (q *AMQPQueue) declare(topic string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.declared[topic] {
		return nil
	}
	_, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	q.declared[topic] = true
	return nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	if err := q.declare(topic); err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return q.publishBody(topic, body, 0)
}

func (q *AMQPQueue) publishBody(topic string, body []byte, retries int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.ch.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{retryHeader: int32(retries)},
			Body:         body,
		},
	)
}

// Subscribe consumes topic with manual acks. A failed delivery is
// republished with an incremented retry header up to MaxRetries times and
// then dropped.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	if err := q.declare(topic); err != nil {
		return err
	}

	q.mu.Lock()
	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", topic, err)
	}

	go func() {
		log := zap.L().With(zap.String("topic", topic))
		for d := range msgs {
			err := handler(d.Body)
			if err == nil {
				d.Ack(false)
				continue
			}

			retries := retryCount(d.Headers)
			if retries < q.MaxRetries {
				log.Warn("delivery failed, requeueing", zap.Int("attempt", retries+1), zap.Error(err))
				if perr := q.publishBody(topic, d.Body, retries+1); perr != nil {
					log.Error("requeue failed", zap.Error(perr))
					d.Nack(false, true)
					continue
				}
			} else {
				log.Error("delivery permanently failed", zap.ByteString("body", d.Body), zap.Error(err))
			}
			d.Ack(false)
		}
		log.Info("consumer stopped")
	}()
	return nil
}

func (q *AMQPQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

func retryCount(h amqp.Table) int {
	switch v := h[retryHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

var _ Queue = (*AMQPQueue)(nil)
