package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultPublishTopic carries PublishJob messages from payment confirmation
// to the publisher.
const DefaultPublishTopic = "ad_publish"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers each message to every subscriber on its own
// goroutine and retries failed deliveries.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error

	// MaxRetries and Backoff default to 3 and 500ms.
	MaxRetries int
	Backoff    time.Duration
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{
			Topic:      topic,
			Payload:    payload,
			MaxRetries: q.MaxRetries,
		}
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	log := zap.L().With(zap.String("topic", job.Topic))

	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			log.Debug("job processed", zap.Any("payload", job.Payload))
			return
		}

		job.RetryCount++
		log.Warn("job failed",
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Any("payload", job.Payload),
			zap.Error(err),
		)

		if job.RetryCount > job.MaxRetries {
			log.Error("job permanently failed", zap.Any("payload", job.Payload))
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
