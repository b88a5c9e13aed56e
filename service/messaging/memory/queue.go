package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/stepflow/service/messaging"
)

// Config for memory queue implementation
type Config struct {
	MaxRetries  int
	RetryDelay  time.Duration
	QueueBuffer int
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		RetryDelay:  100 * time.Millisecond,
		QueueBuffer: 100,
	}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	return nil
}

// Nack indicates a failure in processing the message; under the retry limit
// the message is requeued after the configured delay.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.retryCount++

	if m.retryCount <= m.queue.config.MaxRetries {
		go func() {
			time.Sleep(m.queue.config.RetryDelay)
			m.queue.publish(&Message[T]{
				payload:    m.payload,
				queue:      m.queue,
				retryCount: m.retryCount,
			})
		}()
	}
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a new message with the payload to the queue
func (q *Queue[T]) Publish(_ context.Context, t *T) error {
	if t == nil {
		return fmt.Errorf("payload was nil")
	}
	return q.publish(&Message[T]{payload: *t, queue: q})
}

func (q *Queue[T]) publish(message *Message[T]) error {
	select {
	case q.messages <- message:
		return nil
	default:
		return fmt.Errorf("queue is full")
	}
}

// Consume retrieves a single message from the queue, blocking until one is
// available or the context is done.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case message := <-q.messages:
		return message, nil
	}
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)

// Size returns the number of messages waiting in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}
