package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type TestPayload struct {
	ID      string
	Message string
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[TestPayload](config)

	ctx := context.Background()
	payload := TestPayload{ID: "test-1", Message: "Hello, world!"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
}

func TestQueueNackRequeues(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 5 * time.Millisecond
	queue := NewQueue[TestPayload](config)
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &TestPayload{ID: "retry-1"}))
	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Nack(context.DeadlineExceeded))

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	message, err = queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "retry-1", message.T().ID)
}

func TestQueueConsumeHonoursContext(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
