package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
)

// Client enqueues notification tasks on the redis-backed queue. It is the
// asynq implementation of the core notifier port.
type Client struct {
	client *asynq.Client
}

var _ portssvc.NotifierSvcFacade = (*Client)(nil)

// NewClient constructs a queue client for the given redis connection.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// Notify enqueues the notification for delivery by the worker.
func (c *Client) Notify(ctx context.Context, notification domain.Notification) error {
	task, err := NewNotificationTask(notification)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		return fmt.Errorf("failed to enqueue notification task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (c *Client) Close() error {
	return c.client.Close()
}
