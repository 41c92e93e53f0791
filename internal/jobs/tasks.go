package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

const (
	// QueueDefault is the queue all notification tasks are enqueued on.
	QueueDefault = "default"
	// TaskTypeSendNotification is the task type for outbound workflow notices.
	TaskTypeSendNotification = "notify:email"
)

// NewNotificationTask wraps a domain notification in an asynq task.
func NewNotificationTask(notification domain.Notification) (*asynq.Task, error) {
	data, err := json.Marshal(notification)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendNotification, data), nil
}
