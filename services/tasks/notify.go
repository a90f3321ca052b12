package tasks

import (
	"encoding/json"

	"clinicbook/models"

	"github.com/hibiken/asynq"
)

const TypeNotifySend = "notify:send"

// NewNotifyTask wraps a notification message for the delivery queue.
func NewNotifyTask(msg models.NotificationMessage) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotifySend, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("default")}

	return task, opts, nil
}
