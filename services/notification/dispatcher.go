package notification

import (
	"context"

	"clinicbook/models"
	"clinicbook/services/tasks"
	"clinicbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher queues messages for asynchronous delivery. Enqueue is called
// only after the owning reservation/token state is durably committed; the
// worker retries failed deliveries on its own and nothing here ever rolls a
// booking back.
type Dispatcher interface {
	Enqueue(ctx context.Context, msg models.NotificationMessage) error
}

// AsynqDispatcher is the production implementation backed by the redis queue.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client}
}

func (d *AsynqDispatcher) Enqueue(ctx context.Context, msg models.NotificationMessage) error {
	if msg.Address == "" {
		return nil
	}
	task, opts, err := tasks.NewNotifyTask(msg)
	if err != nil {
		return err
	}
	if _, err := d.Client.EnqueueContext(ctx, task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue notification",
			zap.String("channel", string(msg.Channel)), zap.Error(err))
		return err
	}
	return nil
}
