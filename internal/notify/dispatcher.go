package notify

import (
	"context"
	"encoding/json"
	"log"

	"gigboard/internal/config"

	"github.com/hibiken/asynq"
)

// Dispatcher is what the usecases depend on; tests swap in a recorder.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev JobEvent)
}

// QueueDispatcher enqueues events onto the asynq queue.
type QueueDispatcher struct {
	client *asynq.Client
	logger *log.Logger
}

func NewQueueDispatcher(cfg config.RedisConfig, logger *log.Logger) *QueueDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
	})
	return &QueueDispatcher{client: client, logger: logger}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, ev JobEvent) {
	if d == nil || d.client == nil {
		return
	}

	b, err := json.Marshal(ev)
	if err != nil {
		if d.logger != nil {
			d.logger.Printf("[Notify] marshal failed | event=%s err=%v", ev.Event, err)
		}
		return
	}

	task := asynq.NewTask(TaskJobEvent, b)
	if _, err := d.client.EnqueueContext(ctx, task, asynq.Queue(queueName)); err != nil {
		if d.logger != nil {
			d.logger.Printf("[Notify] enqueue failed | event=%s recipient=%s err=%v", ev.Event, ev.Recipient, err)
		}
	}
}

func (d *QueueDispatcher) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Close()
}
