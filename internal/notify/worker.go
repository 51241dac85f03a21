package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gigboard/internal/config"
	"gigboard/internal/domain/notification"
	"gigboard/internal/repository"
	"gigboard/internal/ws"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes the notification queue. Each task becomes one feed row
// plus, when the recipient has a live connection, one websocket push.
type Worker struct {
	server *asynq.Server
	repo   repository.NotificationRepository
	hub    *ws.Hub
	logger *log.Logger
}

func NewWorker(cfg config.RedisConfig, repo repository.NotificationRepository, hub *ws.Hub, logger *log.Logger) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Addr(), Password: cfg.Password},
		asynq.Config{
			Concurrency: 4,
			Queues:      map[string]int{queueName: 1},
		},
	)
	return &Worker{server: server, repo: repo, hub: hub, logger: logger}
}

// Start runs the queue consumer in the background.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskJobEvent, w.handleJobEvent)
	return w.server.Start(mux)
}

// Run blocks until the server is shut down. Used by the standalone worker
// binary; the API server uses Start.
func (w *Worker) Run() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskJobEvent, w.handleJobEvent)
	return w.server.Run(mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleJobEvent(ctx context.Context, task *asynq.Task) error {
	var ev JobEvent
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		// Malformed payloads can never succeed; drop instead of retrying.
		if w.logger != nil {
			w.logger.Printf("[NotifyWorker] dropping malformed payload | err=%v", err)
		}
		return nil
	}

	title, body, ok := Render(ev)
	if !ok {
		if w.logger != nil {
			w.logger.Printf("[NotifyWorker] dropping unknown event | event=%s", ev.Event)
		}
		return nil
	}

	n := notification.Notification{
		ID:          uuid.New(),
		RecipientID: ev.Recipient,
		EventType:   string(ev.Event),
		Title:       title,
		Body:        body,
		JobTitle:    ev.JobTitle,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}
	if ev.JobID != uuid.Nil {
		jobID := ev.JobID
		n.JobID = &jobID
	}
	if ev.Sender != uuid.Nil {
		sender := ev.Sender
		n.SenderID = &sender
	}

	if err := w.repo.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	w.hub.PublishEvent(ev.Recipient, "notification", map[string]any{
		"id":        n.ID,
		"eventType": n.EventType,
		"title":     n.Title,
		"body":      n.Body,
		"jobId":     n.JobID,
		"jobTitle":  n.JobTitle,
		"createdAt": n.CreatedAt.Format(time.RFC3339),
	})

	if w.logger != nil {
		w.logger.Printf("[NotifyWorker] delivered | event=%s recipient=%s", ev.Event, ev.Recipient)
	}
	return nil
}
