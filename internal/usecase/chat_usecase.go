package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gigboard/internal/domain/chat"
	"gigboard/internal/domain/job"
	"gigboard/internal/notify"
	"gigboard/internal/repository"
	"gigboard/internal/ws"

	"github.com/google/uuid"
)

type SendMessageInput struct {
	JobID       uuid.UUID
	Viewer      uuid.UUID
	Other       uuid.UUID
	SenderEmail string
	Body        string
}

type ChatUsecase interface {
	SendMessage(ctx context.Context, in SendMessageInput) (chat.Message, error)
	ListMessages(ctx context.Context, jobID, viewer, other uuid.UUID) ([]chat.Message, error)
}

// Chats resolves a job conversation to its deterministic channel and reads
// or appends messages. The counterparty named in the request must agree
// with what the resolver derives from the job, which keeps outsiders from
// opening channels the job's state does not justify.
type Chats struct {
	jobs       repository.JobRepository
	messages   repository.ChatRepository
	dispatcher notify.Dispatcher
	hub        *ws.Hub
	logger     *log.Logger
}

func NewChatUsecase(jobs repository.JobRepository, messages repository.ChatRepository, dispatcher notify.Dispatcher, hub *ws.Hub, logger *log.Logger) *Chats {
	return &Chats{jobs: jobs, messages: messages, dispatcher: dispatcher, hub: hub, logger: logger}
}

func (u *Chats) SendMessage(ctx context.Context, in SendMessageInput) (chat.Message, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return chat.Message{}, ErrInvalidInput
	}

	j, key, counterparty, err := u.resolve(ctx, in.JobID, in.Viewer, in.Other)
	if err != nil {
		return chat.Message{}, err
	}

	m := chat.Message{
		ID:          uuid.New(),
		ChannelKey:  key,
		SenderID:    in.Viewer,
		SenderEmail: in.SenderEmail,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := u.messages.AppendMessage(ctx, m); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Chat] append failed | channel=%s err=%v", key, err)
		}
		return chat.Message{}, ErrInternal
	}

	if u.dispatcher != nil {
		u.dispatcher.Dispatch(ctx, notify.JobEvent{
			Recipient: counterparty,
			Event:     job.EventNewMessage,
			JobID:     j.ID,
			JobTitle:  j.Title,
			Sender:    in.Viewer,
		})
	}
	u.hub.PublishEvent(counterparty, "chat_message", map[string]any{
		"channelKey":  key,
		"jobId":       j.ID,
		"senderId":    m.SenderID,
		"senderEmail": m.SenderEmail,
		"body":        m.Body,
		"createdAt":   m.CreatedAt.Format(time.RFC3339),
	})

	return m, nil
}

func (u *Chats) ListMessages(ctx context.Context, jobID, viewer, other uuid.UUID) ([]chat.Message, error) {
	_, key, _, err := u.resolve(ctx, jobID, viewer, other)
	if err != nil {
		return nil, err
	}

	out, err := u.messages.ListMessages(ctx, key, 0)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Chats) resolve(ctx context.Context, jobID, viewer, other uuid.UUID) (job.Job, string, uuid.UUID, error) {
	if other == uuid.Nil || other == viewer {
		return job.Job{}, "", uuid.Nil, ErrInvalidInput
	}

	j, _, err := u.jobs.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, "", uuid.Nil, ErrNotFound
		}
		return job.Job{}, "", uuid.Nil, ErrInternal
	}

	counterparty, ok := chat.Counterparty(j, viewer, &other)
	if !ok || counterparty != other {
		return job.Job{}, "", uuid.Nil, ErrPermissionDenied
	}

	return j, chat.ChannelKey(jobID, viewer, counterparty), counterparty, nil
}
