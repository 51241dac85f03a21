package usecase

import (
	"context"

	"gigboard/internal/domain/notification"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type NotificationUsecase interface {
	Feed(ctx context.Context, recipient uuid.UUID, limit int) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id, recipient uuid.UUID) error
}

type Notifications struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) *Notifications {
	return &Notifications{repo: repo}
}

func (u *Notifications) Feed(ctx context.Context, recipient uuid.UUID, limit int) ([]notification.Notification, error) {
	out, err := u.repo.ListByRecipient(ctx, recipient, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Notifications) MarkRead(ctx context.Context, id, recipient uuid.UUID) error {
	ok, err := u.repo.MarkRead(ctx, id, recipient)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
