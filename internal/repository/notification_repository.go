package repository

import (
	"context"

	"gigboard/internal/database"
	"gigboard/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n notification.Notification) error
	// ListByRecipient returns a user's feed newest first.
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error)
	// MarkRead flips the read flag; it reports whether the notification
	// existed and belonged to the recipient.
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, n notification.Notification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (id, recipient_id, event_type, title, body, job_id, job_title, sender_id, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.RecipientID, n.EventType, n.Title, n.Body, n.JobID, n.JobTitle, n.SenderID, n.Read, n.CreatedAt,
	)
	return err
}

func (r *PostgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, recipient_id, event_type, title, body, job_id, job_title, sender_id, read, created_at
		 FROM notifications WHERE recipient_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		recipientID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.EventType, &n.Title, &n.Body,
			&n.JobID, &n.JobTitle, &n.SenderID, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
