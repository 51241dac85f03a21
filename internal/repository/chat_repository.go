package repository

import (
	"context"

	"gigboard/internal/database"
	"gigboard/internal/domain/chat"
)

type ChatRepository interface {
	AppendMessage(ctx context.Context, m chat.Message) error
	// ListMessages returns a channel's messages oldest first.
	ListMessages(ctx context.Context, channelKey string, limit int) ([]chat.Message, error)
}

type PostgresChatRepository struct {
	db database.DB
}

func NewPostgresChatRepository(db database.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) AppendMessage(ctx context.Context, m chat.Message) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chat_messages (id, channel_key, sender_id, sender_email, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ChannelKey, m.SenderID, m.SenderEmail, m.Body, m.CreatedAt,
	)
	return err
}

func (r *PostgresChatRepository) ListMessages(ctx context.Context, channelKey string, limit int) ([]chat.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, channel_key, sender_id, sender_email, body, created_at
		 FROM chat_messages WHERE channel_key = $1
		 ORDER BY created_at
		 LIMIT $2`,
		channelKey, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ChannelKey, &m.SenderID, &m.SenderEmail, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
