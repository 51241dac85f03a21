package dto

import (
	"time"

	"gigboard/internal/domain/chat"

	"github.com/google/uuid"
)

type ChatMessageResponse struct {
	ID          uuid.UUID `json:"id"`
	ChannelKey  string    `json:"channelKey"`
	SenderID    uuid.UUID `json:"senderId"`
	SenderEmail string    `json:"senderEmail"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewChatMessageResponse(m chat.Message) ChatMessageResponse {
	return ChatMessageResponse{
		ID:          m.ID,
		ChannelKey:  m.ChannelKey,
		SenderID:    m.SenderID,
		SenderEmail: m.SenderEmail,
		Body:        m.Body,
		CreatedAt:   m.CreatedAt,
	}
}

func NewChatMessageResponses(ms []chat.Message) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewChatMessageResponse(m))
	}
	return out
}
