package dto

import (
	"time"

	"gigboard/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	EventType string     `json:"eventType"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	JobID     *uuid.UUID `json:"jobId,omitempty"`
	JobTitle  string     `json:"jobTitle,omitempty"`
	SenderID  *uuid.UUID `json:"senderId,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"createdAt"`
}

func NewNotificationResponses(ns []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			EventType: n.EventType,
			Title:     n.Title,
			Body:      n.Body,
			JobID:     n.JobID,
			JobTitle:  n.JobTitle,
			SenderID:  n.SenderID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
