package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one entry in a user's notification feed. Rows are written
// by the notify worker and read back by the feed endpoint.
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	EventType   string
	Title       string
	Body        string
	JobID       *uuid.UUID
	JobTitle    string
	SenderID    *uuid.UUID
	Read        bool
	CreatedAt   time.Time
}
