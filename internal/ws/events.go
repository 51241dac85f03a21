package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope pushed to connected clients. Kind is one of
// "job_updated", "chat_message" or "notification".
type Event struct {
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp string          `json:"timestamp"`
}

func encodeEvent(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		Kind:      kind,
		Payload:   raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishEvent marshals and delivers an event to one user. Errors are
// swallowed; realtime delivery is best-effort on top of the stored state.
func (h *Hub) PublishEvent(userID uuid.UUID, kind string, payload any) {
	if h == nil {
		return
	}
	b, err := encodeEvent(kind, payload)
	if err != nil {
		return
	}
	h.Publish(userID, b)
}
