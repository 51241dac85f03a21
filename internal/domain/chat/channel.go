// Package chat derives chat channels from jobs. A channel is not created
// anywhere: both participants compute the same key independently from job
// fields they already know, so no coordination is needed.
package chat

import (
	"sort"
	"strings"
	"time"

	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

// ChannelKey derives the deterministic channel identifier for one job and
// two participants. The three identifiers are sorted before joining, so the
// same pair always resolves to the same key regardless of who initiates.
func ChannelKey(jobID, a, b uuid.UUID) string {
	parts := []string{jobID.String(), a.String(), b.String()}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}

// Counterparty resolves who the viewer is talking to about a job.
//
// The poster chats with the assigned seeker once the job is taken, or with
// an explicitly chosen candidate before that. Everyone else chats with the
// poster. ok is false when there is no counterparty yet.
func Counterparty(j job.Job, viewer uuid.UUID, candidate *uuid.UUID) (uuid.UUID, bool) {
	if viewer != j.PostedBy {
		return j.PostedBy, true
	}
	if j.AssignedUser != nil {
		return *j.AssignedUser, true
	}
	if candidate != nil && *candidate != j.PostedBy {
		return *candidate, true
	}
	return uuid.Nil, false
}

// Message is one entry in a channel's append-only sequence.
type Message struct {
	ID          uuid.UUID
	ChannelKey  string
	SenderID    uuid.UUID
	SenderEmail string
	Body        string
	CreatedAt   time.Time
}
