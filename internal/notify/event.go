// Package notify delivers job-event notifications. Dispatch enqueues onto
// a Redis-backed task queue and returns immediately; the worker consumes
// the queue, writes the notification feed row, and pushes to any live
// websocket connections. Delivery is best-effort: a failed enqueue is
// logged and never blocks or rolls back the job-state transition that
// produced it.
package notify

import (
	"fmt"

	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

const (
	TaskJobEvent = "notify:job_event"

	queueName = "notifications"
)

// JobEvent is the queue payload for one notification.
type JobEvent struct {
	Recipient uuid.UUID `json:"recipient"`
	Event     job.Event `json:"event"`
	JobID     uuid.UUID `json:"job_id"`
	JobTitle  string    `json:"job_title"`
	Sender    uuid.UUID `json:"sender"`
}

// Render produces the user-facing title and body for an event. Unknown
// events render ok=false and are dropped by the worker.
func Render(ev JobEvent) (title, body string, ok bool) {
	switch ev.Event {
	case job.EventNewApplication:
		return "New Job Application",
			fmt.Sprintf("Someone applied for your job: %s", ev.JobTitle), true
	case job.EventApplicationApproved:
		return "Application Approved",
			fmt.Sprintf("Your application for %q has been approved!", ev.JobTitle), true
	case job.EventJobTaken:
		return "Job Taken",
			fmt.Sprintf("Your job %q has been accepted!", ev.JobTitle), true
	case job.EventJobCompleted:
		return "Job Completed",
			fmt.Sprintf("The job %q has been marked as completed.", ev.JobTitle), true
	case job.EventNewMessage:
		return "New Message",
			fmt.Sprintf("You have a new message about %q.", ev.JobTitle), true
	}
	return "", "", false
}
