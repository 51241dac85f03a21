// Package job holds the job entity and the lifecycle engine.
//
// Valid status graph:
//
//	available ──► taken ──► completed
//
// completed is terminal. The engine is pure decision logic: each action
// validates the actor against the current job state and returns the new
// state plus the effects the caller must carry out, in order — exactly one
// conditional store update, then zero or one notification. The engine
// performs no I/O itself.
package job

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrPermissionDenied means the actor is not authorized for the
	// requested action.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidState means the action was attempted from the wrong
	// source status.
	ErrInvalidState = errors.New("invalid job state")
)

// Event identifies the notification a lifecycle action triggers.
type Event string

const (
	EventNewApplication      Event = "new_application"
	EventApplicationApproved Event = "application_approved"
	EventJobTaken            Event = "job_taken"
	EventJobCompleted        Event = "job_completed"
	EventNewMessage          Event = "new_message"
)

// Update describes the single conditional field update a decision
// produces. ExpectStatus is the status the store write must be guarded on:
// the write is a compare-and-swap that affects zero rows when another
// actor got there first.
type Update struct {
	ExpectStatus Status

	SetStatus         *Status
	SetAssignedUser   *uuid.UUID
	AddApplicant      *uuid.UUID
	RemoveApplicant   *uuid.UUID
	AddApprovedSeeker *uuid.UUID
}

// Notification is the dispatch intent attached to a decision. Delivery is
// best-effort and never blocks or rolls back the state transition.
type Notification struct {
	Recipient uuid.UUID
	Event     Event
}

// Decision is the outcome of a lifecycle action applied to a job snapshot.
// NoOp decisions carry no effects: the requested change was already in
// place (idempotent re-apply, withdraw of a non-applicant, re-approve).
type Decision struct {
	Job          Job
	Update       Update
	Notification *Notification
	NoOp         bool
}

func noOp(j Job) Decision {
	return Decision{Job: j, NoOp: true}
}

// Apply adds the actor to the applicant set of an available job and
// notifies the poster. Reapplying is a no-op, not an error.
func Apply(j Job, actor uuid.UUID) (Decision, error) {
	if actor == j.PostedBy {
		return Decision{}, ErrPermissionDenied
	}
	if j.Status != StatusAvailable {
		return Decision{}, ErrInvalidState
	}
	if j.HasApplicant(actor) {
		return noOp(j), nil
	}

	next := j
	next.Applicants = append(append([]uuid.UUID(nil), j.Applicants...), actor)
	return Decision{
		Job: next,
		Update: Update{
			ExpectStatus: StatusAvailable,
			AddApplicant: &actor,
		},
		Notification: &Notification{Recipient: j.PostedBy, Event: EventNewApplication},
	}, nil
}

// Withdraw removes the actor from the applicant set. It never touches the
// approved set, and withdrawing when not applied is a no-op.
func Withdraw(j Job, actor uuid.UUID) (Decision, error) {
	if j.Status != StatusAvailable {
		return Decision{}, ErrInvalidState
	}
	if !j.HasApplicant(actor) {
		return noOp(j), nil
	}

	next := j
	next.Applicants = removeID(j.Applicants, actor)
	return Decision{
		Job: next,
		Update: Update{
			ExpectStatus:    StatusAvailable,
			RemoveApplicant: &actor,
		},
	}, nil
}

// Approve lets the poster admit an applicant to the approved-seeker set.
// Any identity may be approved, applicant or not. Approving twice is a
// reported no-op.
func Approve(j Job, actor, applicant uuid.UUID) (Decision, error) {
	if actor != j.PostedBy {
		return Decision{}, ErrPermissionDenied
	}
	if j.Status != StatusAvailable {
		return Decision{}, ErrInvalidState
	}
	if j.IsApproved(applicant) {
		return noOp(j), nil
	}

	next := j
	next.ApprovedSeekers = append(append([]uuid.UUID(nil), j.ApprovedSeekers...), applicant)
	return Decision{
		Job: next,
		Update: Update{
			ExpectStatus:      StatusAvailable,
			AddApprovedSeeker: &applicant,
		},
		Notification: &Notification{Recipient: applicant, Event: EventApplicationApproved},
	}, nil
}

// Take transitions available → taken and assigns the actor. The actor must
// not be the poster and must have been approved first.
func Take(j Job, actor uuid.UUID) (Decision, error) {
	if actor == j.PostedBy {
		return Decision{}, ErrPermissionDenied
	}
	if j.Status != StatusAvailable {
		return Decision{}, ErrInvalidState
	}
	if !j.IsApproved(actor) {
		return Decision{}, ErrPermissionDenied
	}

	taken := StatusTaken
	next := j
	next.Status = taken
	next.AssignedUser = &actor
	return Decision{
		Job: next,
		Update: Update{
			ExpectStatus:    StatusAvailable,
			SetStatus:       &taken,
			SetAssignedUser: &actor,
		},
		Notification: &Notification{Recipient: j.PostedBy, Event: EventJobTaken},
	}, nil
}

// Complete transitions taken → completed. Only the assigned seeker may
// complete. Completed is terminal; everything but testimonials freezes.
func Complete(j Job, actor uuid.UUID) (Decision, error) {
	if !j.IsAssignedTo(actor) {
		return Decision{}, ErrPermissionDenied
	}
	if j.Status != StatusTaken {
		return Decision{}, ErrInvalidState
	}

	completed := StatusCompleted
	next := j
	next.Status = completed
	return Decision{
		Job: next,
		Update: Update{
			ExpectStatus: StatusTaken,
			SetStatus:    &completed,
		},
		Notification: &Notification{Recipient: j.PostedBy, Event: EventJobCompleted},
	}, nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, v := range ids {
		if v == id {
			continue
		}
		out = append(out, v)
	}
	return out
}
