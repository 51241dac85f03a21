package job

import (
	"fmt"
	"time"

	"gigboard/internal/domain/geo"

	"github.com/google/uuid"
)

// Status values mirror the status CHECK constraint on the jobs table.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusCompleted Status = "completed"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusAvailable, StatusTaken, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

type PayFrequency string

const (
	PayDaily   PayFrequency = "daily"
	PayWeekly  PayFrequency = "weekly"
	PayMonthly PayFrequency = "monthly"
)

func ParsePayFrequency(s string) (PayFrequency, error) {
	f := PayFrequency(s)
	switch f {
	case PayDaily, PayWeekly, PayMonthly:
		return f, nil
	}
	return "", fmt.Errorf("unknown pay frequency %q", s)
}

type Job struct {
	ID           uuid.UUID
	Title        string
	Description  string
	JobType      string
	Pay          float64
	PayFrequency PayFrequency

	// Contact is the cleartext contact detail. The secrets package seals
	// it before it reaches the store.
	Contact string

	Location geo.Coordinate
	Region   string
	Address  string

	PostedBy        uuid.UUID
	Status          Status
	AssignedUser    *uuid.UUID
	Applicants      []uuid.UUID
	ApprovedSeekers []uuid.UUID

	CreatedAt time.Time
}

// HasApplicant reports whether id is in the applicant set.
func (j Job) HasApplicant(id uuid.UUID) bool {
	return containsID(j.Applicants, id)
}

// IsApproved reports whether the poster has approved id to take the job.
func (j Job) IsApproved(id uuid.UUID) bool {
	return containsID(j.ApprovedSeekers, id)
}

// IsAssignedTo reports whether the job has been taken by id.
func (j Job) IsAssignedTo(id uuid.UUID) bool {
	return j.AssignedUser != nil && *j.AssignedUser == id
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type Testimonial struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}
