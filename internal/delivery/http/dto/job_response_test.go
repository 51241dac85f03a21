package dto_test

import (
	"testing"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/discovery"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

func TestNewJobResponse_SetVisibility(t *testing.T) {
	poster := uuid.New()
	applicant := uuid.New()
	approved := uuid.New()

	j := job.Job{
		ID:              uuid.New(),
		Title:           "Garden Cleanup",
		PostedBy:        poster,
		Status:          job.StatusAvailable,
		Applicants:      []uuid.UUID{applicant, approved},
		ApprovedSeekers: []uuid.UUID{approved},
	}

	res := dto.NewJobResponse(j, poster)
	if len(res.Applicants) != 2 || len(res.ApprovedSeekers) != 1 {
		t.Fatalf("poster view missing sets: %+v", res)
	}

	res = dto.NewJobResponse(j, applicant)
	if res.Applicants != nil || res.ApprovedSeekers != nil {
		t.Fatal("non-poster view leaks participant sets")
	}
	if !res.HasApplied || res.IsApproved {
		t.Fatalf("applicant flags = (%v, %v), want (true, false)", res.HasApplied, res.IsApproved)
	}

	res = dto.NewJobResponse(j, approved)
	if !res.HasApplied || !res.IsApproved {
		t.Fatalf("approved seeker flags = (%v, %v), want (true, true)", res.HasApplied, res.IsApproved)
	}
}

func TestNewJobPageResponse_CarriesMembershipFlags(t *testing.T) {
	viewer := uuid.New()
	applied := job.Job{
		ID:         uuid.New(),
		PostedBy:   uuid.New(),
		Status:     job.StatusAvailable,
		Applicants: []uuid.UUID{viewer},
	}
	other := job.Job{
		ID:       uuid.New(),
		PostedBy: uuid.New(),
		Status:   job.StatusAvailable,
	}

	page := dto.NewJobPageResponse(discovery.Page{
		Items:      []job.Job{applied, other},
		Number:     1,
		TotalPages: 1,
		TotalItems: 2,
	}, viewer)

	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if !page.Items[0].HasApplied {
		t.Fatal("first item must carry the viewer's applied flag")
	}
	if page.Items[1].HasApplied {
		t.Fatal("second item wrongly flagged as applied")
	}
}
