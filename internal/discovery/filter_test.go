package discovery_test

import (
	"fmt"
	"testing"

	"gigboard/internal/discovery"
	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

var jakarta = geo.Coordinate{Lat: -6.2088, Lng: 106.8456}

func jobAt(lat, lng float64, jobType string, status job.Status) job.Job {
	return job.Job{
		ID:       uuid.New(),
		Title:    "Help needed",
		JobType:  jobType,
		Location: geo.Coordinate{Lat: lat, Lng: lng},
		Status:   status,
	}
}

func TestApply_RadiusFilter(t *testing.T) {
	near := jobAt(-6.21, 106.85, "Cleaner", job.StatusAvailable)
	far := jobAt(-6.9175, 107.6191, "Cleaner", job.StatusAvailable) // Bandung, ~116 km

	got := discovery.Apply([]job.Job{near, far}, discovery.Filter{
		Status: job.StatusAvailable,
		Viewer: &jakarta,
	})
	if len(got) != 1 || got[0].ID != near.ID {
		t.Fatalf("expected only the nearby job, got %d jobs", len(got))
	}
}

func TestApply_StatusFilter(t *testing.T) {
	avail := jobAt(-6.21, 106.85, "Cleaner", job.StatusAvailable)
	done := jobAt(-6.21, 106.85, "Cleaner", job.StatusCompleted)

	got := discovery.Apply([]job.Job{avail, done}, discovery.Filter{Status: job.StatusCompleted})
	if len(got) != 1 || got[0].ID != done.ID {
		t.Fatalf("expected only the completed job, got %d jobs", len(got))
	}
}

func TestApply_TextFilterJobTypeOnly(t *testing.T) {
	cleaner := jobAt(-6.21, 106.85, "Cleaner", job.StatusAvailable)
	sitter := jobAt(-6.21, 106.85, "Babysitter", job.StatusAvailable)
	sitter.Description = "cleaning included"

	got := discovery.Apply([]job.Job{cleaner, sitter}, discovery.Filter{Query: "clean"})
	if len(got) != 1 || got[0].ID != cleaner.ID {
		t.Fatalf("job-type-only search should ignore descriptions, got %d jobs", len(got))
	}
}

func TestApply_TextFilterAllFields(t *testing.T) {
	cleaner := jobAt(-6.21, 106.85, "Cleaner", job.StatusAvailable)
	sitter := jobAt(-6.21, 106.85, "Babysitter", job.StatusAvailable)
	sitter.Description = "light CLEANING included"

	got := discovery.Apply([]job.Job{cleaner, sitter}, discovery.Filter{Query: "clean", AllFields: true})
	if len(got) != 2 {
		t.Fatalf("all-fields search should match descriptions case-insensitively, got %d jobs", len(got))
	}
}

func TestApply_RegionFilter(t *testing.T) {
	a := jobAt(-6.21, 106.85, "Cleaner", job.StatusAvailable)
	a.Region = "Jakarta"
	b := jobAt(-6.22, 106.86, "Cleaner", job.StatusAvailable)
	b.Region = "West Java"

	got := discovery.Apply([]job.Job{a, b}, discovery.Filter{Region: "Jakarta"})
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("expected exact region match, got %d jobs", len(got))
	}
}

func TestPaginate_TwelveItemsPageSizeFive(t *testing.T) {
	jobs := make([]job.Job, 0, 12)
	for i := 0; i < 12; i++ {
		jobs = append(jobs, job.Job{ID: uuid.New(), Title: fmt.Sprintf("job %d", i)})
	}

	p1 := discovery.Paginate(jobs, 1)
	if len(p1.Items) != 5 || p1.TotalPages != 3 || p1.TotalItems != 12 {
		t.Fatalf("page 1: items=%d totalPages=%d totalItems=%d", len(p1.Items), p1.TotalPages, p1.TotalItems)
	}

	p3 := discovery.Paginate(jobs, 3)
	if len(p3.Items) != 2 {
		t.Fatalf("page 3 should hold the 2 leftover items, got %d", len(p3.Items))
	}

	// Requesting past the end clamps to the last page.
	p4 := discovery.Paginate(jobs, 4)
	if p4.Number != 3 || len(p4.Items) != 2 {
		t.Fatalf("page 4 should clamp to page 3, got page %d with %d items", p4.Number, len(p4.Items))
	}

	p0 := discovery.Paginate(jobs, 0)
	if p0.Number != 1 {
		t.Fatalf("page 0 should clamp to page 1, got %d", p0.Number)
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := discovery.Paginate(nil, 1)
	if p.Number != 1 || p.TotalPages != 1 || len(p.Items) != 0 {
		t.Fatalf("empty list: page=%d totalPages=%d items=%d", p.Number, p.TotalPages, len(p.Items))
	}
}
