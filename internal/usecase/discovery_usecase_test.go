package usecase

import (
	"context"
	"testing"

	"gigboard/internal/discovery"
	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

func discoveryJob(title, jobType string, status job.Status, loc geo.Coordinate) job.Job {
	return job.Job{
		ID:       uuid.New(),
		Title:    title,
		JobType:  jobType,
		Status:   status,
		Location: loc,
		PostedBy: uuid.New(),
	}
}

func TestDiscovery_Nearby_RadiusAndQuery(t *testing.T) {
	center := geo.Coordinate{Lat: -6.2000, Lng: 106.8000}
	repo := &mockJobRepo{list: []job.Job{
		discoveryJob("Fix fence", "carpentry", job.StatusAvailable, geo.Coordinate{Lat: -6.2050, Lng: 106.8050}),
		discoveryJob("Mow lawn", "gardening", job.StatusAvailable, geo.Coordinate{Lat: -6.2010, Lng: 106.8010}),
		// Bandung, far outside the 10 km radius.
		discoveryJob("Paint wall", "painting", job.StatusAvailable, geo.Coordinate{Lat: -6.9175, Lng: 107.6191}),
	}}
	uc := NewDiscoveryUsecase(repo, nil, nil, nil)

	page, err := uc.Nearby(context.Background(), NearbyInput{Viewer: &center, Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 nearby jobs, got %d", len(page.Items))
	}

	page, err = uc.Nearby(context.Background(), NearbyInput{Viewer: &center, Query: "garden", Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Mow lawn" {
		t.Fatalf("unexpected filtered result: %+v", page.Items)
	}
}

func TestDiscovery_Nearby_NoLocation(t *testing.T) {
	repo := &mockJobRepo{list: []job.Job{
		discoveryJob("Fix fence", "carpentry", job.StatusAvailable, geo.Coordinate{Lat: -6.2, Lng: 106.8}),
		discoveryJob("Paint wall", "painting", job.StatusAvailable, geo.Coordinate{Lat: -6.9175, Lng: 107.6191}),
	}}
	uc := NewDiscoveryUsecase(repo, nil, nil, nil)

	page, err := uc.Nearby(context.Background(), NearbyInput{Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("without a location the distance filter must be off, got %d items", len(page.Items))
	}
}

func TestDiscovery_Search_AllFields(t *testing.T) {
	repo := &mockJobRepo{list: []job.Job{
		{ID: uuid.New(), Title: "Deep clean kitchen", JobType: "cleaning", Status: job.StatusCompleted},
		{ID: uuid.New(), Title: "Walk dog", Description: "daily cleaning of the kennel", JobType: "petcare", Status: job.StatusCompleted},
		{ID: uuid.New(), Title: "Paint wall", JobType: "painting", Status: job.StatusCompleted},
	}}
	uc := NewDiscoveryUsecase(repo, nil, nil, nil)

	page, err := uc.Search(context.Background(), SearchInput{Query: "clean", Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 matches across all fields, got %d", len(page.Items))
	}
}

func TestDiscovery_Search_PageClamping(t *testing.T) {
	list := make([]job.Job, 12)
	for i := range list {
		list[i] = job.Job{ID: uuid.New(), Title: "Job", JobType: "misc", Status: job.StatusCompleted}
	}
	uc := NewDiscoveryUsecase(&mockJobRepo{list: list}, nil, nil, nil)

	page, err := uc.Search(context.Background(), SearchInput{Page: 99})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Number != 3 || page.TotalPages != 3 {
		t.Fatalf("page = %d/%d, want 3/3", page.Number, page.TotalPages)
	}
	if len(page.Items) != 12-2*discovery.PageSize {
		t.Fatalf("last page has %d items", len(page.Items))
	}
}
