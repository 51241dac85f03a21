package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"gigboard/internal/discovery"
	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"
	"gigboard/internal/infrastructure/cache"
	"gigboard/internal/infrastructure/geocode"
	"gigboard/internal/repository"
)

type NearbyInput struct {
	Viewer *geo.Coordinate
	Query  string
	Page   int
}

type SearchInput struct {
	Query string
	Page  int
}

type DiscoveryUsecase interface {
	// Nearby lists available jobs around the viewer's location.
	Nearby(ctx context.Context, in NearbyInput) (discovery.Page, error)
	// Search pages through completed jobs matched across all text fields.
	Search(ctx context.Context, in SearchInput) (discovery.Page, error)
}

type Discovery struct {
	jobs     repository.JobRepository
	geocoder *geocode.Client
	cache    *cache.Redis
	logger   *log.Logger
}

func NewDiscoveryUsecase(jobs repository.JobRepository, geocoder *geocode.Client, c *cache.Redis, logger *log.Logger) *Discovery {
	return &Discovery{jobs: jobs, geocoder: geocoder, cache: c, logger: logger}
}

func (u *Discovery) Nearby(ctx context.Context, in NearbyInput) (discovery.Page, error) {
	jobs, err := u.jobs.ListJobs(ctx, job.StatusAvailable)
	if err != nil {
		return discovery.Page{}, ErrInternal
	}

	f := discovery.Filter{
		Status: job.StatusAvailable,
		Viewer: in.Viewer,
		Query:  in.Query,
	}
	if in.Viewer != nil {
		f.Region = u.viewerRegion(ctx, *in.Viewer)
	}

	return discovery.Paginate(discovery.Apply(jobs, f), in.Page), nil
}

// viewerRegion resolves the viewer's administrative region for the coarse
// region filter. A slow or absent geocoder just disables that filter; the
// distance filter still applies.
func (u *Discovery) viewerRegion(ctx context.Context, coord geo.Coordinate) string {
	if !u.geocoder.Enabled() {
		return ""
	}
	res, err := u.geocoder.Reverse(ctx, coord)
	if err != nil {
		if errors.Is(err, geocode.ErrTimeout) && u.logger != nil {
			u.logger.Printf("[Discovery] geocode timeout, skipping region filter")
		}
		return ""
	}
	return res.Region
}

func (u *Discovery) Search(ctx context.Context, in SearchInput) (discovery.Page, error) {
	jobs, err := u.completedJobs(ctx)
	if err != nil {
		return discovery.Page{}, ErrInternal
	}

	filtered := discovery.Apply(jobs, discovery.Filter{
		Status:    job.StatusCompleted,
		Query:     in.Query,
		AllFields: true,
	})
	return discovery.Paginate(filtered, in.Page), nil
}

// completedJobs serves the history search from cache when possible. The
// completed list only grows on Complete, which invalidates this key.
func (u *Discovery) completedJobs(ctx context.Context) ([]job.Job, error) {
	var cached []job.Job
	if hit, err := u.cache.GetJSON(ctx, completedListCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	jobs, err := u.jobs.ListJobs(ctx, job.StatusCompleted)
	if err != nil {
		return nil, err
	}
	if err := u.cache.SetJSON(ctx, completedListCacheKey, jobs, 10*time.Minute); err != nil && u.logger != nil {
		u.logger.Printf("[Discovery] cache write failed: %v", err)
	}
	return jobs, nil
}
