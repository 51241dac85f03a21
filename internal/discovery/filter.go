// Package discovery filters and pages job lists for the browse and search
// screens. Everything here is pure computation over a job slice; callers
// fetch the slice and resolve the viewer's region beforehand.
package discovery

import (
	"strings"

	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"
)

// DefaultRadiusKm bounds the nearby-jobs listing.
const DefaultRadiusKm = 10.0

// Filter narrows a job list. Zero-value fields are skipped: a nil Viewer
// disables the distance filter, an empty Region disables the region match,
// an empty Query disables text search.
type Filter struct {
	Status   job.Status
	Viewer   *geo.Coordinate
	RadiusKm float64
	Region   string

	// Query is matched case-insensitively as a substring. With AllFields
	// set it runs against title, description and job type (search screen);
	// otherwise against job type only (nearby listing).
	Query     string
	AllFields bool
}

func Apply(jobs []job.Job, f Filter) []job.Job {
	radius := f.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.Viewer != nil && geo.DistanceKm(*f.Viewer, j.Location) > radius {
			continue
		}
		if f.Region != "" && j.Region != f.Region {
			continue
		}
		if q != "" && !matchesQuery(j, q, f.AllFields) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesQuery(j job.Job, q string, allFields bool) bool {
	if strings.Contains(strings.ToLower(j.JobType), q) {
		return true
	}
	if !allFields {
		return false
	}
	return strings.Contains(strings.ToLower(j.Title), q) ||
		strings.Contains(strings.ToLower(j.Description), q)
}
