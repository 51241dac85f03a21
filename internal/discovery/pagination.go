package discovery

import "gigboard/internal/domain/job"

// PageSize is the fixed number of jobs per discovery page.
const PageSize = 5

// Page is one slice of a filtered result set. Number is 1-based and always
// within [1, TotalPages].
type Page struct {
	Items      []job.Job
	Number     int
	TotalPages int
	TotalItems int
}

// Paginate cuts jobs into fixed-size pages and returns the requested one.
// Out-of-range page numbers clamp to the nearest valid page; an empty list
// yields a single empty page 1.
func Paginate(jobs []job.Job, page int) Page {
	total := len(jobs)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      jobs[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}
