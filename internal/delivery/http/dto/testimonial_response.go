package dto

import (
	"time"

	"gigboard/internal/domain/job"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type TestimonialResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`

	JobTitle string `json:"jobTitle,omitempty"`
}

func NewTestimonialResponse(t job.Testimonial) TestimonialResponse {
	return TestimonialResponse{
		ID:        t.ID,
		JobID:     t.JobID,
		UserID:    t.UserID,
		Rating:    t.Rating,
		Comment:   t.Comment,
		CreatedAt: t.CreatedAt,
	}
}

func NewTestimonialResponses(ts []job.Testimonial) []TestimonialResponse {
	out := make([]TestimonialResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTestimonialResponse(t))
	}
	return out
}

func NewHighlightResponses(hs []repository.TestimonialHighlight) []TestimonialResponse {
	out := make([]TestimonialResponse, 0, len(hs))
	for _, h := range hs {
		res := NewTestimonialResponse(h.Testimonial)
		res.JobTitle = h.JobTitle
		out = append(out, res)
	}
	return out
}
