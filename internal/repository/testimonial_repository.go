package repository

import (
	"context"

	"gigboard/internal/database"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

type TestimonialRepository interface {
	AddTestimonial(ctx context.Context, t job.Testimonial) error
	// ListByJob returns a job's testimonials in append order.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Testimonial, error)
	// ListHighlights returns the newest testimonials with rating >= minRating,
	// joined with their job titles.
	ListHighlights(ctx context.Context, minRating, limit int) ([]TestimonialHighlight, error)
}

type TestimonialHighlight struct {
	Testimonial job.Testimonial
	JobTitle    string
}

type PostgresTestimonialRepository struct {
	db database.DB
}

func NewPostgresTestimonialRepository(db database.DB) *PostgresTestimonialRepository {
	return &PostgresTestimonialRepository{db: db}
}

func (r *PostgresTestimonialRepository) AddTestimonial(ctx context.Context, t job.Testimonial) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO testimonials (id, job_id, user_id, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.JobID, t.UserID, t.Rating, t.Comment, t.CreatedAt,
	)
	return err
}

func (r *PostgresTestimonialRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Testimonial, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, user_id, rating, comment, created_at
		 FROM testimonials WHERE job_id = $1 ORDER BY created_at`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Testimonial, 0)
	for rows.Next() {
		var t job.Testimonial
		if err := rows.Scan(&t.ID, &t.JobID, &t.UserID, &t.Rating, &t.Comment, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTestimonialRepository) ListHighlights(ctx context.Context, minRating, limit int) ([]TestimonialHighlight, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.job_id, t.user_id, t.rating, t.comment, t.created_at, j.title
		 FROM testimonials t
		 JOIN jobs j ON j.id = t.job_id
		 WHERE t.rating >= $1
		 ORDER BY t.created_at DESC
		 LIMIT $2`,
		minRating, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TestimonialHighlight, 0)
	for rows.Next() {
		var h TestimonialHighlight
		if err := rows.Scan(
			&h.Testimonial.ID, &h.Testimonial.JobID, &h.Testimonial.UserID,
			&h.Testimonial.Rating, &h.Testimonial.Comment, &h.Testimonial.CreatedAt,
			&h.JobTitle,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
