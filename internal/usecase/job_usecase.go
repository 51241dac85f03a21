package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"
	"gigboard/internal/infrastructure/cache"
	"gigboard/internal/infrastructure/geocode"
	"gigboard/internal/notify"
	"gigboard/internal/pkg/secrets"
	"gigboard/internal/repository"
	"gigboard/internal/ws"

	"github.com/google/uuid"
)

const completedListCacheKey = "jobs:list:completed"

type PostJobInput struct {
	Title        string
	Description  string
	JobType      string
	Pay          float64
	PayFrequency string
	Contact      string
	Location     geo.Coordinate
	PostedBy     uuid.UUID
}

type TestimonialInput struct {
	JobID   uuid.UUID
	Actor   uuid.UUID
	Rating  int
	Comment string
}

type JobUsecase interface {
	PostJob(ctx context.Context, in PostJobInput) (job.Job, error)
	GetJob(ctx context.Context, id, viewer uuid.UUID) (job.Job, error)

	Apply(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error)
	Withdraw(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error)
	Approve(ctx context.Context, jobID, actor, applicant uuid.UUID) (job.Job, error)
	Take(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error)
	Complete(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error)

	AddTestimonial(ctx context.Context, in TestimonialInput) (job.Testimonial, error)
	ListTestimonials(ctx context.Context, jobID uuid.UUID) ([]job.Testimonial, error)
	Highlights(ctx context.Context) ([]repository.TestimonialHighlight, error)
}

// Jobs runs lifecycle actions: load the job, let the engine decide, apply
// the guarded store update, then fire the side effects (notification
// enqueue, websocket push). The store update is the only step that can
// reject a decision, which happens when a concurrent actor won the race.
type Jobs struct {
	jobs         repository.JobRepository
	testimonials repository.TestimonialRepository
	sealer       *secrets.ContactSealer
	geocoder     *geocode.Client
	dispatcher   notify.Dispatcher
	hub          *ws.Hub
	cache        *cache.Redis
	logger       *log.Logger
}

func NewJobUsecase(
	jobs repository.JobRepository,
	testimonials repository.TestimonialRepository,
	sealer *secrets.ContactSealer,
	geocoder *geocode.Client,
	dispatcher notify.Dispatcher,
	hub *ws.Hub,
	c *cache.Redis,
	logger *log.Logger,
) *Jobs {
	return &Jobs{
		jobs:         jobs,
		testimonials: testimonials,
		sealer:       sealer,
		geocoder:     geocoder,
		dispatcher:   dispatcher,
		hub:          hub,
		cache:        c,
		logger:       logger,
	}
}

func (u *Jobs) PostJob(ctx context.Context, in PostJobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	jobType := strings.TrimSpace(in.JobType)
	contact := strings.TrimSpace(in.Contact)
	if title == "" || jobType == "" || contact == "" || in.Pay <= 0 {
		return job.Job{}, ErrInvalidInput
	}
	freq, err := job.ParsePayFrequency(in.PayFrequency)
	if err != nil {
		return job.Job{}, ErrInvalidInput
	}

	j := job.Job{
		ID:           uuid.New(),
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		JobType:      jobType,
		Pay:          in.Pay,
		PayFrequency: freq,
		Contact:      contact,
		Location:     in.Location,
		PostedBy:     in.PostedBy,
		Status:       job.StatusAvailable,
		CreatedAt:    time.Now().UTC(),
	}
	j.Region, j.Address = u.resolvePlace(ctx, in.Location)

	sealed, err := u.sealer.Seal(contact)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	if err := u.jobs.CreateJob(ctx, j, sealed); err != nil {
		u.logf("[Jobs] create failed | job=%s err=%v", j.ID, err)
		return job.Job{}, ErrInternal
	}
	return j, nil
}

// resolvePlace derives the region and display address at post time, since
// job coordinates never change. Geocoder outages and timeouts degrade to a
// coordinate-only address.
func (u *Jobs) resolvePlace(ctx context.Context, loc geo.Coordinate) (region, address string) {
	if !u.geocoder.Enabled() {
		return "", geocode.FormatAddress(geocode.Result{}, loc)
	}
	res, err := u.geocoder.Reverse(ctx, loc)
	if err != nil {
		u.logf("[Jobs] reverse geocode failed | err=%v", err)
		return "", geocode.FormatAddress(geocode.Result{}, loc)
	}
	return res.Region, geocode.FormatAddress(res, loc)
}

func (u *Jobs) GetJob(ctx context.Context, id, viewer uuid.UUID) (job.Job, error) {
	j, sealed, err := u.jobs.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	if canSeeContact(j, viewer) && len(sealed) > 0 {
		contact, err := u.sealer.Open(sealed)
		if err != nil {
			u.logf("[Jobs] contact unseal failed | job=%s err=%v", j.ID, err)
		} else {
			j.Contact = contact
		}
	}
	return j, nil
}

// canSeeContact limits the decrypted contact detail to the poster and the
// seekers the poster has admitted.
func canSeeContact(j job.Job, viewer uuid.UUID) bool {
	return viewer == j.PostedBy || j.IsApproved(viewer) || j.IsAssignedTo(viewer)
}

func (u *Jobs) Apply(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error) {
	return u.transition(ctx, jobID, actor, func(j job.Job) (job.Decision, error) {
		return job.Apply(j, actor)
	})
}

func (u *Jobs) Withdraw(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error) {
	return u.transition(ctx, jobID, actor, func(j job.Job) (job.Decision, error) {
		return job.Withdraw(j, actor)
	})
}

func (u *Jobs) Approve(ctx context.Context, jobID, actor, applicant uuid.UUID) (job.Job, error) {
	if applicant == uuid.Nil {
		return job.Job{}, ErrInvalidInput
	}
	return u.transition(ctx, jobID, actor, func(j job.Job) (job.Decision, error) {
		return job.Approve(j, actor, applicant)
	})
}

func (u *Jobs) Take(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error) {
	return u.transition(ctx, jobID, actor, func(j job.Job) (job.Decision, error) {
		return job.Take(j, actor)
	})
}

func (u *Jobs) Complete(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error) {
	j, err := u.transition(ctx, jobID, actor, func(j job.Job) (job.Decision, error) {
		return job.Complete(j, actor)
	})
	if err == nil {
		// The completed list feeds the history search; drop the stale copy.
		_ = u.cache.Delete(ctx, completedListCacheKey)
	}
	return j, err
}

func (u *Jobs) transition(ctx context.Context, jobID, actor uuid.UUID, decide func(job.Job) (job.Decision, error)) (job.Job, error) {
	j, _, err := u.jobs.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	d, err := decide(j)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrPermissionDenied):
			return job.Job{}, ErrPermissionDenied
		case errors.Is(err, job.ErrInvalidState):
			return job.Job{}, ErrInvalidState
		}
		return job.Job{}, ErrInternal
	}
	if d.NoOp {
		return d.Job, nil
	}

	ok, err := u.jobs.ApplyUpdate(ctx, jobID, d.Update)
	if err != nil {
		u.logf("[Jobs] update failed | job=%s err=%v", jobID, err)
		return job.Job{}, ErrInternal
	}
	if !ok {
		// Guard failed: the job left the expected status between the read
		// and the write. Same answer as arriving late in the first place.
		return job.Job{}, ErrInvalidState
	}

	if d.Notification != nil && u.dispatcher != nil {
		u.dispatcher.Dispatch(ctx, notify.JobEvent{
			Recipient: d.Notification.Recipient,
			Event:     d.Notification.Event,
			JobID:     j.ID,
			JobTitle:  j.Title,
			Sender:    actor,
		})
	}
	u.publishJobUpdate(d.Job, actor)

	return d.Job, nil
}

// publishJobUpdate pushes the new snapshot to everyone with a stake in the
// job: poster, assignee and actor.
func (u *Jobs) publishJobUpdate(j job.Job, actor uuid.UUID) {
	payload := map[string]any{
		"jobId":  j.ID,
		"status": string(j.Status),
	}
	recipients := []uuid.UUID{j.PostedBy, actor}
	if j.AssignedUser != nil {
		recipients = append(recipients, *j.AssignedUser)
	}
	seen := make(map[uuid.UUID]bool, len(recipients))
	for _, r := range recipients {
		if seen[r] {
			continue
		}
		seen[r] = true
		u.hub.PublishEvent(r, "job_updated", payload)
	}
}

func (u *Jobs) AddTestimonial(ctx context.Context, in TestimonialInput) (job.Testimonial, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return job.Testimonial{}, ErrInvalidInput
	}

	j, _, err := u.jobs.GetJob(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Testimonial{}, ErrNotFound
		}
		return job.Testimonial{}, ErrInternal
	}
	if j.Status != job.StatusCompleted {
		return job.Testimonial{}, ErrInvalidState
	}
	if in.Actor != j.PostedBy && !j.IsAssignedTo(in.Actor) {
		return job.Testimonial{}, ErrPermissionDenied
	}

	t := job.Testimonial{
		ID:        uuid.New(),
		JobID:     in.JobID,
		UserID:    in.Actor,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: time.Now().UTC(),
	}
	if err := u.testimonials.AddTestimonial(ctx, t); err != nil {
		u.logf("[Jobs] add testimonial failed | job=%s err=%v", in.JobID, err)
		return job.Testimonial{}, ErrInternal
	}
	return t, nil
}

func (u *Jobs) ListTestimonials(ctx context.Context, jobID uuid.UUID) ([]job.Testimonial, error) {
	out, err := u.testimonials.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Highlights returns the top recent testimonials for the dashboard strip.
func (u *Jobs) Highlights(ctx context.Context) ([]repository.TestimonialHighlight, error) {
	out, err := u.testimonials.ListHighlights(ctx, 4, 3)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Jobs) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
