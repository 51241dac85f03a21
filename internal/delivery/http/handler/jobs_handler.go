package handler

import (
	"context"
	"strconv"
	"strings"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	jobs      usecase.JobUsecase
	discovery usecase.DiscoveryUsecase
}

type postJobRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	JobType      string  `json:"jobType"`
	Pay          float64 `json:"pay"`
	PayFrequency string  `json:"payFrequency"`
	Contact      string  `json:"contact"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

type approveRequest struct {
	ApplicantID uuid.UUID `json:"applicantId"`
}

type testimonialRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func NewJobsHandler(jobs usecase.JobUsecase, discovery usecase.DiscoveryUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, discovery: discovery}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Post)
	r.Get("/", h.Nearby)
	r.Get("/search", h.Search)
	r.Get("/:id", h.Get)

	r.Post("/:id/apply", h.Apply)
	r.Delete("/:id/apply", h.Withdraw)
	r.Post("/:id/approve", h.Approve)
	r.Post("/:id/take", h.Take)
	r.Post("/:id/complete", h.Complete)

	r.Post("/:id/testimonials", h.AddTestimonial)
	r.Get("/:id/testimonials", h.ListTestimonials)
}

func (h *JobsHandler) Post(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.jobs.PostJob(c.Context(), usecase.PostJobInput{
		Title:        req.Title,
		Description:  req.Description,
		JobType:      req.JobType,
		Pay:          req.Pay,
		PayFrequency: req.PayFrequency,
		Contact:      req.Contact,
		Location:     geo.Coordinate{Lat: req.Lat, Lng: req.Lng},
		PostedBy:     viewer,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "job posted", dto.NewJobResponse(created, viewer))
}

// Nearby lists available jobs around the caller's reported location,
// optionally narrowed by a jobType query.
func (h *JobsHandler) Nearby(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}

	in := usecase.NearbyInput{
		Query: strings.TrimSpace(c.Query("q")),
		Page:  queryInt(c, "page", 1),
	}
	if coord, ok := queryCoordinate(c); ok {
		in.Viewer = &coord
	}

	page, err := h.discovery.Nearby(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobPageResponse(page, viewer))
}

// Search pages through completed jobs, matching the query against title,
// description and job type.
func (h *JobsHandler) Search(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}

	page, err := h.discovery.Search(c.Context(), usecase.SearchInput{
		Query: strings.TrimSpace(c.Query("q")),
		Page:  queryInt(c, "page", 1),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobPageResponse(page, viewer))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	j, err := h.jobs.GetJob(c.Context(), id, viewer)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j, viewer))
}

func (h *JobsHandler) Apply(c fiber.Ctx) error {
	return h.lifecycle(c, h.jobs.Apply)
}

func (h *JobsHandler) Withdraw(c fiber.Ctx) error {
	return h.lifecycle(c, h.jobs.Withdraw)
}

func (h *JobsHandler) Take(c fiber.Ctx) error {
	return h.lifecycle(c, h.jobs.Take)
}

func (h *JobsHandler) Complete(c fiber.Ctx) error {
	return h.lifecycle(c, h.jobs.Complete)
}

func (h *JobsHandler) Approve(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req approveRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.Approve(c.Context(), id, viewer, req.ApplicantID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j, viewer))
}

func (h *JobsHandler) lifecycle(c fiber.Ctx, action func(ctx context.Context, jobID, actor uuid.UUID) (job.Job, error)) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	j, err := action(c.Context(), id, viewer)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j, viewer))
}

func (h *JobsHandler) AddTestimonial(c fiber.Ctx) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req testimonialRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.jobs.AddTestimonial(c.Context(), usecase.TestimonialInput{
		JobID:   id,
		Actor:   viewer,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "testimonial added", dto.NewTestimonialResponse(t))
}

func (h *JobsHandler) ListTestimonials(c fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	ts, err := h.jobs.ListTestimonials(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTestimonialResponses(ts))
}

// Highlights serves the dashboard strip of top-rated recent testimonials.
func (h *JobsHandler) Highlights(c fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	hs, err := h.jobs.Highlights(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHighlightResponses(hs))
}

func queryInt(c fiber.Ctx, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func queryCoordinate(c fiber.Ctx) (geo.Coordinate, bool) {
	latRaw := strings.TrimSpace(c.Query("lat"))
	lngRaw := strings.TrimSpace(c.Query("lng"))
	if latRaw == "" || lngRaw == "" {
		return geo.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: lat, Lng: lng}, true
}
