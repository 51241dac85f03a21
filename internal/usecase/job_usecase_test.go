package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"
	"gigboard/internal/notify"
	"gigboard/internal/pkg/secrets"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

const testContactKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type mockJobRepo struct {
	job    job.Job
	sealed []byte
	getErr error

	created    *job.Job
	createdEnc []byte

	updates   []job.Update
	updateOK  bool
	updateErr error

	list    []job.Job
	listErr error
}

func (m *mockJobRepo) CreateJob(_ context.Context, j job.Job, contactEnc []byte) error {
	m.created = &j
	m.createdEnc = contactEnc
	return nil
}

func (m *mockJobRepo) GetJob(context.Context, uuid.UUID) (job.Job, []byte, error) {
	if m.getErr != nil {
		return job.Job{}, nil, m.getErr
	}
	return m.job, m.sealed, nil
}

func (m *mockJobRepo) ListJobs(context.Context, job.Status) ([]job.Job, error) {
	return m.list, m.listErr
}

func (m *mockJobRepo) ApplyUpdate(_ context.Context, _ uuid.UUID, u job.Update) (bool, error) {
	m.updates = append(m.updates, u)
	return m.updateOK, m.updateErr
}

type mockTestimonialRepo struct {
	added      []job.Testimonial
	byJob      []job.Testimonial
	highlights []repository.TestimonialHighlight
	err        error
}

func (m *mockTestimonialRepo) AddTestimonial(_ context.Context, t job.Testimonial) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, t)
	return nil
}

func (m *mockTestimonialRepo) ListByJob(context.Context, uuid.UUID) ([]job.Testimonial, error) {
	return m.byJob, m.err
}

func (m *mockTestimonialRepo) ListHighlights(context.Context, int, int) ([]repository.TestimonialHighlight, error) {
	return m.highlights, m.err
}

type mockDispatcher struct {
	events []notify.JobEvent
}

func (m *mockDispatcher) Dispatch(_ context.Context, ev notify.JobEvent) {
	m.events = append(m.events, ev)
}

func testSealer(t *testing.T) *secrets.ContactSealer {
	t.Helper()
	s, err := secrets.NewContactSealer(testContactKey)
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	return s
}

func availableJob(poster uuid.UUID) job.Job {
	return job.Job{
		ID:        uuid.New(),
		Title:     "Garden Cleanup",
		JobType:   "gardening",
		Pay:       150,
		PostedBy:  poster,
		Status:    job.StatusAvailable,
		CreatedAt: time.Now().UTC(),
	}
}

func newJobUsecase(repo *mockJobRepo, tr *mockTestimonialRepo, d *mockDispatcher, sealer *secrets.ContactSealer) *Jobs {
	if tr == nil {
		tr = &mockTestimonialRepo{}
	}
	var dispatcher notify.Dispatcher
	if d != nil {
		dispatcher = d
	}
	return NewJobUsecase(repo, tr, sealer, nil, dispatcher, nil, nil, nil)
}

func TestJobs_PostJob_InvalidInput(t *testing.T) {
	uc := newJobUsecase(&mockJobRepo{}, nil, nil, testSealer(t))

	cases := []PostJobInput{
		{Title: "", JobType: "cleaning", Pay: 10, PayFrequency: "daily", Contact: "x"},
		{Title: "t", JobType: "", Pay: 10, PayFrequency: "daily", Contact: "x"},
		{Title: "t", JobType: "cleaning", Pay: 0, PayFrequency: "daily", Contact: "x"},
		{Title: "t", JobType: "cleaning", Pay: 10, PayFrequency: "hourly", Contact: "x"},
		{Title: "t", JobType: "cleaning", Pay: 10, PayFrequency: "daily", Contact: ""},
	}
	for i, in := range cases {
		if _, err := uc.PostJob(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestJobs_PostJob_SealsContact(t *testing.T) {
	repo := &mockJobRepo{}
	sealer := testSealer(t)
	uc := newJobUsecase(repo, nil, nil, sealer)

	created, err := uc.PostJob(context.Background(), PostJobInput{
		Title:        "Garden Cleanup",
		JobType:      "gardening",
		Pay:          150,
		PayFrequency: "daily",
		Contact:      "+62 812 0000 1111",
		Location:     geo.Coordinate{Lat: -6.2, Lng: 106.8},
		PostedBy:     uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != job.StatusAvailable {
		t.Fatalf("new job status = %s, want available", created.Status)
	}

	if repo.created == nil {
		t.Fatal("job never reached the repository")
	}
	if bytes.Contains(repo.createdEnc, []byte("0000 1111")) {
		t.Fatal("contact stored in cleartext")
	}
	got, err := sealer.Open(repo.createdEnc)
	if err != nil || got != "+62 812 0000 1111" {
		t.Fatalf("unseal = (%q, %v)", got, err)
	}
}

func TestJobs_Apply_NotifiesPoster(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	repo := &mockJobRepo{job: availableJob(poster), updateOK: true}
	d := &mockDispatcher{}
	uc := newJobUsecase(repo, nil, d, testSealer(t))

	updated, err := uc.Apply(context.Background(), repo.job.ID, seeker)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !updated.HasApplicant(seeker) {
		t.Fatal("applicant missing from returned snapshot")
	}

	if len(repo.updates) != 1 || repo.updates[0].AddApplicant == nil {
		t.Fatalf("expected one AddApplicant update, got %+v", repo.updates)
	}
	if len(d.events) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(d.events))
	}
	if d.events[0].Recipient != poster || d.events[0].Event != job.EventNewApplication {
		t.Fatalf("wrong notification: %+v", d.events[0])
	}
	if d.events[0].JobTitle != "Garden Cleanup" {
		t.Fatalf("notification title = %q", d.events[0].JobTitle)
	}
}

func TestJobs_Apply_Reapply_NoOp(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	j := availableJob(poster)
	j.Applicants = []uuid.UUID{seeker}
	repo := &mockJobRepo{job: j}
	d := &mockDispatcher{}
	uc := newJobUsecase(repo, nil, d, testSealer(t))

	if _, err := uc.Apply(context.Background(), j.ID, seeker); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatal("no-op reached the store")
	}
	if len(d.events) != 0 {
		t.Fatal("no-op dispatched a notification")
	}
}

func TestJobs_Withdraw_CarriesStatusGuard(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	j := availableJob(poster)
	j.Applicants = []uuid.UUID{seeker}
	repo := &mockJobRepo{job: j, updateOK: true}
	uc := newJobUsecase(repo, nil, nil, testSealer(t))

	updated, err := uc.Withdraw(context.Background(), j.ID, seeker)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.HasApplicant(seeker) {
		t.Fatal("applicant still in returned snapshot")
	}

	if len(repo.updates) != 1 || repo.updates[0].RemoveApplicant == nil {
		t.Fatalf("expected one RemoveApplicant update, got %+v", repo.updates)
	}
	if repo.updates[0].ExpectStatus != job.StatusAvailable {
		t.Fatalf("withdraw update guard = %q, want %q", repo.updates[0].ExpectStatus, job.StatusAvailable)
	}
}

func TestJobs_Withdraw_LostRace(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	j := availableJob(poster)
	j.Applicants = []uuid.UUID{seeker}
	// Guard fails: the job was taken between the read and the delete.
	repo := &mockJobRepo{job: j, updateOK: false}
	uc := newJobUsecase(repo, nil, nil, testSealer(t))

	if _, err := uc.Withdraw(context.Background(), j.ID, seeker); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestJobs_Take_LostRace(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	j := availableJob(poster)
	j.ApprovedSeekers = []uuid.UUID{seeker}
	// Guard fails: another seeker took the job between read and write.
	repo := &mockJobRepo{job: j, updateOK: false}
	uc := newJobUsecase(repo, nil, nil, testSealer(t))

	if _, err := uc.Take(context.Background(), j.ID, seeker); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestJobs_Take_WithoutApproval(t *testing.T) {
	poster := uuid.New()
	repo := &mockJobRepo{job: availableJob(poster), updateOK: true}
	uc := newJobUsecase(repo, nil, nil, testSealer(t))

	if _, err := uc.Take(context.Background(), repo.job.ID, uuid.New()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestJobs_GetJob_ContactVisibility(t *testing.T) {
	poster := uuid.New()
	approved := uuid.New()
	stranger := uuid.New()

	sealer := testSealer(t)
	sealed, err := sealer.Seal("call 555-0199")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	j := availableJob(poster)
	j.ApprovedSeekers = []uuid.UUID{approved}
	repo := &mockJobRepo{job: j, sealed: sealed}
	uc := newJobUsecase(repo, nil, nil, sealer)

	for _, tc := range []struct {
		name    string
		viewer  uuid.UUID
		contact string
	}{
		{"poster", poster, "call 555-0199"},
		{"approved seeker", approved, "call 555-0199"},
		{"stranger", stranger, ""},
	} {
		got, err := uc.GetJob(context.Background(), j.ID, tc.viewer)
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", tc.name, err)
		}
		if got.Contact != tc.contact {
			t.Errorf("%s: contact = %q, want %q", tc.name, got.Contact, tc.contact)
		}
	}
}

func TestJobs_GetJob_NotFound(t *testing.T) {
	repo := &mockJobRepo{getErr: repository.ErrJobNotFound}
	uc := newJobUsecase(repo, nil, nil, testSealer(t))

	if _, err := uc.GetJob(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobs_AddTestimonial(t *testing.T) {
	poster := uuid.New()
	assignee := uuid.New()
	j := availableJob(poster)
	j.Status = job.StatusCompleted
	j.AssignedUser = &assignee

	tr := &mockTestimonialRepo{}
	uc := newJobUsecase(&mockJobRepo{job: j}, tr, nil, testSealer(t))

	if _, err := uc.AddTestimonial(context.Background(), TestimonialInput{
		JobID: j.ID, Actor: uuid.New(), Rating: 5,
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("stranger: expected ErrPermissionDenied, got %v", err)
	}

	if _, err := uc.AddTestimonial(context.Background(), TestimonialInput{
		JobID: j.ID, Actor: poster, Rating: 6,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rating out of range: expected ErrInvalidInput, got %v", err)
	}

	got, err := uc.AddTestimonial(context.Background(), TestimonialInput{
		JobID: j.ID, Actor: poster, Rating: 5, Comment: "  great work  ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Comment != "great work" {
		t.Fatalf("comment = %q", got.Comment)
	}
	if len(tr.added) != 1 {
		t.Fatalf("expected 1 stored testimonial, got %d", len(tr.added))
	}
}

func TestJobs_AddTestimonial_BeforeCompletion(t *testing.T) {
	poster := uuid.New()
	repo := &mockJobRepo{job: availableJob(poster)}
	uc := newJobUsecase(repo, nil, nil, testSealer(t))

	if _, err := uc.AddTestimonial(context.Background(), TestimonialInput{
		JobID: repo.job.ID, Actor: poster, Rating: 4,
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}
