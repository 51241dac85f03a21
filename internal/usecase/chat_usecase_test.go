package usecase

import (
	"context"
	"errors"
	"testing"

	"gigboard/internal/domain/chat"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

type mockChatRepo struct {
	appended []chat.Message
	messages []chat.Message
	err      error
}

func (m *mockChatRepo) AppendMessage(_ context.Context, msg chat.Message) error {
	if m.err != nil {
		return m.err
	}
	m.appended = append(m.appended, msg)
	return nil
}

func (m *mockChatRepo) ListMessages(context.Context, string, int) ([]chat.Message, error) {
	return m.messages, m.err
}

func TestChats_SendMessage_SeekerToPoster(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	jobs := &mockJobRepo{job: availableJob(poster)}
	msgs := &mockChatRepo{}
	d := &mockDispatcher{}
	uc := NewChatUsecase(jobs, msgs, d, nil, nil)

	m, err := uc.SendMessage(context.Background(), SendMessageInput{
		JobID:       jobs.job.ID,
		Viewer:      seeker,
		Other:       poster,
		SenderEmail: "seeker@example.com",
		Body:        "  is this still open?  ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Body != "is this still open?" {
		t.Fatalf("body = %q", m.Body)
	}
	if want := chat.ChannelKey(jobs.job.ID, seeker, poster); m.ChannelKey != want {
		t.Fatalf("channel key = %q, want %q", m.ChannelKey, want)
	}
	if len(msgs.appended) != 1 {
		t.Fatalf("expected 1 appended message, got %d", len(msgs.appended))
	}

	if len(d.events) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(d.events))
	}
	if d.events[0].Recipient != poster || d.events[0].Event != job.EventNewMessage {
		t.Fatalf("wrong notification: %+v", d.events[0])
	}
}

func TestChats_SendMessage_PosterToCandidate(t *testing.T) {
	poster := uuid.New()
	candidate := uuid.New()
	jobs := &mockJobRepo{job: availableJob(poster)}
	uc := NewChatUsecase(jobs, &mockChatRepo{}, nil, nil, nil)

	m, err := uc.SendMessage(context.Background(), SendMessageInput{
		JobID:  jobs.job.ID,
		Viewer: poster,
		Other:  candidate,
		Body:   "when can you start?",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := chat.ChannelKey(jobs.job.ID, poster, candidate); m.ChannelKey != want {
		t.Fatalf("channel key = %q, want %q", m.ChannelKey, want)
	}
}

func TestChats_SendMessage_PosterChatsAssigneeOnceTaken(t *testing.T) {
	poster := uuid.New()
	assignee := uuid.New()
	other := uuid.New()

	j := availableJob(poster)
	j.Status = job.StatusTaken
	j.AssignedUser = &assignee
	jobs := &mockJobRepo{job: j}
	uc := NewChatUsecase(jobs, &mockChatRepo{}, nil, nil, nil)

	// Once taken the resolver pins the poster to the assignee; naming
	// anyone else must not open a channel.
	if _, err := uc.SendMessage(context.Background(), SendMessageInput{
		JobID: j.ID, Viewer: poster, Other: other, Body: "hi",
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	if _, err := uc.SendMessage(context.Background(), SendMessageInput{
		JobID: j.ID, Viewer: poster, Other: assignee, Body: "hi",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestChats_SendMessage_NonPosterMustNamePoster(t *testing.T) {
	poster := uuid.New()
	jobs := &mockJobRepo{job: availableJob(poster)}
	uc := NewChatUsecase(jobs, &mockChatRepo{}, nil, nil, nil)

	if _, err := uc.SendMessage(context.Background(), SendMessageInput{
		JobID: jobs.job.ID, Viewer: uuid.New(), Other: uuid.New(), Body: "hi",
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestChats_SendMessage_EmptyBody(t *testing.T) {
	jobs := &mockJobRepo{job: availableJob(uuid.New())}
	uc := NewChatUsecase(jobs, &mockChatRepo{}, nil, nil, nil)

	if _, err := uc.SendMessage(context.Background(), SendMessageInput{
		JobID: jobs.job.ID, Viewer: uuid.New(), Other: jobs.job.PostedBy, Body: "   ",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChats_ListMessages(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	jobs := &mockJobRepo{job: availableJob(poster)}
	msgs := &mockChatRepo{messages: []chat.Message{
		{SenderID: seeker, Body: "hello"},
		{SenderID: poster, Body: "hi there"},
	}}
	uc := NewChatUsecase(jobs, msgs, nil, nil, nil)

	out, err := uc.ListMessages(context.Background(), jobs.job.ID, seeker, poster)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 || out[0].Body != "hello" {
		t.Fatalf("unexpected messages: %+v", out)
	}
}
