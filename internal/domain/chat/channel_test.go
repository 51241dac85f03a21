package chat_test

import (
	"testing"

	"gigboard/internal/domain/chat"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

func TestChannelKey_Commutative(t *testing.T) {
	jobID := uuid.New()
	a := uuid.New()
	b := uuid.New()

	k1 := chat.ChannelKey(jobID, a, b)
	k2 := chat.ChannelKey(jobID, b, a)
	if k1 != k2 {
		t.Fatalf("channel key depends on participant order: %q vs %q", k1, k2)
	}
}

func TestChannelKey_DistinctPerJob(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	k1 := chat.ChannelKey(uuid.New(), a, b)
	k2 := chat.ChannelKey(uuid.New(), a, b)
	if k1 == k2 {
		t.Fatal("different jobs must produce different channel keys")
	}
}

func TestCounterparty(t *testing.T) {
	poster := uuid.New()
	seeker := uuid.New()
	candidate := uuid.New()

	j := job.Job{ID: uuid.New(), PostedBy: poster, Status: job.StatusAvailable}

	// Non-poster always talks to the poster.
	got, ok := chat.Counterparty(j, seeker, nil)
	if !ok || got != poster {
		t.Fatalf("seeker counterparty = %v ok=%v, want poster", got, ok)
	}

	// Poster with an untaken job and no candidate has no counterparty yet.
	if _, ok := chat.Counterparty(j, poster, nil); ok {
		t.Fatal("poster of untaken job should have no counterparty")
	}

	// Poster with a chosen candidate.
	got, ok = chat.Counterparty(j, poster, &candidate)
	if !ok || got != candidate {
		t.Fatalf("poster counterparty = %v ok=%v, want candidate", got, ok)
	}

	// Once taken, the assigned seeker wins over any candidate.
	j.Status = job.StatusTaken
	j.AssignedUser = &seeker
	got, ok = chat.Counterparty(j, poster, &candidate)
	if !ok || got != seeker {
		t.Fatalf("poster counterparty = %v ok=%v, want assigned seeker", got, ok)
	}
}
