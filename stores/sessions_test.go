package stores

import (
	"testing"
	"time"
	"warbler/models"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewMemorySessionStore(time.Hour, 0)

	session := s.Create(0)
	if _, ok := session.CurrentUserID(); ok {
		t.Fatal("new anonymous session should carry no user")
	}

	if !s.SetUser(session.ID, 5) {
		t.Fatal("SetUser on existing session failed")
	}
	got, ok := s.Get(session.ID)
	if !ok || got.UserID != 5 {
		t.Fatalf("expected user 5, got %+v", got)
	}

	s.AddFlash(session.ID, models.Flash{Category: models.FlashDanger, Text: "Access unauthorized."})
	flashes := s.PopFlashes(session.ID)
	if len(flashes) != 1 || flashes[0].Text != "Access unauthorized." {
		t.Fatalf("unexpected flashes %+v", flashes)
	}
	if len(s.PopFlashes(session.ID)) != 0 {
		t.Fatal("flashes should be consumed")
	}

	s.Delete(session.ID)
	if _, ok := s.Get(session.ID); ok {
		t.Fatal("deleted session still present")
	}
	if s.SetUser(session.ID, 1) {
		t.Fatal("SetUser on deleted session should fail")
	}
}

func TestSessionCleanup(t *testing.T) {
	s := NewMemorySessionStore(time.Hour, 10*time.Minute)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	s.now = func() time.Time { return now }

	expired := s.Create(1)
	idle := s.Create(2)
	active := s.Create(3)

	now = start.Add(50 * time.Minute)
	s.Touch(expired.ID)
	s.Touch(active.ID)

	if _, ok := s.Get(idle.ID); ok {
		t.Fatal("idle session should not be returned")
	}
	if removed := s.Cleanup(now); removed != 1 {
		t.Fatalf("expected idle session removed, got %d", removed)
	}

	now = start.Add(61 * time.Minute)
	s.Touch(active.ID)
	if removed := s.Cleanup(now); removed != 2 {
		t.Fatalf("expected both remaining sessions expired, got %d", removed)
	}
	if ids := s.UserIDs(); len(ids) != 0 {
		t.Fatalf("expected no live users, got %v", ids)
	}
}
