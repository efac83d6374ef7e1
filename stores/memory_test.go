package stores

import (
	"context"
	"errors"
	"testing"
	"time"
	"warbler/models"
)

func TestMemoryUserStoreConflicts(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	u, err := s.Create(ctx, models.User{Username: "testuser", Email: "test@test.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected id 1, got %d", u.ID)
	}
	if _, err := s.Create(ctx, models.User{Username: "testuser", Email: "other@test.com"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for username, got %v", err)
	}
	if _, err := s.Create(ctx, models.User{Username: "other", Email: "test@test.com"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for email, got %v", err)
	}

	other, _ := s.Create(ctx, models.User{Username: "other", Email: "o@test.com"})
	other.Username = "testuser"
	if err := s.Update(ctx, other); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on update, got %v", err)
	}
	if err := s.Update(ctx, models.User{ID: 99}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryMessageStore(t *testing.T) {
	users := NewMemoryUserStore()
	users.Add(models.User{ID: 1, Username: "testuser"})
	users.Add(models.User{ID: 2, Username: "other"})
	s := NewMemoryMessageStore(users)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Add(models.Message{ID: 12, Text: "old", UserID: 1, Timestamp: base})
	s.Add(models.Message{ID: 13, Text: "new", UserID: 2, Timestamp: base.Add(time.Hour)})

	created, err := s.Create(ctx, "Hello", 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 14 || created.Username != "testuser" {
		t.Fatalf("unexpected created message %+v", created)
	}

	timeline, _ := s.Timeline(ctx, []int{1, 2}, 2)
	if len(timeline) != 2 || timeline[0].ID != 14 || timeline[1].ID != 13 {
		t.Fatalf("unexpected timeline order %+v", timeline)
	}

	if n, _ := s.CountByUser(ctx, 1); n != 2 {
		t.Fatalf("expected 2 messages for user 1, got %d", n)
	}

	if err := s.Delete(ctx, 12); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, 12); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, 12); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryFollowStore(t *testing.T) {
	users := NewMemoryUserStore()
	users.Add(models.User{ID: 1, Username: "a"})
	users.Add(models.User{ID: 2, Username: "b"})
	s := NewMemoryFollowStore(users)
	ctx := context.Background()

	s.Follow(ctx, 1, 2)
	if ok, _ := s.IsFollowing(ctx, 1, 2); !ok {
		t.Fatal("expected 1 to follow 2")
	}
	if ok, _ := s.IsFollowing(ctx, 2, 1); ok {
		t.Fatal("follows are directed")
	}

	following, _ := s.Following(ctx, 1)
	followers, _ := s.Followers(ctx, 2)
	if len(following) != 1 || following[0].ID != 2 || len(followers) != 1 || followers[0].ID != 1 {
		t.Fatalf("unexpected lists: following=%v followers=%v", following, followers)
	}

	s.Unfollow(ctx, 1, 2)
	if ok, _ := s.IsFollowing(ctx, 1, 2); ok {
		t.Fatal("expected unfollow")
	}
}
