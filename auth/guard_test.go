package auth

import (
	"context"
	"errors"
	"testing"
	"warbler/models"
)

type fakeMessages struct {
	messages map[int]models.Message
	err      error
}

func (f fakeMessages) Get(_ context.Context, id int) (models.Message, error) {
	if f.err != nil {
		return models.Message{}, f.err
	}
	m, ok := f.messages[id]
	if !ok {
		return models.Message{}, errors.New("not found")
	}
	return m, nil
}

func TestRequireAuthenticatedDeniesAnonymous(t *testing.T) {
	sessions := []*models.Session{
		nil,
		{ID: "anon"},
		{ID: "negative", UserID: -4},
	}
	for _, s := range sessions {
		if id, d := RequireAuthenticated(s); d != Denied || id != 0 {
			t.Fatalf("expected denied for %+v, got %v (%d)", s, d, id)
		}
	}
}

func TestRequireAuthenticatedReturnsUser(t *testing.T) {
	id, d := RequireAuthenticated(&models.Session{ID: "s", UserID: 7})
	if d != Allowed || id != 7 {
		t.Fatalf("expected allowed user 7, got %v (%d)", d, id)
	}
}

func TestRequireOwnership(t *testing.T) {
	store := fakeMessages{messages: map[int]models.Message{
		12:    {ID: 12, UserID: 1, Text: "mine"},
		12345: {ID: 12345, UserID: 1, Text: "you cant delete me"},
	}}
	ctx := context.Background()

	tests := []struct {
		name      string
		session   *models.Session
		messageID int
		store     MessageLookup
		want      Decision
	}{
		{"owner", &models.Session{UserID: 1}, 12, store, Allowed},
		{"other user", &models.Session{UserID: 1111111}, 12345, store, Denied},
		{"anonymous", &models.Session{}, 12, store, Denied},
		{"missing message", &models.Session{UserID: 1}, 12435, store, Denied},
		{"store failure", &models.Session{UserID: 1}, 12, fakeMessages{err: errors.New("db down")}, Denied},
		{"no store", &models.Session{UserID: 1}, 12, nil, Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequireOwnership(ctx, tt.session, tt.messageID, tt.store); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("testuser", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "testuser" {
		t.Fatal("password stored in clear")
	}
	if err := CheckPassword(hash, "testuser"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := CheckPassword("", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty hash, got %v", err)
	}
}
