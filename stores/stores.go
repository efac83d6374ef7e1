// Package stores defines the persistence collaborators used by the HTTP
// layer and provides Postgres and in-memory implementations.
package stores

import (
	"context"
	"errors"
	"time"
	"warbler/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Get(ctx context.Context, id int) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Update(ctx context.Context, user models.User) error
	Search(ctx context.Context, query string) ([]models.User, error)
}

type MessageStore interface {
	Get(ctx context.Context, id int) (models.Message, error)
	Create(ctx context.Context, text string, ownerID int) (models.Message, error)
	Delete(ctx context.Context, id int) error
	ListByUser(ctx context.Context, userID, limit int) ([]models.Message, error)
	CountByUser(ctx context.Context, userID int) (int, error)
	Timeline(ctx context.Context, userIDs []int, limit int) ([]models.Message, error)
}

type FollowStore interface {
	Follow(ctx context.Context, followerID, followedID int) error
	Unfollow(ctx context.Context, followerID, followedID int) error
	IsFollowing(ctx context.Context, followerID, followedID int) (bool, error)
	Following(ctx context.Context, userID int) ([]models.User, error)
	Followers(ctx context.Context, userID int) ([]models.User, error)
}

// SessionStore keeps server-side sessions keyed by the cookie value.
type SessionStore interface {
	Create(userID int) models.Session
	Get(id string) (models.Session, bool)
	SetUser(id string, userID int) bool
	AddFlash(id string, flash models.Flash) bool
	PopFlashes(id string) []models.Flash
	Touch(id string)
	Delete(id string)
	Cleanup(now time.Time) int
	UserIDs() []int
}

var (
	_ UserStore    = (*PostgresUserStore)(nil)
	_ UserStore    = (*MemoryUserStore)(nil)
	_ MessageStore = (*PostgresMessageStore)(nil)
	_ MessageStore = (*MemoryMessageStore)(nil)
	_ FollowStore  = (*PostgresFollowStore)(nil)
	_ FollowStore  = (*MemoryFollowStore)(nil)
	_ SessionStore = (*MemorySessionStore)(nil)
)
