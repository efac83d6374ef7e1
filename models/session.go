package models

import "time"

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

type Flash struct {
	Category string
	Text     string
}

// Session ties a browser cookie to an optional logged-in user.
// UserID is zero for anonymous visitors.
type Session struct {
	ID           string
	UserID       int
	Flashes      []Flash
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

// CurrentUserID reports the authenticated user id carried by the session.
func (s *Session) CurrentUserID() (int, bool) {
	if s == nil || s.UserID <= 0 {
		return 0, false
	}
	return s.UserID, true
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
