// Package auth decides whether the caller behind a session may mutate
// messages, and hashes account passwords.
package auth

import (
	"context"
	"log"
	"warbler/models"
)

type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// MessageLookup is the part of a message store the guard reads.
type MessageLookup interface {
	Get(ctx context.Context, id int) (models.Message, error)
}

// RequireAuthenticated returns the caller's user id when the session
// belongs to a logged-in user.
func RequireAuthenticated(session *models.Session) (int, Decision) {
	userID, ok := session.CurrentUserID()
	if !ok {
		return 0, Denied
	}
	return userID, Allowed
}

// RequireOwnership allows the call only when the session user owns the
// message. A missing message or a failed lookup is Denied, like a message
// owned by someone else.
func RequireOwnership(ctx context.Context, session *models.Session, messageID int, messages MessageLookup) Decision {
	userID, decision := RequireAuthenticated(session)
	if decision == Denied {
		return Denied
	}
	if messages == nil {
		return Denied
	}

	msg, err := messages.Get(ctx, messageID)
	if err != nil {
		log.Printf("Ownership lookup for message %d by user %d failed: %v", messageID, userID, err)
		return Denied
	}

	if msg.UserID != userID {
		return Denied
	}
	return Allowed
}
