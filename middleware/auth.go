package middleware

import (
	"log"
	"net/http"
	"warbler/auth"
	"warbler/models"
	"warbler/stores"

	"github.com/gin-gonic/gin"
)

const UnauthorizedNotice = "Access unauthorized."

// SessionMiddleware attaches a session to every request, creating an
// anonymous one when the cookie is missing or stale. A session whose user
// no longer exists is downgraded to anonymous.
func SessionMiddleware(sessions stores.SessionStore, users stores.UserStore, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var session models.Session
		found := false

		if cookie, err := c.Cookie(models.SessionCookie); err == nil {
			session, found = sessions.Get(cookie)
		}

		if !found {
			session = sessions.Create(0)
			SetSessionCookie(c, session, secure)
		} else {
			sessions.Touch(session.ID)
		}

		if userID, ok := session.CurrentUserID(); ok {
			user, err := users.Get(c.Request.Context(), userID)
			if err != nil {
				log.Printf("Session %s references unknown user %d: %v", session.ID[:8], userID, err)
				sessions.SetUser(session.ID, 0)
				session.UserID = 0
			} else {
				c.Set(models.UserKey, user)
			}
		}

		c.Set(models.SessionKey, &session)
		c.Next()
	}
}

func SetSessionCookie(c *gin.Context, session models.Session, secure bool) {
	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(models.SessionCookie, session.ID, maxAge, "/", "", secure, true)
}

// RequireLogin blocks anonymous callers with the unauthorized notice.
func RequireLogin(sessions stores.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if _, decision := auth.RequireAuthenticated(session); decision == auth.Denied {
			Deny(c, sessions)
			return
		}
		c.Next()
	}
}

// Deny flashes the unauthorized notice and redirects home.
func Deny(c *gin.Context, sessions stores.SessionStore) {
	if session := CurrentSession(c); session != nil {
		sessions.AddFlash(session.ID, models.Flash{Category: models.FlashDanger, Text: UnauthorizedNotice})
	}
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}

func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(models.SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*models.Session)
	return session
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(models.UserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
