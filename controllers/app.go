package controllers

import (
	"log"
	"net/http"
	"warbler/middleware"
	"warbler/models"
	"warbler/stores"
	"warbler/templates"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// App holds the collaborators shared by all request handlers.
type App struct {
	Users         stores.UserStore
	Messages      stores.MessageStore
	Follows       stores.FollowStore
	Sessions      stores.SessionStore
	Hub           *Hub
	BcryptCost    int
	TimelineLimit int
	CookieSecure  bool
}

func (a *App) bcryptCost() int {
	if a.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return a.BcryptCost
}

// TimelineSize is the number of messages shown on a timeline page.
func (a *App) TimelineSize() int {
	if a.TimelineLimit <= 0 {
		return models.DefaultTimelineLimit
	}
	return a.TimelineLimit
}

// Render wraps body in the site layout, consuming pending flashes.
func (a *App) Render(c *gin.Context, status int, title string, body templ.Component) {
	page := templates.Page{Title: title}
	if user, ok := middleware.CurrentUser(c); ok {
		page.User = &user
	}
	if session := middleware.CurrentSession(c); session != nil {
		page.Flashes = a.Sessions.PopFlashes(session.ID)
	}

	templ.Handler(templates.Layout(page, body), templ.WithStatus(status)).ServeHTTP(c.Writer, c.Request)
}

func (a *App) Flash(c *gin.Context, category, text string) {
	if session := middleware.CurrentSession(c); session != nil {
		a.Sessions.AddFlash(session.ID, models.Flash{Category: category, Text: text})
	}
}

func (a *App) Unauthorized(c *gin.Context) {
	middleware.Deny(c, a.Sessions)
}

func (a *App) serverError(c *gin.Context, where string, err error) {
	log.Printf("Error in %s: %v", where, err)
	c.String(http.StatusInternalServerError, "Something went wrong (%s)", where)
}
