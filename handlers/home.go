package handlers

import (
	"net/http"
	"warbler/controllers"
	"warbler/middleware"
	"warbler/templates"

	"github.com/gin-gonic/gin"
)

// Pages serves the read-only pages.
type Pages struct {
	*controllers.App
}

// Home shows the landing page to visitors and the timeline of followed
// users (plus their own messages) to a logged-in user.
func (p Pages) Home(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		p.Render(c, http.StatusOK, "", templates.Landing())
		return
	}

	ctx := c.Request.Context()
	following, err := p.Follows.Following(ctx, user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	followers, err := p.Follows.Followers(ctx, user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	authorIDs := make([]int, 0, len(following)+1)
	authorIDs = append(authorIDs, user.ID)
	for _, u := range following {
		authorIDs = append(authorIDs, u.ID)
	}

	messages, err := p.Messages.Timeline(ctx, authorIDs, p.TimelineSize())
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	own, err := p.Messages.CountByUser(ctx, user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	p.Render(c, http.StatusOK, "Home", templates.Home(user, messages, len(following), len(followers), own))
}
