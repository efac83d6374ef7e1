package handlers

import (
	"context"
	"errors"
	"net/http"
	"warbler/helpers"
	"warbler/middleware"
	"warbler/models"
	"warbler/stores"
	"warbler/templates"

	"github.com/gin-gonic/gin"
)

func (p Pages) ListUsers(c *gin.Context) {
	query := c.Query("q")
	users, err := p.Users.Search(c.Request.Context(), query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	viewerID, _ := middleware.CurrentSession(c).CurrentUserID()
	following, ok := p.followingSet(c, viewerID)
	if !ok {
		return
	}
	p.Render(c, http.StatusOK, "Users", templates.UserIndex(users, query, viewerID, following))
}

func (p Pages) ShowUser(c *gin.Context) {
	profile, ok := p.profileUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	messages, err := p.Messages.ListByUser(ctx, profile.ID, p.TimelineSize())
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	count, err := p.Messages.CountByUser(ctx, profile.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	following, err := p.Follows.Following(ctx, profile.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	followers, err := p.Follows.Followers(ctx, profile.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	viewerID, _ := middleware.CurrentSession(c).CurrentUserID()
	isFollowing := false
	for _, f := range followers {
		if f.ID == viewerID {
			isFollowing = true
			break
		}
	}

	p.Render(c, http.StatusOK, "@"+profile.Username, templates.Profile(templates.ProfileData{
		Profile:     profile,
		Messages:    messages,
		ViewerID:    viewerID,
		IsFollowing: isFollowing,
		Count:       count,
		Following:   len(following),
		Followers:   len(followers),
	}))
}

func (p Pages) Following(c *gin.Context) {
	p.followList(c, "is following", p.Follows.Following)
}

func (p Pages) Followers(c *gin.Context) {
	p.followList(c, "followers", p.Follows.Followers)
}

func (p Pages) followList(c *gin.Context, heading string, list func(ctx context.Context, userID int) ([]models.User, error)) {
	viewerID, ok := middleware.CurrentSession(c).CurrentUserID()
	if !ok {
		p.Unauthorized(c)
		return
	}

	profile, ok := p.profileUser(c)
	if !ok {
		return
	}

	users, err := list(c.Request.Context(), profile.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	following, ok := p.followingSet(c, viewerID)
	if !ok {
		return
	}
	p.Render(c, http.StatusOK, "@"+profile.Username, templates.FollowList(profile, heading, users, viewerID, following))
}

func (p Pages) profileUser(c *gin.Context) (models.User, bool) {
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "User not found")
		return models.User{}, false
	}

	user, err := p.Users.Get(c.Request.Context(), id)
	if errors.Is(err, stores.ErrNotFound) {
		c.String(http.StatusNotFound, "User not found")
		return models.User{}, false
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return models.User{}, false
	}
	return user, true
}

func (p Pages) followingSet(c *gin.Context, viewerID int) (map[int]bool, bool) {
	set := make(map[int]bool)
	if viewerID == 0 {
		return set, true
	}
	users, err := p.Follows.Following(c.Request.Context(), viewerID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Database error")
		return nil, false
	}
	for _, u := range users {
		set[u.ID] = true
	}
	return set, true
}
