package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"warbler/auth"
	"warbler/forms"
	"warbler/helpers"
	"warbler/middleware"
	"warbler/models"
	"warbler/stores"
	"warbler/templates"

	"github.com/gin-gonic/gin"
)

func (a *App) Follow(c *gin.Context) {
	a.changeFollow(c, a.Follows.Follow)
}

func (a *App) StopFollowing(c *gin.Context) {
	a.changeFollow(c, a.Follows.Unfollow)
}

func (a *App) changeFollow(c *gin.Context, change func(ctx context.Context, followerID, followedID int) error) {
	userID, decision := auth.RequireAuthenticated(middleware.CurrentSession(c))
	if decision == auth.Denied {
		a.Unauthorized(c)
		return
	}

	targetID, ok := helpers.ParseID(c.Param("id"))
	if !ok || targetID == userID {
		a.Unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	if _, err := a.Users.Get(ctx, targetID); errors.Is(err, stores.ErrNotFound) {
		c.String(http.StatusNotFound, "User not found")
		return
	} else if err != nil {
		a.serverError(c, "follow", err)
		return
	}

	if err := change(ctx, userID, targetID); err != nil {
		a.serverError(c, "follow", err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/following", userID))
}

func (a *App) EditProfileForm(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		a.Unauthorized(c)
		return
	}
	a.Render(c, http.StatusOK, "Edit profile", templates.EditUserForm(templates.ProfileValues(user)))
}

// EditProfile applies the edit form after re-checking the password.
// Blank fields keep their current value.
func (a *App) EditProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		a.Unauthorized(c)
		return
	}

	res := forms.Validate(forms.EditUserForm, c.PostForm)
	if !res.Valid() {
		a.Render(c, http.StatusOK, "Edit profile", templates.EditUserForm(res))
		return
	}

	if err := auth.CheckPassword(user.Password, res.Get("password")); err != nil {
		a.Flash(c, models.FlashDanger, "Wrong password, please try again.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	updated := user
	overwrite(&updated.Username, res.Get("username"))
	overwrite(&updated.Email, res.Get("email"))
	overwrite(&updated.ImageURL, res.Get("image_url"))
	overwrite(&updated.HeaderImageURL, res.Get("header_image_url"))
	overwrite(&updated.Bio, res.Get("bio"))
	overwrite(&updated.Location, res.Get("location"))

	err := a.Users.Update(c.Request.Context(), updated)
	if errors.Is(err, stores.ErrConflict) {
		a.Flash(c, models.FlashDanger, "Username or e-mail already taken")
		a.Render(c, http.StatusOK, "Edit profile", templates.EditUserForm(res))
		return
	}
	if err != nil {
		a.serverError(c, "edit profile", err)
		return
	}

	a.Flash(c, models.FlashSuccess, "Profile updated.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
}

func overwrite(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
