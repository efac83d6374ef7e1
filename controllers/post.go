package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"warbler/auth"
	"warbler/forms"
	"warbler/helpers"
	"warbler/middleware"
	"warbler/stores"
	"warbler/templates"

	"github.com/gin-gonic/gin"
)

func (a *App) NewMessageForm(c *gin.Context) {
	if _, decision := auth.RequireAuthenticated(middleware.CurrentSession(c)); decision == auth.Denied {
		a.Unauthorized(c)
		return
	}
	a.Render(c, http.StatusOK, "New message", templates.NewMessageForm(forms.Result{}))
}

func (a *App) CreateMessage(c *gin.Context) {
	userID, decision := auth.RequireAuthenticated(middleware.CurrentSession(c))
	if decision == auth.Denied {
		a.Unauthorized(c)
		return
	}

	res := forms.Validate(forms.MessageForm, c.PostForm)
	if !res.Valid() {
		a.Render(c, http.StatusOK, "New message", templates.NewMessageForm(res))
		return
	}

	msg, err := a.Messages.Create(c.Request.Context(), res.Get("text"), userID)
	if err != nil {
		a.serverError(c, "create message", err)
		return
	}

	a.publishMessage(c, msg)
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", userID))
}

func (a *App) ShowMessage(c *gin.Context) {
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "Message not found")
		return
	}

	msg, err := a.Messages.Get(c.Request.Context(), id)
	if errors.Is(err, stores.ErrNotFound) {
		c.String(http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		a.serverError(c, "show message", err)
		return
	}

	viewerID, _ := middleware.CurrentSession(c).CurrentUserID()
	a.Render(c, http.StatusOK, "Message", templates.MessageDetail(msg, viewerID))
}
