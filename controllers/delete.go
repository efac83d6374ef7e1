package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"warbler/auth"
	"warbler/helpers"
	"warbler/middleware"
	"warbler/stores"

	"github.com/gin-gonic/gin"
)

// DeleteMessage removes a message owned by the logged-in user. Missing
// messages and messages of other users get the same unauthorized notice.
func (a *App) DeleteMessage(c *gin.Context) {
	session := middleware.CurrentSession(c)

	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		a.Unauthorized(c)
		return
	}

	if auth.RequireOwnership(c.Request.Context(), session, id, a.Messages) == auth.Denied {
		a.Unauthorized(c)
		return
	}

	err := a.Messages.Delete(c.Request.Context(), id)
	if errors.Is(err, stores.ErrNotFound) {
		a.Unauthorized(c)
		return
	}
	if err != nil {
		a.serverError(c, "delete message", err)
		return
	}

	a.publishDeletion(c, id)
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", session.UserID))
}
