package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status reports how many users are logged in and connected live.
func (a *App) Status(c *gin.Context) {
	userIDs := a.Sessions.UserIDs()
	live := 0
	if a.Hub != nil {
		for _, id := range userIDs {
			if a.Hub.Connected(id) > 0 {
				live++
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"logged_in_users": len(userIDs),
		"live_users":      live,
	})
}
