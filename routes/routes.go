package routes

import (
	"time"
	"warbler/controllers"
	"warbler/handlers"
	"warbler/middleware"

	"github.com/gin-gonic/gin"
)

func WarblerRouter(r *gin.Engine, app *controllers.App) {
	pages := handlers.Pages{App: app}

	r.Use(middleware.RequestID(time.Second))
	r.Static("/static", "./static")

	site := r.Group("/", middleware.SessionMiddleware(app.Sessions, app.Users, app.CookieSecure))

	site.GET("/", pages.Home)
	site.GET("/signup", app.SignupForm)
	site.POST("/signup", app.Signup)
	site.GET("/login", app.LoginForm)
	site.POST("/login", app.Login)
	site.GET("/logout", app.Logout)

	site.GET("/users", pages.ListUsers)
	site.GET("/users/:id", pages.ShowUser)
	site.GET("/users/:id/following", pages.Following)
	site.GET("/users/:id/followers", pages.Followers)

	members := site.Group("/", middleware.RequireLogin(app.Sessions))
	members.POST("/users/follow/:id", app.Follow)
	members.POST("/users/stop-following/:id", app.StopFollowing)
	members.GET("/users/profile", app.EditProfileForm)
	members.POST("/users/profile", app.EditProfile)

	site.GET("/messages/new", app.NewMessageForm)
	site.POST("/messages/new", app.CreateMessage)
	site.GET("/messages/:id", app.ShowMessage)
	site.POST("/messages/:id/delete", app.DeleteMessage)

	site.GET("/ws", app.WebSocket)
	r.GET("/status", app.Status)
}
