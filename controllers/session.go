package controllers

import (
	"errors"
	"log"
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

func (a *App) SignupForm(c *gin.Context) {
	a.Render(c, http.StatusOK, "Sign up", templates.SignupForm(forms.Result{}))
}

func (a *App) Signup(c *gin.Context) {
	res := forms.Validate(forms.UserAddForm, c.PostForm)
	if !res.Valid() {
		a.Render(c, http.StatusOK, "Sign up", templates.SignupForm(res))
		return
	}

	hash, err := auth.HashPassword(res.Get("password"), a.bcryptCost())
	if err != nil {
		a.serverError(c, "signup", err)
		return
	}

	user, err := a.Users.Create(c.Request.Context(), models.User{
		Username: res.Get("username"),
		Email:    res.Get("email"),
		Password: hash,
		ImageURL: res.Get("image_url"),
	})
	if errors.Is(err, stores.ErrConflict) {
		a.Flash(c, models.FlashDanger, "Username or e-mail already taken")
		a.Render(c, http.StatusOK, "Sign up", templates.SignupForm(res))
		return
	}
	if err != nil {
		a.serverError(c, "signup", err)
		return
	}

	a.login(c, user)
	c.Redirect(http.StatusFound, "/")
}

func (a *App) LoginForm(c *gin.Context) {
	a.Render(c, http.StatusOK, "Log in", templates.LoginForm(forms.Result{}, c.Query("next")))
}

func (a *App) Login(c *gin.Context) {
	next := c.Query("next")
	res := forms.Validate(forms.LoginForm, c.PostForm)
	if !res.Valid() {
		a.Render(c, http.StatusOK, "Log in", templates.LoginForm(res, next))
		return
	}

	user, err := a.authenticate(c, res.Get("username"), res.Get("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		a.Flash(c, models.FlashDanger, "Invalid credentials.")
		a.Render(c, http.StatusOK, "Log in", templates.LoginForm(res, next))
		return
	}
	if err != nil {
		a.serverError(c, "login", err)
		return
	}

	a.login(c, user)
	a.Flash(c, models.FlashSuccess, "Hello, "+user.Username+"!")
	c.Redirect(http.StatusFound, helpers.SafeRedirect(next, "/"))
}

func (a *App) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session != nil {
		if _, ok := session.CurrentUserID(); ok {
			a.Sessions.SetUser(session.ID, 0)
			a.Flash(c, models.FlashSuccess, "You have successfully logged out.")
		}
	}
	c.Redirect(http.StatusFound, "/login")
}

// authenticate looks up the user and verifies the password. Unknown users
// and wrong passwords both yield auth.ErrInvalidCredentials.
func (a *App) authenticate(c *gin.Context, username, password string) (models.User, error) {
	user, err := a.Users.GetByUsername(c.Request.Context(), username)
	if errors.Is(err, stores.ErrNotFound) {
		return models.User{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if err := auth.CheckPassword(user.Password, password); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// login rotates the session id so a pre-login cookie cannot be reused.
func (a *App) login(c *gin.Context, user models.User) {
	session := middleware.CurrentSession(c)
	if session == nil {
		return
	}

	flashes := a.Sessions.PopFlashes(session.ID)
	a.Sessions.Delete(session.ID)

	fresh := a.Sessions.Create(user.ID)
	for _, f := range flashes {
		a.Sessions.AddFlash(fresh.ID, f)
	}
	middleware.SetSessionCookie(c, fresh, a.CookieSecure)

	*session = fresh
	c.Set(models.UserKey, user)
	log.Printf("User %s logged in", user.Username)
}
