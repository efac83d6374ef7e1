package templates

import (
	"net/url"
	"strconv"
	"warbler/forms"
	"warbler/models"

	"github.com/a-h/templ"
)

// Page carries what the layout needs besides the body.
type Page struct {
	Title   string
	User    *models.User
	Flashes []models.Flash
}

func (p Page) FullTitle() string {
	if p.Title == "" {
		return "Warbler"
	}
	return p.Title + " | Warbler"
}

// ProfileData collects everything shown on a user's page.
type ProfileData struct {
	Profile     models.User
	Messages    []models.Message
	ViewerID    int
	IsFollowing bool
	Count       int
	Following   int
	Followers   int
}

// ProfileValues prefills the edit form from a stored user.
func ProfileValues(u models.User) forms.Result {
	return forms.Result{Values: map[string]string{
		"username":         u.Username,
		"email":            u.Email,
		"image_url":        u.ImageURL,
		"header_image_url": u.HeaderImageURL,
		"bio":              u.Bio,
		"location":         u.Location,
	}}
}

func userURL(id int, suffix string) templ.SafeURL {
	return templ.SafeURL("/users/" + strconv.Itoa(id) + suffix)
}

func messageURL(id int, suffix string) templ.SafeURL {
	return templ.SafeURL("/messages/" + strconv.Itoa(id) + suffix)
}

func followURL(action string, id int) templ.SafeURL {
	return templ.SafeURL("/users/" + action + "/" + strconv.Itoa(id))
}

func loginAction(next string) templ.SafeURL {
	if next == "" {
		return "/login"
	}
	return templ.SafeURL("/login?next=" + url.QueryEscape(next))
}

// imageSrc applies templ's URL sanitizing to user supplied image links.
func imageSrc(raw string) string {
	return string(templ.URL(raw))
}

func messageID(id int) string {
	return "message-" + strconv.Itoa(id)
}
