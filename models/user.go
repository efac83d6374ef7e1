package models

// User is a registered Warbler account. Password holds the bcrypt hash.
type User struct {
	ID             int
	Username       string
	Email          string
	Password       string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// Avatar falls back to the default picture when no image was set.
func (u User) Avatar() string {
	if u.ImageURL == "" {
		return DefaultImageURL
	}
	return u.ImageURL
}

func (u User) Header() string {
	if u.HeaderImageURL == "" {
		return DefaultHeaderImageURL
	}
	return u.HeaderImageURL
}
