package models

import "time"

const (
	DefaultPort            = "8080"
	DefaultSessionDuration = 24 * time.Hour
	DefaultMaxIdleTime     = 2 * time.Hour
	DefaultCleanupInterval = time.Minute
	DefaultTimelineLimit   = 100
	MaxMessageLength       = 140

	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"

	SessionCookie = "session_id"
	SessionKey    = "session"
	UserKey       = "user"
)
