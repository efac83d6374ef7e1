package models

import "time"

// Message is a single warble. Username and UserImageURL are filled in by
// queries that join the author row.
type Message struct {
	ID           int
	Text         string
	Timestamp    time.Time
	UserID       int
	Username     string
	UserImageURL string
}

func (m Message) Avatar() string {
	if m.UserImageURL == "" {
		return DefaultImageURL
	}
	return m.UserImageURL
}
