package models

import "time"

// Note is a short text record optionally attached to a user.
type Note struct {
	ID        string
	Title     string
	Content   string
	UserID    string
	CreatedAt time.Time
}
