// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account holder. The password itself is never stored, only a
// bcrypt hash.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
