package models

import "time"

// User is a stored credential record. Password holds the salted hash, never
// the plain text; PasswordSalt is unique per user and never reused.
type User struct {
	ID           string
	Username     string
	Password     string
	PasswordSalt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
