package domain

import "time"

// User is the domain model for accounts that can sign in.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile returns a copy safe for API responses, with the hash stripped.
func (u User) Profile() User {
	u.PasswordHash = ""
	return u
}
