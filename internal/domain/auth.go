package domain

import "time"

// Role labels the authorization level attached to a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Principal is the identity decoded from a verified credential.
// It lives for a single request and is never persisted.
type Principal struct {
	SubjectID string
	Email     string
	Role      Role
}

// Token represents issued token metadata returned alongside credentials.
type Token struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
