package models

import (
	"time"
)

// Role names as they appear in token claims and the users table.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID             int64
	CreatedAt      time.Time
	Username       string
	Nickname       string
	HashedPassword string

	// Ordered, non-empty after creation (defaults to RoleUser)
	Roles []string
}
