package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an account that can authenticate against the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
