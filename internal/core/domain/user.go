package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleBlogger = "blogger"
)

// User models a registered account. PasswordHash holds the salted credential
// string ("salt:digest") and is never exposed in responses.
type User struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
