package model

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultAvatar is the avatar tag assigned to new accounts
const DefaultAvatar = "default"

// User represents a platform account
// PasswordHash must never be exposed in API responses
type User struct {
	ID           int64      `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Avatar       string     `db:"avatar"`
	Role         string     `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLogin    *time.Time `db:"last_login"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserUpdate describes a partial admin update of a user row
// Nil fields keep their current value
type UserUpdate struct {
	Username *string
	Email    *string
	Role     *string
}
