package models

import "time"

// User captures application-facing fields for a registered identity.
// Username is unique and immutable after creation. PasswordHash always
// holds a bcrypt digest, never a raw password.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Nickname     string     `json:"nickname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
