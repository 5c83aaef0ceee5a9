package models

import "time"

// User is the persisted account record. PasswordHash is a bcrypt hash and
// must never leave the server.
type User struct {
	ID           string
	UserName     string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of a User that is safe to embed in API
// responses and token payloads.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Public returns the user's public projection.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:       u.ID,
		Username: u.UserName,
		Email:    u.Email,
		FullName: u.FullName,
	}
}
