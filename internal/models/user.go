package models

import "time"

// User is the identity carried by a bearer token.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token behind u is no longer valid at now.
func (u User) Expired(now time.Time) bool {
	return !u.ExpiresAt.IsZero() && !now.Before(u.ExpiresAt)
}
