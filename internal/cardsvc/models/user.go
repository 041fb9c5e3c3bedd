package models

import (
	"time"
)

// User represents one account in the users file. PasswordHash is a
// bcrypt hash; the raw password is never persisted.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
