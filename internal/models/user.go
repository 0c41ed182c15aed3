package models

import (
	"time"
)

// User is the public, anonymous profile. Recovery data is stored separately
// and encrypted.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`

	// Internal only - never returned in JSON
	PasswordHash string `json:"-"`
}

// UserRecovery holds the encrypted recovery email for an account.
type UserRecovery struct {
	ID             string    `json:"-"`
	UserID         string    `json:"-"`
	EmailEncrypted string    `json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
