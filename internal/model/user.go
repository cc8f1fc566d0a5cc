// Package model defines domain entities for the application.
package model

import "time"

// User represents an account that owns student and person records.
// The password hash is opaque and never serialized into responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
