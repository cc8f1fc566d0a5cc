package model

import "time"

// Student represents a student record owned by exactly one user.
// IdentityDocument is unique across all owners, not per owner.
type Student struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	IdentityDocument string    `json:"identity_document"`
	Address          string    `json:"address"`
	University       string    `json:"university"`
	Faculty          string    `json:"faculty"`
	Major            string    `json:"major"`
	Semester         int       `json:"semester"`
	RegisteredAt     time.Time `json:"registered_at"`
}
