package model

import "time"

// Person represents a person record plus its detail row.
// The identity fields live in the persons table; Address and
// Neighborhood live in person_details and are written in the same
// transaction as the person itself.
type Person struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Neighborhood   string    `json:"neighborhood"`
	CreatedAt      time.Time `json:"created_at"`
}
