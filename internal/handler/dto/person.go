package dto

import (
	"time"

	"github.com/rollcall/rollcall/internal/model"
)

// CreatePersonRequest represents the request body for creating a
// person and its detail record.
type CreatePersonRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	DocumentType   string `json:"document_type" validate:"required"`
	DocumentNumber string `json:"document_number" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Address        string `json:"address" validate:"required"`
	Neighborhood   string `json:"neighborhood"`
}

// PersonResponse represents a person in API responses.
type PersonResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Neighborhood   string    `json:"neighborhood"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToPersonResponse converts a Person model to its response DTO.
func ToPersonResponse(person *model.Person) PersonResponse {
	return PersonResponse{
		ID:             person.ID,
		FirstName:      person.FirstName,
		LastName:       person.LastName,
		DocumentType:   person.DocumentType,
		DocumentNumber: person.DocumentNumber,
		Phone:          person.Phone,
		Address:        person.Address,
		Neighborhood:   person.Neighborhood,
		CreatedAt:      person.CreatedAt,
	}
}
