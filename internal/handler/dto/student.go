package dto

import (
	"time"

	"github.com/rollcall/rollcall/internal/model"
	"github.com/rollcall/rollcall/internal/repository"
)

// CreateStudentRequest represents the request body for creating a
// student. Faculty, major and semester are optional and default to
// "", "" and 0.
type CreateStudentRequest struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	IdentityDocument string `json:"identity_document" validate:"required"`
	Address          string `json:"address" validate:"required"`
	University       string `json:"university" validate:"required"`
	Faculty          string `json:"faculty"`
	Major            string `json:"major"`
	Semester         int    `json:"semester" validate:"gte=0"`
}

// UpdateStudentRequest represents the request body for a partial
// update. Absent fields are left unchanged.
type UpdateStudentRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	IdentityDocument *string `json:"identity_document,omitempty"`
	Address          *string `json:"address,omitempty"`
	University       *string `json:"university,omitempty"`
	Faculty          *string `json:"faculty,omitempty"`
	Major            *string `json:"major,omitempty"`
	Semester         *int    `json:"semester,omitempty" validate:"omitempty,gte=0"`
}

// ToPatch converts the request into the repository's typed patch.
func (r UpdateStudentRequest) ToPatch() repository.StudentPatch {
	return repository.StudentPatch{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		IdentityDocument: r.IdentityDocument,
		Address:          r.Address,
		University:       r.University,
		Faculty:          r.Faculty,
		Major:            r.Major,
		Semester:         r.Semester,
	}
}

// StudentResponse represents a student in API responses.
type StudentResponse struct {
	ID               string    `json:"id"`
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

// StudentListResponse wraps the caller's students.
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
}

// ToStudentResponse converts a Student model to its response DTO.
func ToStudentResponse(student *model.Student) StudentResponse {
	return StudentResponse{
		ID:               student.ID,
		FirstName:        student.FirstName,
		LastName:         student.LastName,
		IdentityDocument: student.IdentityDocument,
		Address:          student.Address,
		University:       student.University,
		Faculty:          student.Faculty,
		Major:            student.Major,
		Semester:         student.Semester,
		RegisteredAt:     student.RegisteredAt,
	}
}

// ToStudentListResponse converts a slice of students.
func ToStudentListResponse(students []*model.Student) StudentListResponse {
	responses := make([]StudentResponse, len(students))
	for i, s := range students {
		responses[i] = ToStudentResponse(s)
	}
	return StudentListResponse{Students: responses}
}
