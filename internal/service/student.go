package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rollcall/rollcall/internal/metrics"
	"github.com/rollcall/rollcall/internal/model"
	"github.com/rollcall/rollcall/internal/repository"
)

// Student service errors.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrDocumentTaken   = errors.New("identity document already registered")
	ErrEmptyUpdate     = errors.New("no fields to update")
)

// StudentStore is the persistence surface the student service needs.
type StudentStore interface {
	CreateStudent(ctx context.Context, student *model.Student) error
	ListStudents(ctx context.Context, ownerID string) ([]*model.Student, error)
	GetStudent(ctx context.Context, ownerID, id string) (*model.Student, error)
	UpdateStudent(ctx context.Context, ownerID, id string, patch repository.StudentPatch) error
	DeleteStudent(ctx context.Context, ownerID, id string) error
	DocumentExists(ctx context.Context, document string) (bool, error)
}

// StudentService handles ownership-scoped student CRUD.
type StudentService struct {
	store   StudentStore
	metrics metrics.Recorder
}

// NewStudentService creates a new StudentService.
func NewStudentService(store StudentStore, recorder metrics.Recorder) *StudentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &StudentService{store: store, metrics: recorder}
}

// CreateStudentInput defines input for creating a student. Optional
// fields left zero read back as their declared defaults.
type CreateStudentInput struct {
	FirstName        string
	LastName         string
	IdentityDocument string
	Address          string
	University       string
	Faculty          string
	Major            string
	Semester         int
}

// CreateStudent creates a student owned by ownerID. The identity
// document must be unique across all owners; the existence check is a
// fast path and the unique constraint settles concurrent creates.
func (s *StudentService) CreateStudent(ctx context.Context, ownerID string, input CreateStudentInput) (*model.Student, error) {
	exists, err := s.store.DocumentExists(ctx, input.IdentityDocument)
	if err != nil {
		return nil, fmt.Errorf("check identity document: %w", err)
	}
	if exists {
		return nil, ErrDocumentTaken
	}

	student := &model.Student{
		ID:               newID(),
		OwnerID:          ownerID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		IdentityDocument: input.IdentityDocument,
		Address:          input.Address,
		University:       input.University,
		Faculty:          input.Faculty,
		Major:            input.Major,
		Semester:         input.Semester,
		RegisteredAt:     time.Now().UTC(),
	}

	if err := s.store.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDocumentTaken) {
			return nil, ErrDocumentTaken
		}
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.metrics.StudentCreated()
	return student, nil
}

// ListStudents returns every student owned by ownerID.
func (s *StudentService) ListStudents(ctx context.Context, ownerID string) ([]*model.Student, error) {
	students, err := s.store.ListStudents(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// GetStudent returns one student owned by ownerID. A student owned by
// another user yields ErrStudentNotFound, never the record.
func (s *StudentService) GetStudent(ctx context.Context, ownerID, id string) (*model.Student, error) {
	student, err := s.store.GetStudent(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

// UpdateStudent applies a partial update. An empty patch is a
// validation error and leaves the record unchanged.
func (s *StudentService) UpdateStudent(ctx context.Context, ownerID, id string, patch repository.StudentPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyUpdate
	}

	if err := s.store.UpdateStudent(ctx, ownerID, id, patch); err != nil {
		switch {
		case errors.Is(err, repository.ErrStudentNotFound):
			return ErrStudentNotFound
		case errors.Is(err, repository.ErrDocumentTaken):
			return ErrDocumentTaken
		}
		return fmt.Errorf("update student: %w", err)
	}

	s.metrics.StudentUpdated()
	return nil
}

// DeleteStudent removes one student owned by ownerID.
func (s *StudentService) DeleteStudent(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteStudent(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("delete student: %w", err)
	}

	s.metrics.StudentDeleted()
	return nil
}
