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

// ErrPersonNotFound is returned when a person does not exist or is
// owned by another user.
var ErrPersonNotFound = errors.New("person not found")

// PersonStore is the persistence surface the person service needs.
// Create and Delete are transactional over the person and its details.
type PersonStore interface {
	CreatePerson(ctx context.Context, person *model.Person) error
	GetPerson(ctx context.Context, ownerID, id string) (*model.Person, error)
	DeletePerson(ctx context.Context, ownerID, id string) error
}

// PersonService handles ownership-scoped person records.
type PersonService struct {
	store   PersonStore
	metrics metrics.Recorder
}

// NewPersonService creates a new PersonService.
func NewPersonService(store PersonStore, recorder metrics.Recorder) *PersonService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PersonService{store: store, metrics: recorder}
}

// CreatePersonInput defines input for creating a person.
type CreatePersonInput struct {
	FirstName      string
	LastName       string
	DocumentType   string
	DocumentNumber string
	Phone          string
	Address        string
	Neighborhood   string
}

// CreatePerson creates a person owned by ownerID. The person row and
// its detail row are written atomically by the store.
func (s *PersonService) CreatePerson(ctx context.Context, ownerID string, input CreatePersonInput) (*model.Person, error) {
	person := &model.Person{
		ID:             newID(),
		OwnerID:        ownerID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		Phone:          input.Phone,
		Address:        input.Address,
		Neighborhood:   input.Neighborhood,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	s.metrics.PersonCreated()
	return person, nil
}

// GetPerson returns one person owned by ownerID.
func (s *PersonService) GetPerson(ctx context.Context, ownerID, id string) (*model.Person, error) {
	person, err := s.store.GetPerson(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return person, nil
}

// DeletePerson removes one person owned by ownerID.
func (s *PersonService) DeletePerson(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeletePerson(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return ErrPersonNotFound
		}
		return fmt.Errorf("delete person: %w", err)
	}

	s.metrics.PersonDeleted()
	return nil
}
