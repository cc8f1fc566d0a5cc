package service

import (
	"context"

	"github.com/rollcall/rollcall/internal/model"
	"github.com/rollcall/rollcall/internal/repository"
)

// In-memory stores mirroring the repository's ownership and uniqueness
// semantics, including the global identity-document constraint.

type fakeUserStore struct {
	users map[string]*model.User // keyed by ID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type fakeStudentStore struct {
	students map[string]*model.Student // keyed by ID
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: map[string]*model.Student{}}
}

func (f *fakeStudentStore) CreateStudent(_ context.Context, student *model.Student) error {
	for _, s := range f.students {
		if s.IdentityDocument == student.IdentityDocument {
			return repository.ErrDocumentTaken
		}
	}
	clone := *student
	f.students[student.ID] = &clone
	return nil
}

func (f *fakeStudentStore) ListStudents(_ context.Context, ownerID string) ([]*model.Student, error) {
	var out []*model.Student
	for _, s := range f.students {
		if s.OwnerID == ownerID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) GetStudent(_ context.Context, ownerID, id string) (*model.Student, error) {
	s, ok := f.students[id]
	if !ok || s.OwnerID != ownerID {
		return nil, repository.ErrStudentNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeStudentStore) UpdateStudent(_ context.Context, ownerID, id string, patch repository.StudentPatch) error {
	s, ok := f.students[id]
	if !ok || s.OwnerID != ownerID {
		return repository.ErrStudentNotFound
	}

	if patch.IdentityDocument != nil {
		for _, other := range f.students {
			if other.ID != id && other.IdentityDocument == *patch.IdentityDocument {
				return repository.ErrDocumentTaken
			}
		}
		s.IdentityDocument = *patch.IdentityDocument
	}
	if patch.FirstName != nil {
		s.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		s.LastName = *patch.LastName
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	if patch.University != nil {
		s.University = *patch.University
	}
	if patch.Faculty != nil {
		s.Faculty = *patch.Faculty
	}
	if patch.Major != nil {
		s.Major = *patch.Major
	}
	if patch.Semester != nil {
		s.Semester = *patch.Semester
	}
	return nil
}

func (f *fakeStudentStore) DeleteStudent(_ context.Context, ownerID, id string) error {
	s, ok := f.students[id]
	if !ok || s.OwnerID != ownerID {
		return repository.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) DocumentExists(_ context.Context, document string) (bool, error) {
	for _, s := range f.students {
		if s.IdentityDocument == document {
			return true, nil
		}
	}
	return false, nil
}

type fakePersonStore struct {
	persons map[string]*model.Person // keyed by ID
}

func newFakePersonStore() *fakePersonStore {
	return &fakePersonStore{persons: map[string]*model.Person{}}
}

func (f *fakePersonStore) CreatePerson(_ context.Context, person *model.Person) error {
	clone := *person
	f.persons[person.ID] = &clone
	return nil
}

func (f *fakePersonStore) GetPerson(_ context.Context, ownerID, id string) (*model.Person, error) {
	p, ok := f.persons[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrPersonNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePersonStore) DeletePerson(_ context.Context, ownerID, id string) error {
	p, ok := f.persons[id]
	if !ok || p.OwnerID != ownerID {
		return repository.ErrPersonNotFound
	}
	delete(f.persons, id)
	return nil
}
