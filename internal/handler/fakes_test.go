package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/rollcall/rollcall/internal/auth"
	"github.com/rollcall/rollcall/internal/model"
	"github.com/rollcall/rollcall/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUser injects a fixed authenticated user, standing in for the
// auth middleware.
func withUser(user *model.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), user)))
		})
	}
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type memStudentStore struct {
	mu       sync.Mutex
	students map[string]*model.Student
}

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{students: make(map[string]*model.Student)}
}

func (s *memStudentStore) CreateStudent(_ context.Context, student *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.students {
		if existing.IdentityDocument == student.IdentityDocument {
			return repository.ErrDocumentTaken
		}
	}
	clone := *student
	s.students[student.ID] = &clone
	return nil
}

func (s *memStudentStore) ListStudents(_ context.Context, ownerID string) ([]*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Student
	for _, st := range s.students {
		if st.OwnerID == ownerID {
			clone := *st
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memStudentStore) GetStudent(_ context.Context, ownerID, id string) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok || st.OwnerID != ownerID {
		return nil, repository.ErrStudentNotFound
	}
	clone := *st
	return &clone, nil
}

func (s *memStudentStore) UpdateStudent(_ context.Context, ownerID, id string, patch repository.StudentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok || st.OwnerID != ownerID {
		return repository.ErrStudentNotFound
	}
	if patch.IdentityDocument != nil {
		for otherID, other := range s.students {
			if otherID != id && other.IdentityDocument == *patch.IdentityDocument {
				return repository.ErrDocumentTaken
			}
		}
		st.IdentityDocument = *patch.IdentityDocument
	}
	if patch.FirstName != nil {
		st.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		st.LastName = *patch.LastName
	}
	if patch.Address != nil {
		st.Address = *patch.Address
	}
	if patch.University != nil {
		st.University = *patch.University
	}
	if patch.Faculty != nil {
		st.Faculty = *patch.Faculty
	}
	if patch.Major != nil {
		st.Major = *patch.Major
	}
	if patch.Semester != nil {
		st.Semester = *patch.Semester
	}
	return nil
}

func (s *memStudentStore) DeleteStudent(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok || st.OwnerID != ownerID {
		return repository.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}

func (s *memStudentStore) DocumentExists(_ context.Context, document string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.IdentityDocument == document {
			return true, nil
		}
	}
	return false, nil
}

type memPersonStore struct {
	mu      sync.Mutex
	persons map[string]*model.Person
}

func newMemPersonStore() *memPersonStore {
	return &memPersonStore{persons: make(map[string]*model.Person)}
}

func (s *memPersonStore) CreatePerson(_ context.Context, person *model.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *person
	s.persons[person.ID] = &clone
	return nil
}

func (s *memPersonStore) GetPerson(_ context.Context, ownerID, id string) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.persons[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrPersonNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *memPersonStore) DeletePerson(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.persons[id]
	if !ok || p.OwnerID != ownerID {
		return repository.ErrPersonNotFound
	}
	delete(s.persons, id)
	return nil
}
