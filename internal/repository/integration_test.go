//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rollcall/rollcall/internal/model"
)

// newTestEnv connects to the database named by DATABASE_URL, runs the
// migrations and truncates every table. Tests sharing the database must
// not run in parallel.
func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	if err := Migrate(ctx, dbURL); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	_, err = repo.pool.Exec(ctx, `TRUNCATE person_details, persons, students, users`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return ctx, repo
}

func newTestUser(suffix string) *model.User {
	return &model.User{
		ID:           ulid.Make().String(),
		Email:        suffix + "@example.com",
		Username:     suffix,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$AAAA$BBBB",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := newTestUser("kim")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, user.ID)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Error("stored hash corrupted")
	}

	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_UniqueConstraints(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := newTestUser("kim")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	dupEmail := newTestUser("other")
	dupEmail.Email = user.Email
	if err := repo.CreateUser(ctx, dupEmail); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}

	dupName := newTestUser("kim")
	dupName.Email = "fresh@example.com"
	if err := repo.CreateUser(ctx, dupName); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got: %v", err)
	}
}

func TestIntegrationStudentRepository_CRUD(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := newTestUser("owner")
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	student := &model.Student{
		ID:               ulid.Make().String(),
		OwnerID:          owner.ID,
		FirstName:        "Ana",
		LastName:         "Gomez",
		IdentityDocument: "CC-100",
		Address:          "Calle 2",
		University:       "Nacional",
		RegisteredAt:     time.Now().UTC(),
	}
	if err := repo.CreateStudent(ctx, student); err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}

	got, err := repo.GetStudent(ctx, owner.ID, student.ID)
	if err != nil {
		t.Fatalf("GetStudent failed: %v", err)
	}
	if got.Faculty != "" || got.Semester != 0 {
		t.Errorf("optional defaults: got faculty=%q semester=%d", got.Faculty, got.Semester)
	}

	// Another owner never sees the record.
	if _, err := repo.GetStudent(ctx, ulid.Make().String(), student.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound for foreign owner, got: %v", err)
	}

	faculty := "Engineering"
	semester := 4
	patch := StudentPatch{Faculty: &faculty, Semester: &semester}
	if err := repo.UpdateStudent(ctx, owner.ID, student.ID, patch); err != nil {
		t.Fatalf("UpdateStudent failed: %v", err)
	}
	got, err = repo.GetStudent(ctx, owner.ID, student.ID)
	if err != nil {
		t.Fatalf("GetStudent after update failed: %v", err)
	}
	if got.Faculty != "Engineering" || got.Semester != 4 {
		t.Errorf("patch not applied: faculty=%q semester=%d", got.Faculty, got.Semester)
	}
	if got.FirstName != "Ana" {
		t.Error("unpatched field changed")
	}

	if err := repo.DeleteStudent(ctx, owner.ID, student.ID); err != nil {
		t.Fatalf("DeleteStudent failed: %v", err)
	}
	if _, err := repo.GetStudent(ctx, owner.ID, student.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound after delete, got: %v", err)
	}
}

func TestIntegrationStudentRepository_DocumentUnique(t *testing.T) {
	ctx, repo := newTestEnv(t)

	ownerA := newTestUser("ownera")
	ownerB := newTestUser("ownerb")
	for _, u := range []*model.User{ownerA, ownerB} {
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	first := &model.Student{
		ID:               ulid.Make().String(),
		OwnerID:          ownerA.ID,
		FirstName:        "Ana",
		LastName:         "Gomez",
		IdentityDocument: "CC-100",
		Address:          "Calle 2",
		University:       "Nacional",
		RegisteredAt:     time.Now().UTC(),
	}
	if err := repo.CreateStudent(ctx, first); err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}

	exists, err := repo.DocumentExists(ctx, "CC-100")
	if err != nil {
		t.Fatalf("DocumentExists failed: %v", err)
	}
	if !exists {
		t.Error("DocumentExists should report the stored document")
	}

	// Uniqueness holds across owners.
	second := *first
	second.ID = ulid.Make().String()
	second.OwnerID = ownerB.ID
	if err := repo.CreateStudent(ctx, &second); !errors.Is(err, ErrDocumentTaken) {
		t.Errorf("expected ErrDocumentTaken, got: %v", err)
	}
}

func TestIntegrationPersonRepository_TransactionalCreateDelete(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := newTestUser("owner")
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	person := &model.Person{
		ID:             ulid.Make().String(),
		OwnerID:        owner.ID,
		FirstName:      "Carla",
		LastName:       "Diaz",
		DocumentType:   "CC",
		DocumentNumber: "555",
		Phone:          "3001112233",
		Address:        "Calle 1",
		Neighborhood:   "Centro",
		CreatedAt:      time.Now().UTC(),
	}
	if err := repo.CreatePerson(ctx, person); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}

	got, err := repo.GetPerson(ctx, owner.ID, person.ID)
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if got.Phone != "3001112233" || got.Neighborhood != "Centro" {
		t.Errorf("details not joined: phone=%q neighborhood=%q", got.Phone, got.Neighborhood)
	}

	if err := repo.DeletePerson(ctx, owner.ID, person.ID); err != nil {
		t.Fatalf("DeletePerson failed: %v", err)
	}

	// Both rows are gone.
	var count int
	if err := repo.pool.QueryRow(ctx, `SELECT COUNT(*) FROM person_details WHERE person_id = $1`, person.ID).Scan(&count); err != nil {
		t.Fatalf("count details: %v", err)
	}
	if count != 0 {
		t.Errorf("person_details rows remain: %d", count)
	}
	if _, err := repo.GetPerson(ctx, owner.ID, person.ID); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("expected ErrPersonNotFound, got: %v", err)
	}
}
