package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rollcall/rollcall/internal/model"
)

// Common errors for student repository operations.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrDocumentTaken   = errors.New("identity document already exists")
)

// StudentPatch is a typed partial update. Nil fields are left
// untouched; only this enumerated set of columns is ever updatable, so
// client input never reaches the query as a field name.
type StudentPatch struct {
	FirstName        *string
	LastName         *string
	IdentityDocument *string
	Address          *string
	University       *string
	Faculty          *string
	Major            *string
	Semester         *int
}

// IsEmpty reports whether the patch carries no changes.
func (p StudentPatch) IsEmpty() bool {
	return p.FirstName == nil &&
		p.LastName == nil &&
		p.IdentityDocument == nil &&
		p.Address == nil &&
		p.University == nil &&
		p.Faculty == nil &&
		p.Major == nil &&
		p.Semester == nil
}

// CreateStudent inserts a new student record.
func (r *Repository) CreateStudent(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (id, owner_id, first_name, last_name, identity_document, address, university, faculty, major, semester, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		student.ID,
		student.OwnerID,
		student.FirstName,
		student.LastName,
		student.IdentityDocument,
		student.Address,
		student.University,
		student.Faculty,
		student.Major,
		student.Semester,
		student.RegisteredAt,
	)

	if err != nil {
		if uniqueViolation(err, "students_identity_document_key") {
			return ErrDocumentTaken
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// ListStudents retrieves every student owned by the given user, in
// storage order. There is no pagination.
func (r *Repository) ListStudents(ctx context.Context, ownerID string) ([]*model.Student, error) {
	query := `
		SELECT id, owner_id, first_name, last_name, identity_document, address, university, faculty, major, semester, registered_at
		FROM students
		WHERE owner_id = $1
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// GetStudent retrieves one student by ID, scoped to its owner. A
// record owned by someone else is indistinguishable from a record that
// does not exist.
func (r *Repository) GetStudent(ctx context.Context, ownerID, id string) (*model.Student, error) {
	query := `
		SELECT id, owner_id, first_name, last_name, identity_document, address, university, faculty, major, semester, registered_at
		FROM students
		WHERE id = $1 AND owner_id = $2
	`

	student, err := scanStudent(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return student, nil
}

// UpdateStudent applies a partial update to a student, scoped to its
// owner. The SET clause is built from the enumerated patch fields only.
func (r *Repository) UpdateStudent(ctx context.Context, ownerID, id string, patch StudentPatch) error {
	set := make([]string, 0, 8)
	args := []any{id, ownerID}
	argIndex := 3

	appendField := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.FirstName != nil {
		appendField("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		appendField("last_name", *patch.LastName)
	}
	if patch.IdentityDocument != nil {
		appendField("identity_document", *patch.IdentityDocument)
	}
	if patch.Address != nil {
		appendField("address", *patch.Address)
	}
	if patch.University != nil {
		appendField("university", *patch.University)
	}
	if patch.Faculty != nil {
		appendField("faculty", *patch.Faculty)
	}
	if patch.Major != nil {
		appendField("major", *patch.Major)
	}
	if patch.Semester != nil {
		appendField("semester", *patch.Semester)
	}

	if len(set) == 0 {
		return nil
	}

	query := "UPDATE students SET " + strings.Join(set, ", ") + " WHERE id = $1 AND owner_id = $2"

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if uniqueViolation(err, "students_identity_document_key") {
			return ErrDocumentTaken
		}
		return fmt.Errorf("failed to update student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// DeleteStudent removes a student, scoped to its owner.
func (r *Repository) DeleteStudent(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM students WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// DocumentExists checks whether any student, regardless of owner,
// already carries the given identity document.
func (r *Repository) DocumentExists(ctx context.Context, document string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM students WHERE identity_document = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, document).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check identity document: %w", err)
	}

	return exists, nil
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.OwnerID,
		&student.FirstName,
		&student.LastName,
		&student.IdentityDocument,
		&student.Address,
		&student.University,
		&student.Faculty,
		&student.Major,
		&student.Semester,
		&student.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}
