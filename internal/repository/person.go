package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rollcall/rollcall/internal/model"
)

// ErrPersonNotFound is returned when a person does not exist or is
// owned by another user.
var ErrPersonNotFound = errors.New("person not found")

// CreatePerson inserts a person and its detail row in one transaction.
// A failure on either statement rolls back both, so a person row never
// exists without its details.
func (r *Repository) CreatePerson(ctx context.Context, person *model.Person) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO persons (id, owner_id, first_name, last_name, document_type, document_number, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		person.ID,
		person.OwnerID,
		person.FirstName,
		person.LastName,
		person.DocumentType,
		person.DocumentNumber,
		person.Phone,
		person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO person_details (person_id, address, neighborhood)
		VALUES ($1, $2, $3)
	`,
		person.ID,
		person.Address,
		person.Neighborhood,
	)
	if err != nil {
		return fmt.Errorf("failed to create person details: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit person: %w", err)
	}

	return nil
}

// GetPerson retrieves one person with its details, scoped to its owner.
func (r *Repository) GetPerson(ctx context.Context, ownerID, id string) (*model.Person, error) {
	query := `
		SELECT p.id, p.owner_id, p.first_name, p.last_name, p.document_type, p.document_number, p.phone,
		       COALESCE(d.address, ''), COALESCE(d.neighborhood, ''), p.created_at
		FROM persons p
		LEFT JOIN person_details d ON d.person_id = p.id
		WHERE p.id = $1 AND p.owner_id = $2
	`

	var person model.Person
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&person.ID,
		&person.OwnerID,
		&person.FirstName,
		&person.LastName,
		&person.DocumentType,
		&person.DocumentNumber,
		&person.Phone,
		&person.Address,
		&person.Neighborhood,
		&person.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return &person, nil
}

// DeletePerson removes a person and its detail row in one transaction,
// scoped to its owner. Details go first because of the foreign key.
func (r *Repository) DeletePerson(ctx context.Context, ownerID, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM person_details
		WHERE person_id IN (SELECT id FROM persons WHERE id = $1 AND owner_id = $2)
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete person details: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM persons WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPersonNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit person delete: %w", err)
	}

	return nil
}
