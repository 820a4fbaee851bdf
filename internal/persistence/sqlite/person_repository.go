package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/hr-assistant/internal/persistence"
)

// PersonRepository implements persistence.PersonRepository using SQLite.
type PersonRepository struct {
	helper *QueryHelper
}

// NewPersonRepository creates a new SQLite person repository.
func NewPersonRepository(pool *ConnectionPool) *PersonRepository {
	return &PersonRepository{helper: NewQueryHelper(pool)}
}

const personColumns = "id, identifier, full_name, role, status, created_at, updated_at"

// CreatePerson inserts a new staff record.
func (r *PersonRepository) CreatePerson(ctx context.Context, person persistence.Person) error {
	if person.ID == "" || person.Identifier == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO people (` + personColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.helper.Exec(ctx, query,
		person.ID,
		person.Identifier,
		person.FullName,
		person.Role,
		person.Status,
		person.CreatedAt.UTC().Format(time.RFC3339),
		person.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return mapSQLiteError(err)
}

// UpdatePerson updates an existing staff record.
func (r *PersonRepository) UpdatePerson(ctx context.Context, person persistence.Person) error {
	if person.ID == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE people
		SET identifier = ?, full_name = ?, role = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.helper.Exec(ctx, query,
		person.Identifier,
		person.FullName,
		person.Role,
		person.Status,
		person.UpdatedAt.UTC().Format(time.RFC3339),
		person.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetPerson retrieves a staff record by ID.
func (r *PersonRepository) GetPerson(ctx context.Context, id string) (persistence.Person, error) {
	if id == "" {
		return persistence.Person{}, persistence.ErrNotFound
	}
	row := r.helper.QueryRow(ctx, "SELECT "+personColumns+" FROM people WHERE id = ?", id)
	return scanPerson(row)
}

// GetPersonByIdentifier retrieves a staff record by its normalized identifier.
func (r *PersonRepository) GetPersonByIdentifier(ctx context.Context, identifier string) (persistence.Person, error) {
	if identifier == "" {
		return persistence.Person{}, persistence.ErrNotFound
	}
	row := r.helper.QueryRow(ctx, "SELECT "+personColumns+" FROM people WHERE identifier = ?", identifier)
	return scanPerson(row)
}

// ListPeople returns all staff records ordered by full name then ID.
func (r *PersonRepository) ListPeople(ctx context.Context) ([]persistence.Person, error) {
	rows, err := r.helper.Query(ctx, "SELECT "+personColumns+" FROM people ORDER BY full_name ASC, id ASC")
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var people []persistence.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return people, nil
}

// DeletePerson removes a staff record by ID.
func (r *PersonRepository) DeletePerson(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, "DELETE FROM people WHERE id = ?", id)
	if err != nil {
		return mapSQLiteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (persistence.Person, error) {
	var person persistence.Person
	var createdAt, updatedAt string

	err := row.Scan(
		&person.ID,
		&person.Identifier,
		&person.FullName,
		&person.Role,
		&person.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Person{}, persistence.ErrNotFound
		}
		return persistence.Person{}, mapSQLiteError(err)
	}

	if person.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Person{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if person.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Person{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return person, nil
}
