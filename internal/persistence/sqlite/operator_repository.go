package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/hr-assistant/internal/persistence"
)

// OperatorRepository implements persistence.OperatorRepository using SQLite.
type OperatorRepository struct {
	helper *QueryHelper
}

// NewOperatorRepository creates a new SQLite operator repository.
func NewOperatorRepository(pool *ConnectionPool) *OperatorRepository {
	return &OperatorRepository{helper: NewQueryHelper(pool)}
}

const operatorColumns = "id, email, display_name, password_hash, is_admin, disabled, created_at, updated_at"

// CreateOperator inserts a new operator account.
func (r *OperatorRepository) CreateOperator(ctx context.Context, operator persistence.Operator) error {
	if operator.ID == "" || strings.TrimSpace(operator.Email) == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO operators (` + operatorColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.helper.Exec(ctx, query,
		operator.ID,
		strings.ToLower(strings.TrimSpace(operator.Email)),
		operator.DisplayName,
		operator.PasswordHash,
		boolToInt(operator.IsAdmin),
		boolToInt(operator.Disabled),
		operator.CreatedAt.UTC().Format(time.RFC3339),
		operator.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return mapSQLiteError(err)
}

// UpdateOperator updates an existing operator account.
func (r *OperatorRepository) UpdateOperator(ctx context.Context, operator persistence.Operator) error {
	if operator.ID == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE operators
		SET email = ?, display_name = ?, password_hash = ?, is_admin = ?, disabled = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.helper.Exec(ctx, query,
		strings.ToLower(strings.TrimSpace(operator.Email)),
		operator.DisplayName,
		operator.PasswordHash,
		boolToInt(operator.IsAdmin),
		boolToInt(operator.Disabled),
		operator.UpdatedAt.UTC().Format(time.RFC3339),
		operator.ID,
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

// GetOperator retrieves an operator account by ID.
func (r *OperatorRepository) GetOperator(ctx context.Context, id string) (persistence.Operator, error) {
	if id == "" {
		return persistence.Operator{}, persistence.ErrNotFound
	}
	row := r.helper.QueryRow(ctx, "SELECT "+operatorColumns+" FROM operators WHERE id = ?", id)
	return scanOperator(row)
}

// GetOperatorByEmail retrieves an operator account by email. Lookup is
// case-insensitive because emails are stored lowercased.
func (r *OperatorRepository) GetOperatorByEmail(ctx context.Context, email string) (persistence.Operator, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return persistence.Operator{}, persistence.ErrNotFound
	}
	row := r.helper.QueryRow(ctx, "SELECT "+operatorColumns+" FROM operators WHERE email = ?", normalized)
	return scanOperator(row)
}

func scanOperator(row rowScanner) (persistence.Operator, error) {
	var operator persistence.Operator
	var isAdmin, disabled int
	var createdAt, updatedAt string

	err := row.Scan(
		&operator.ID,
		&operator.Email,
		&operator.DisplayName,
		&operator.PasswordHash,
		&isAdmin,
		&disabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Operator{}, persistence.ErrNotFound
		}
		return persistence.Operator{}, mapSQLiteError(err)
	}

	operator.IsAdmin = isAdmin != 0
	operator.Disabled = disabled != 0
	if operator.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Operator{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if operator.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Operator{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return operator, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
