package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/hr-assistant/internal/persistence"
)

// AuditRepository implements persistence.AuditRepository using SQLite.
type AuditRepository struct {
	helper *QueryHelper
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(pool *ConnectionPool) *AuditRepository {
	return &AuditRepository{helper: NewQueryHelper(pool)}
}

const auditColumns = "id, raw_text, category, payload, executed_by, status, error_message, created_at"

// AppendEntry records a command execution attempt.
func (r *AuditRepository) AppendEntry(ctx context.Context, entry persistence.AuditEntry) error {
	if entry.ID == "" || entry.Status == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO audit_entries (` + auditColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.helper.Exec(ctx, query,
		entry.ID,
		entry.RawText,
		entry.Category,
		entry.Payload,
		entry.ExecutedBy,
		entry.Status,
		entry.ErrorMessage,
		entry.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapSQLiteError(err)
}

// ListEntries returns the most recent audit entries, newest first. A
// non-positive limit returns everything.
func (r *AuditRepository) ListEntries(ctx context.Context, limit int) ([]persistence.AuditEntry, error) {
	query := "SELECT " + auditColumns + " FROM audit_entries ORDER BY created_at DESC, id DESC"
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var entries []persistence.AuditEntry
	for rows.Next() {
		var entry persistence.AuditEntry
		var createdAt string
		err := rows.Scan(
			&entry.ID,
			&entry.RawText,
			&entry.Category,
			&entry.Payload,
			&entry.ExecutedBy,
			&entry.Status,
			&entry.ErrorMessage,
			&createdAt,
		)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		if entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return entries, nil
}
