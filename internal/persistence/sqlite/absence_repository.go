package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/hr-assistant/internal/persistence"
)

// AbsenceRepository implements persistence.AbsenceRepository using SQLite.
type AbsenceRepository struct {
	helper *QueryHelper
}

// NewAbsenceRepository creates a new SQLite absence repository.
func NewAbsenceRepository(pool *ConnectionPool) *AbsenceRepository {
	return &AbsenceRepository{helper: NewQueryHelper(pool)}
}

const absenceColumns = "id, person_id, category, collection, start_date, end_date, start_time, end_time, reason, created_by, created_at"

// CreateAbsence inserts a new absence record.
func (r *AbsenceRepository) CreateAbsence(ctx context.Context, absence persistence.Absence) error {
	if absence.ID == "" || absence.PersonID == "" || absence.StartDate == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO absences (` + absenceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.helper.Exec(ctx, query,
		absence.ID,
		absence.PersonID,
		absence.Category,
		absence.Collection,
		absence.StartDate,
		absence.EndDate,
		absence.StartTime,
		absence.EndTime,
		absence.Reason,
		absence.CreatedBy,
		absence.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapSQLiteError(err)
}

// ListAbsencesForPerson returns a person's absences ordered by start date.
func (r *AbsenceRepository) ListAbsencesForPerson(ctx context.Context, personID string) ([]persistence.Absence, error) {
	if personID == "" {
		return nil, nil
	}

	query := "SELECT " + absenceColumns + " FROM absences WHERE person_id = ? ORDER BY start_date ASC, id ASC"
	rows, err := r.helper.Query(ctx, query, personID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var absences []persistence.Absence
	for rows.Next() {
		var absence persistence.Absence
		var createdAt string
		err := rows.Scan(
			&absence.ID,
			&absence.PersonID,
			&absence.Category,
			&absence.Collection,
			&absence.StartDate,
			&absence.EndDate,
			&absence.StartTime,
			&absence.EndTime,
			&absence.Reason,
			&absence.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		if absence.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		absences = append(absences, absence)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return absences, nil
}
