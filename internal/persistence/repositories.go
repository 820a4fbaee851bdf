package persistence

import (
	"context"
	"time"
)

// PersonRepository exposes CRUD operations for staff records.
type PersonRepository interface {
	CreatePerson(ctx context.Context, person Person) error
	UpdatePerson(ctx context.Context, person Person) error
	GetPerson(ctx context.Context, id string) (Person, error)
	GetPersonByIdentifier(ctx context.Context, identifier string) (Person, error)
	ListPeople(ctx context.Context) ([]Person, error)
	DeletePerson(ctx context.Context, id string) error
}

// AbsenceRepository stores registered absences and authorizations.
type AbsenceRepository interface {
	CreateAbsence(ctx context.Context, absence Absence) error
	ListAbsencesForPerson(ctx context.Context, personID string) ([]Absence, error)
}

// AuditRepository stores command execution audit entries.
type AuditRepository interface {
	AppendEntry(ctx context.Context, entry AuditEntry) error
	ListEntries(ctx context.Context, limit int) ([]AuditEntry, error)
}

// OperatorRepository exposes CRUD operations for operator accounts.
type OperatorRepository interface {
	CreateOperator(ctx context.Context, operator Operator) error
	UpdateOperator(ctx context.Context, operator Operator) error
	GetOperator(ctx context.Context, id string) (Operator, error)
	GetOperatorByEmail(ctx context.Context, email string) (Operator, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	UpdateSession(ctx context.Context, session Session) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
