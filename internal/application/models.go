package application

import (
	"time"

	"github.com/example/hr-assistant/internal/command"
)

// Principal represents the authenticated operator invoking a service method.
type Principal struct {
	OperatorID string
	IsAdmin    bool
}

// PersonInput captures caller provided staff attributes.
type PersonInput struct {
	Identifier string
	FullName   string
	Role       string
	Status     string
}

// Person represents a staff record exposed by the application services.
type Person struct {
	ID         string
	Identifier string
	FullName   string
	Role       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreatePersonParams wraps the data required to register a staff record.
type CreatePersonParams struct {
	Principal Principal
	Input     PersonInput
}

// UpdatePersonParams wraps the data required to update a staff record.
type UpdatePersonParams struct {
	Principal Principal
	PersonID  string
	Input     PersonInput
}

// AbsenceRecord represents a registered absence or authorization. Dates use
// the YYYY-MM-DD form and times HH:MM; empty strings mean not applicable.
type AbsenceRecord struct {
	ID         string
	PersonID   string
	Category   string
	Collection string
	StartDate  string
	EndDate    string
	StartTime  string
	EndTime    string
	Reason     string
	CreatedBy  string
	CreatedAt  time.Time
}

// AuditRecord captures one command execution attempt for the audit trail.
type AuditRecord struct {
	ID           string
	RawText      string
	Category     string
	Payload      string
	ExecutedBy   string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// Audit entry statuses.
const (
	AuditStatusExecuted = "executed"
	AuditStatusFailed   = "failed"
)

// PreviewParams wraps the data required to preview a natural language command.
type PreviewParams struct {
	Principal Principal
	Text      string
}

// PreviewResult carries the interpreted command and its resolved context.
type PreviewResult struct {
	Preview command.CommandPreview
}

// ExecuteParams wraps the data required to execute a natural language command.
type ExecuteParams struct {
	Principal Principal
	Text      string
}

// ExecutionResult reports the outcome of a dispatched command.
type ExecutionResult struct {
	Preview    command.CommandPreview
	AbsenceID  string
	Collection string
}

// ActionRequest is handed to a registered action when a command executes.
type ActionRequest struct {
	Principal Principal
	Command   command.ParsedCommand
	Person    command.ResolvedPerson
}

// Operator represents an operator account exposed by the application services.
type Operator struct {
	ID          string
	Email       string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OperatorCredentials models the authentication attributes persisted for an operator.
type OperatorCredentials struct {
	Operator     Operator
	PasswordHash string
	Disabled     bool
}

// Session represents an authenticated session issued to an operator.
type Session struct {
	ID         string
	OperatorID string
	Token      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	RevokedAt  *time.Time
}

// AuthenticateParams captures the data required to authenticate an operator.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	Operator Operator
	Session  Session
}

// RefreshSessionParams captures the data required to refresh an existing session.
type RefreshSessionParams struct {
	Token string
}

// RefreshSessionResult captures the outcome of rotating a session token.
type RefreshSessionResult struct {
	Session Session
}
