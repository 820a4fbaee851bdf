package persistence

import "time"

// Person represents a staff record in the directory.
type Person struct {
	ID         string
	Identifier string
	FullName   string
	Role       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Absence represents a registered absence or authorization. StartDate and
// EndDate use the YYYY-MM-DD form, StartTime and EndTime HH:MM; empty
// strings mean the field does not apply.
type Absence struct {
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

// AuditEntry records one command execution attempt. Payload carries the
// dispatched action request as JSON.
type AuditEntry struct {
	ID           string
	RawText      string
	Category     string
	Payload      string
	ExecutedBy   string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// Operator represents an account allowed to drive the assistant.
type Operator struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authentication session persisted for an operator.
type Session struct {
	ID         string
	OperatorID string
	Token      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	RevokedAt  *time.Time
}
