package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/hr-assistant/internal/application"
	"github.com/example/hr-assistant/internal/command"
	"github.com/example/hr-assistant/internal/persistence"
	"github.com/example/hr-assistant/internal/rut"
)

var (
	personCounter   uint64
	operatorCounter uint64
	absenceCounter  uint64
)

// referenceTime is a Wednesday so relative weekday phrases resolve the same
// way in every test.
var referenceTime = time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ValidRUT returns a normalized RUT whose check character matches the given
// body index, producing stable, checksum correct identifiers.
func ValidRUT(index uint64) string {
	body := fmt.Sprintf("%d", 10000000+index)
	check, ok := rut.CheckDigit(body)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s-%c", body, check)
}

// ---------------------------- Person fixtures ----------------------------

// PersonFixture represents a deterministic staff record for tests.
type PersonFixture struct {
	ID         string
	Identifier string
	FullName   string
	Role       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PersonOption configures the generated person fixture.
type PersonOption func(*PersonFixture)

// NewPersonFixture returns a deterministic person fixture with optional overrides.
func NewPersonFixture(opts ...PersonOption) PersonFixture {
	idx := atomic.AddUint64(&personCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := PersonFixture{
		ID:         fmt.Sprintf("person-%03d", idx),
		Identifier: ValidRUT(idx),
		FullName:   fmt.Sprintf("Persona %03d", idx),
		Role:       "analista",
		Status:     command.StatusActive,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithPersonID overrides the generated person ID.
func WithPersonID(id string) PersonOption {
	return func(f *PersonFixture) {
		f.ID = id
	}
}

// WithPersonIdentifier overrides the generated identifier.
func WithPersonIdentifier(identifier string) PersonOption {
	return func(f *PersonFixture) {
		f.Identifier = identifier
	}
}

// WithPersonFullName overrides the generated full name.
func WithPersonFullName(name string) PersonOption {
	return func(f *PersonFixture) {
		f.FullName = name
	}
}

// WithPersonRole overrides the generated role.
func WithPersonRole(role string) PersonOption {
	return func(f *PersonFixture) {
		f.Role = role
	}
}

// WithPersonStatus overrides the generated status.
func WithPersonStatus(status string) PersonOption {
	return func(f *PersonFixture) {
		f.Status = status
	}
}

// Application returns the fixture as an application.Person value.
func (f PersonFixture) Application() application.Person {
	return application.Person{
		ID:         f.ID,
		Identifier: f.Identifier,
		FullName:   f.FullName,
		Role:       f.Role,
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Person value.
func (f PersonFixture) Persistence() persistence.Person {
	return persistence.Person{
		ID:         f.ID,
		Identifier: f.Identifier,
		FullName:   f.FullName,
		Role:       f.Role,
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Resolved returns the fixture as a command.ResolvedPerson value.
func (f PersonFixture) Resolved() command.ResolvedPerson {
	return command.ResolvedPerson{
		ID:         f.ID,
		Identifier: f.Identifier,
		FullName:   f.FullName,
		Role:       f.Role,
		Status:     f.Status,
	}
}

// Input returns the fixture as an application.PersonInput.
func (f PersonFixture) Input() application.PersonInput {
	return application.PersonInput{
		Identifier: f.Identifier,
		FullName:   f.FullName,
		Role:       f.Role,
		Status:     f.Status,
	}
}

// --------------------------- Operator fixtures ---------------------------

// OperatorFixture represents a deterministic operator account.
type OperatorFixture struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OperatorOption configures the generated operator fixture.
type OperatorOption func(*OperatorFixture)

// NewOperatorFixture returns a deterministic operator fixture with optional overrides.
func NewOperatorFixture(opts ...OperatorOption) OperatorFixture {
	idx := atomic.AddUint64(&operatorCounter, 1)
	id := fmt.Sprintf("operator-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := OperatorFixture{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		DisplayName:  fmt.Sprintf("Operator %03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithOperatorID overrides the generated operator ID.
func WithOperatorID(id string) OperatorOption {
	return func(f *OperatorFixture) {
		f.ID = id
	}
}

// WithOperatorEmail overrides the generated email address.
func WithOperatorEmail(email string) OperatorOption {
	return func(f *OperatorFixture) {
		f.Email = email
	}
}

// WithOperatorAdmin sets the admin flag on the fixture.
func WithOperatorAdmin(isAdmin bool) OperatorOption {
	return func(f *OperatorFixture) {
		f.IsAdmin = isAdmin
	}
}

// WithOperatorDisabled sets the disabled flag on the fixture.
func WithOperatorDisabled(disabled bool) OperatorOption {
	return func(f *OperatorFixture) {
		f.Disabled = disabled
	}
}

// WithOperatorPasswordHash overrides the generated password hash.
func WithOperatorPasswordHash(hash string) OperatorOption {
	return func(f *OperatorFixture) {
		f.PasswordHash = hash
	}
}

// Application returns the fixture as an application.Operator value.
func (f OperatorFixture) Application() application.Operator {
	return application.Operator{
		ID:          f.ID,
		Email:       f.Email,
		DisplayName: f.DisplayName,
		IsAdmin:     f.IsAdmin,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Credentials returns the fixture as application.OperatorCredentials.
func (f OperatorFixture) Credentials() application.OperatorCredentials {
	return application.OperatorCredentials{
		Operator:     f.Application(),
		PasswordHash: f.PasswordHash,
		Disabled:     f.Disabled,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f OperatorFixture) Principal() application.Principal {
	return application.Principal{OperatorID: f.ID, IsAdmin: f.IsAdmin}
}

// Persistence returns the fixture as a persistence.Operator value.
func (f OperatorFixture) Persistence() persistence.Operator {
	return persistence.Operator{
		ID:           f.ID,
		Email:        f.Email,
		DisplayName:  f.DisplayName,
		PasswordHash: f.PasswordHash,
		IsAdmin:      f.IsAdmin,
		Disabled:     f.Disabled,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// ---------------------------- Absence fixtures ---------------------------

// AbsenceFixture represents a deterministic absence record.
type AbsenceFixture struct {
	ID        string
	PersonID  string
	Category  command.Category
	StartDate string
	EndDate   string
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// AbsenceOption configures the generated absence fixture.
type AbsenceOption func(*AbsenceFixture)

// NewAbsenceFixture returns a deterministic absence fixture with optional overrides.
func NewAbsenceFixture(opts ...AbsenceOption) AbsenceFixture {
	idx := atomic.AddUint64(&absenceCounter, 1)
	start := referenceTime.AddDate(0, 0, int(idx))
	fixture := AbsenceFixture{
		ID:        fmt.Sprintf("absence-%03d", idx),
		PersonID:  fmt.Sprintf("person-%03d", idx),
		Category:  command.CategoryVacation,
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 4).Format("2006-01-02"),
		CreatedBy: "operator-001",
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAbsencePerson sets the owning person ID.
func WithAbsencePerson(personID string) AbsenceOption {
	return func(f *AbsenceFixture) {
		f.PersonID = personID
	}
}

// WithAbsenceCategory sets the category.
func WithAbsenceCategory(category command.Category) AbsenceOption {
	return func(f *AbsenceFixture) {
		f.Category = category
	}
}

// WithAbsenceDates sets the start and end dates (YYYY-MM-DD).
func WithAbsenceDates(start, end string) AbsenceOption {
	return func(f *AbsenceFixture) {
		f.StartDate = start
		f.EndDate = end
	}
}

// ApplicationRecord returns the fixture as an application.AbsenceRecord.
func (f AbsenceFixture) ApplicationRecord() application.AbsenceRecord {
	return application.AbsenceRecord{
		ID:         f.ID,
		PersonID:   f.PersonID,
		Category:   string(f.Category),
		Collection: f.Category.TargetCollection(),
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Reason:     f.Reason,
		CreatedBy:  f.CreatedBy,
		CreatedAt:  f.CreatedAt,
	}
}

// PersistenceRecord returns the fixture as a persistence.Absence.
func (f AbsenceFixture) PersistenceRecord() persistence.Absence {
	return persistence.Absence{
		ID:         f.ID,
		PersonID:   f.PersonID,
		Category:   string(f.Category),
		Collection: f.Category.TargetCollection(),
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Reason:     f.Reason,
		CreatedBy:  f.CreatedBy,
		CreatedAt:  f.CreatedAt,
	}
}
