package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/hr-assistant/internal/command"
	"github.com/example/hr-assistant/internal/rut"
)

// PersonRepository captures the persistence operations needed by the person service.
type PersonRepository interface {
	CreatePerson(ctx context.Context, person Person) (Person, error)
	GetPerson(ctx context.Context, id string) (Person, error)
	GetPersonByIdentifier(ctx context.Context, identifier string) (Person, error)
	UpdatePerson(ctx context.Context, person Person) (Person, error)
	DeletePerson(ctx context.Context, id string) error
	ListPeople(ctx context.Context) ([]Person, error)
}

// PersonService orchestrates validation, authorization, and persistence for
// the staff directory.
type PersonService struct {
	people      PersonRepository
	lookups     *lookupCache
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewPersonService wires dependencies for the person service.
func NewPersonService(people PersonRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *PersonService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &PersonService{
		people:      people,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// AttachLookupCache lets the command service share its directory lookup cache
// so staff mutations invalidate stale entries.
func (s *PersonService) AttachLookupCache(cache *lookupCache) {
	if s != nil {
		s.lookups = cache
	}
}

func (s *PersonService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PersonService", operation, attrs...)
}

// CreatePerson validates input and persists a new staff record for administrators.
func (s *PersonService) CreatePerson(ctx context.Context, params CreatePersonParams) (Person, error) {
	if s == nil {
		return Person{}, fmt.Errorf("PersonService is nil")
	}
	if !params.Principal.IsAdmin {
		return Person{}, ErrUnauthorized
	}

	normalized := normalizePersonInput(params.Input)
	vErr := validatePersonInput(normalized)
	if vErr.HasErrors() {
		return Person{}, vErr
	}

	person := Person{
		ID:         s.idGenerator(),
		Identifier: normalized.Identifier,
		FullName:   normalized.FullName,
		Role:       normalized.Role,
		Status:     normalized.Status,
		CreatedAt:  s.now(),
	}
	person.UpdatedAt = person.CreatedAt

	if s.people == nil {
		return person, nil
	}

	persisted, err := s.people.CreatePerson(ctx, person)
	if err != nil {
		return Person{}, err
	}

	s.lookups.Invalidate()
	s.loggerWith(ctx, "CreatePerson", "person_id", persisted.ID).InfoContext(ctx, "person created")
	return persisted, nil
}

// UpdatePerson validates input and updates an existing staff record for administrators.
func (s *PersonService) UpdatePerson(ctx context.Context, params UpdatePersonParams) (Person, error) {
	if s == nil {
		return Person{}, fmt.Errorf("PersonService is nil")
	}
	if !params.Principal.IsAdmin {
		return Person{}, ErrUnauthorized
	}
	if s.people == nil {
		return Person{}, fmt.Errorf("person repository not configured")
	}

	existing, err := s.people.GetPerson(ctx, params.PersonID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Person{}, ErrNotFound
		}
		return Person{}, err
	}

	normalized := normalizePersonInput(params.Input)
	vErr := validatePersonInput(normalized)
	if vErr.HasErrors() {
		return Person{}, vErr
	}

	updated := existing
	updated.Identifier = normalized.Identifier
	updated.FullName = normalized.FullName
	updated.Role = normalized.Role
	updated.Status = normalized.Status
	updated.UpdatedAt = s.now()

	persisted, err := s.people.UpdatePerson(ctx, updated)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Person{}, ErrNotFound
		}
		return Person{}, err
	}

	s.lookups.Invalidate()
	s.loggerWith(ctx, "UpdatePerson", "person_id", persisted.ID).InfoContext(ctx, "person updated")
	return persisted, nil
}

// DeletePerson removes a staff record when requested by an administrator.
func (s *PersonService) DeletePerson(ctx context.Context, principal Principal, personID string) error {
	if s == nil {
		return fmt.Errorf("PersonService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if s.people == nil {
		return fmt.Errorf("person repository not configured")
	}

	if err := s.people.DeletePerson(ctx, personID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.lookups.Invalidate()
	s.loggerWith(ctx, "DeletePerson", "person_id", personID).InfoContext(ctx, "person deleted")
	return nil
}

// GetPerson returns a single staff record for any authenticated operator.
func (s *PersonService) GetPerson(ctx context.Context, principal Principal, personID string) (Person, error) {
	if s == nil {
		return Person{}, fmt.Errorf("PersonService is nil")
	}
	if principal.OperatorID == "" {
		return Person{}, ErrUnauthorized
	}
	if s.people == nil {
		return Person{}, ErrNotFound
	}
	return s.people.GetPerson(ctx, personID)
}

// FindByIdentifier looks up a staff record by its normalized identifier.
func (s *PersonService) FindByIdentifier(ctx context.Context, principal Principal, identifier string) (Person, error) {
	if s == nil {
		return Person{}, fmt.Errorf("PersonService is nil")
	}
	if principal.OperatorID == "" {
		return Person{}, ErrUnauthorized
	}
	if s.people == nil {
		return Person{}, ErrNotFound
	}

	normalized := rut.Normalize(identifier)
	if normalized == "" {
		return Person{}, ErrNotFound
	}
	return s.people.GetPersonByIdentifier(ctx, normalized)
}

// ListPeople returns all staff records ordered by full name.
func (s *PersonService) ListPeople(ctx context.Context, principal Principal) ([]Person, error) {
	if s == nil {
		return nil, fmt.Errorf("PersonService is nil")
	}
	if principal.OperatorID == "" {
		return nil, ErrUnauthorized
	}
	if s.people == nil {
		return nil, nil
	}

	people, err := s.people.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Person, len(people))
	copy(out, people)

	sort.Slice(out, func(i, j int) bool {
		if strings.EqualFold(out[i].FullName, out[j].FullName) {
			return out[i].ID < out[j].ID
		}
		return strings.ToLower(out[i].FullName) < strings.ToLower(out[j].FullName)
	})

	return out, nil
}

func normalizePersonInput(input PersonInput) PersonInput {
	identifier := rut.Normalize(input.Identifier)

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = command.StatusActive
	}

	return PersonInput{
		Identifier: identifier,
		FullName:   strings.TrimSpace(input.FullName),
		Role:       strings.TrimSpace(input.Role),
		Status:     status,
	}
}

func validatePersonInput(input PersonInput) *ValidationError {
	vErr := &ValidationError{}

	if input.Identifier == "" {
		vErr.add("identifier", "identifier is required")
	} else if !rut.Validate(input.Identifier) {
		vErr.add("identifier", "identifier checksum is invalid")
	}

	if input.FullName == "" {
		vErr.add("full_name", "full name is required")
	}

	switch input.Status {
	case command.StatusActive, command.StatusInactive, command.StatusTerminated:
	default:
		vErr.add("status", "status is not recognized")
	}

	return vErr
}
