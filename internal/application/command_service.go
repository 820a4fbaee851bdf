package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/hr-assistant/internal/absence"
	"github.com/example/hr-assistant/internal/command"
)

// PersonDirectory resolves normalized identifiers against the staff directory.
type PersonDirectory interface {
	GetPersonByIdentifier(ctx context.Context, identifier string) (Person, error)
}

// AbsenceStore persists absence records produced by executed commands.
type AbsenceStore interface {
	CreateAbsence(ctx context.Context, record AbsenceRecord) error
	ListAbsencesForPerson(ctx context.Context, personID string) ([]AbsenceRecord, error)
}

// AuditLog records every command execution attempt.
type AuditLog interface {
	AppendEntry(ctx context.Context, entry AuditRecord) error
	ListEntries(ctx context.Context, limit int) ([]AuditRecord, error)
}

// ActionFunc applies the side effect of one command category and returns the
// ID of the record it created.
type ActionFunc func(ctx context.Context, req ActionRequest) (string, error)

// ActionRegistry maps command categories to executable actions.
type ActionRegistry struct {
	actions map[command.Category]ActionFunc
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[command.Category]ActionFunc)}
}

// Register binds an action to a category, replacing any previous binding.
func (r *ActionRegistry) Register(category command.Category, fn ActionFunc) {
	if r == nil || fn == nil {
		return
	}
	r.actions[category] = fn
}

// Lookup returns the action bound to a category.
func (r *ActionRegistry) Lookup(category command.Category) (ActionFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.actions[category]
	return fn, ok
}

const warnAbsenceOverlap = "overlaps an existing absence"

// CommandService drives the natural language pipeline: it parses operator
// text, resolves the referenced person, previews the resulting action, and
// dispatches registered actions with an audit trail.
type CommandService struct {
	parser           *command.Parser
	people           PersonDirectory
	absences         AbsenceStore
	audit            AuditLog
	actions          *ActionRegistry
	lookups          *lookupCache
	idGenerator      func() string
	now              func() time.Time
	maxCommandLength int
	logger           *slog.Logger
}

// CommandServiceConfig bundles the command service dependencies.
type CommandServiceConfig struct {
	Parser           *command.Parser
	People           PersonDirectory
	Absences         AbsenceStore
	Audit            AuditLog
	Actions          *ActionRegistry
	IDGenerator      func() string
	Now              func() time.Time
	MaxCommandLength int
	LookupCacheTTL   time.Duration
	Logger           *slog.Logger
}

// NewCommandService wires dependencies for the command service. When no
// registry is supplied every category dispatches the default absence
// creating action.
func NewCommandService(cfg CommandServiceConfig) *CommandService {
	if cfg.Parser == nil {
		cfg.Parser = command.NewParser(nil)
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = func() string { return "" }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxCommandLength <= 0 {
		cfg.MaxCommandLength = 500
	}

	s := &CommandService{
		parser:           cfg.Parser,
		people:           cfg.People,
		absences:         cfg.Absences,
		audit:            cfg.Audit,
		actions:          cfg.Actions,
		lookups:          newLookupCache(cfg.LookupCacheTTL, 0, cfg.Now),
		idGenerator:      cfg.IDGenerator,
		now:              cfg.Now,
		maxCommandLength: cfg.MaxCommandLength,
		logger:           defaultLogger(cfg.Logger),
	}

	if s.actions == nil {
		s.actions = NewActionRegistry()
		for _, category := range command.Categories() {
			s.actions.Register(category, s.createAbsenceAction)
		}
	}

	return s
}

// LookupCache exposes the directory cache so the person service can
// invalidate it on staff mutations.
func (s *CommandService) LookupCache() *lookupCache {
	if s == nil {
		return nil
	}
	return s.lookups
}

func (s *CommandService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CommandService", operation, attrs...)
}

// Preview parses the text and reports what executing it would do, without
// side effects.
func (s *CommandService) Preview(ctx context.Context, params PreviewParams) (PreviewResult, error) {
	if s == nil {
		return PreviewResult{}, fmt.Errorf("CommandService is nil")
	}
	if params.Principal.OperatorID == "" {
		return PreviewResult{}, ErrUnauthorized
	}
	if vErr := s.validateText(params.Text); vErr.HasErrors() {
		return PreviewResult{}, vErr
	}

	preview, err := s.buildPreview(ctx, params.Text)
	if err != nil {
		return PreviewResult{}, err
	}

	s.loggerWith(ctx, "Preview",
		"category", string(preview.Command.Category),
		"can_execute", preview.CanExecute,
	).InfoContext(ctx, "command previewed")

	return PreviewResult{Preview: preview}, nil
}

// Execute re-interprets the text, enforces the preview gate, dispatches the
// registered action, and appends an audit entry for the attempt.
func (s *CommandService) Execute(ctx context.Context, params ExecuteParams) (result ExecutionResult, err error) {
	if s == nil {
		err = fmt.Errorf("CommandService is nil")
		return
	}
	if params.Principal.OperatorID == "" {
		err = ErrUnauthorized
		return
	}

	logger := s.loggerWith(ctx, "Execute", "operator_id", params.Principal.OperatorID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "command execution failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"category", string(result.Preview.Command.Category),
			"absence_id", result.AbsenceID,
		).InfoContext(ctx, "command executed")
	}()

	if vErr := s.validateText(params.Text); vErr.HasErrors() {
		err = vErr
		return
	}

	var preview command.CommandPreview
	preview, err = s.buildPreview(ctx, params.Text)
	if err != nil {
		return
	}
	result.Preview = preview

	if !preview.CanExecute {
		s.appendAudit(ctx, logger, params, preview, "", AuditStatusFailed, rejectionMessage(preview))
		err = ErrCommandRejected
		return
	}

	action, ok := s.actions.Lookup(preview.Command.Category)
	if !ok {
		s.appendAudit(ctx, logger, params, preview, "", AuditStatusFailed, "no action registered for category")
		err = fmt.Errorf("no action registered for category %q", preview.Command.Category)
		return
	}

	req := ActionRequest{
		Principal: params.Principal,
		Command:   preview.Command,
		Person:    *preview.Person,
	}

	var recordID string
	recordID, err = action(ctx, req)
	if err != nil {
		s.appendAudit(ctx, logger, params, preview, recordID, AuditStatusFailed, err.Error())
		return
	}

	// The action already took effect; an audit failure must surface but
	// cannot be rolled back.
	if auditErr := s.appendAudit(ctx, logger, params, preview, recordID, AuditStatusExecuted, ""); auditErr != nil {
		err = fmt.Errorf("command applied but audit entry failed: %w", auditErr)
		return
	}

	result.AbsenceID = recordID
	result.Collection = preview.TargetCollection
	return
}

// ListAuditEntries returns recent execution attempts, newest first.
func (s *CommandService) ListAuditEntries(ctx context.Context, principal Principal, limit int) ([]AuditRecord, error) {
	if s == nil {
		return nil, fmt.Errorf("CommandService is nil")
	}
	if principal.OperatorID == "" {
		return nil, ErrUnauthorized
	}
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.ListEntries(ctx, limit)
}

func (s *CommandService) validateText(text string) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(text) == "" {
		vErr.add("text", "command text is required")
	} else if len([]rune(text)) > s.maxCommandLength {
		vErr.add("text", "command text is too long")
	}
	return vErr
}

func (s *CommandService) buildPreview(ctx context.Context, text string) (command.CommandPreview, error) {
	parsed := s.parser.Parse(text, s.now())

	var resolved *command.ResolvedPerson
	var personID string
	if parsed.Identifier != "" {
		person, found, err := s.lookupPerson(ctx, parsed.Identifier)
		if err != nil {
			return command.CommandPreview{}, err
		}
		if found {
			personID = person.ID
			resolved = &command.ResolvedPerson{
				ID:         person.ID,
				Identifier: person.Identifier,
				FullName:   person.FullName,
				Role:       person.Role,
				Status:     person.Status,
			}
		}
	}

	preview := command.BuildPreview(parsed, resolved)

	if personID != "" && parsed.StartDate != "" && s.absences != nil {
		overlaps, err := s.detectOverlaps(ctx, personID, parsed)
		if err != nil {
			return command.CommandPreview{}, err
		}
		if len(overlaps) > 0 {
			preview.Warnings = append(preview.Warnings, warnAbsenceOverlap)
		}
	}

	return preview, nil
}

func (s *CommandService) lookupPerson(ctx context.Context, identifier string) (Person, bool, error) {
	if person, found, cached := s.lookups.Get(identifier); cached {
		// A cached hit whose identifier no longer matches means the
		// record mutated underneath the cache; treat it as stale.
		if !found || person.Identifier == identifier {
			return person, found, nil
		}
	}

	if s.people == nil {
		return Person{}, false, nil
	}

	person, err := s.people.GetPersonByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.lookups.Store(identifier, Person{}, false)
			return Person{}, false, nil
		}
		return Person{}, false, err
	}

	s.lookups.Store(identifier, person, true)
	return person, true, nil
}

func (s *CommandService) detectOverlaps(ctx context.Context, personID string, parsed command.ParsedCommand) ([]absence.Overlap, error) {
	existing, err := s.absences.ListAbsencesForPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	records := make([]absence.Record, 0, len(existing))
	for _, rec := range existing {
		records = append(records, absence.Record{
			ID:        rec.ID,
			PersonID:  rec.PersonID,
			Category:  rec.Category,
			StartDate: rec.StartDate,
			EndDate:   rec.EndDate,
		})
	}

	candidate := absence.Record{
		PersonID:  personID,
		Category:  string(parsed.Category),
		StartDate: parsed.StartDate,
		EndDate:   parsed.EndDate,
	}
	return absence.DetectOverlaps(records, candidate), nil
}

// createAbsenceAction is the default action: it persists one absence record
// in the category's target collection.
func (s *CommandService) createAbsenceAction(ctx context.Context, req ActionRequest) (string, error) {
	if s.absences == nil {
		return "", fmt.Errorf("absence store not configured")
	}

	record := AbsenceRecord{
		ID:         s.idGenerator(),
		PersonID:   req.Person.ID,
		Category:   string(req.Command.Category),
		Collection: req.Command.Category.TargetCollection(),
		StartDate:  req.Command.StartDate,
		EndDate:    req.Command.EndDate,
		StartTime:  req.Command.StartTime,
		EndTime:    req.Command.EndTime,
		Reason:     req.Command.Reason,
		CreatedBy:  req.Principal.OperatorID,
		CreatedAt:  s.now(),
	}

	if err := s.absences.CreateAbsence(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (s *CommandService) appendAudit(ctx context.Context, logger *slog.Logger, params ExecuteParams, preview command.CommandPreview, recordID, status, message string) error {
	if s.audit == nil {
		return nil
	}

	payload, err := json.Marshal(map[string]any{
		"identifier": preview.Command.Identifier,
		"start_date": preview.Command.StartDate,
		"end_date":   preview.Command.EndDate,
		"start_time": preview.Command.StartTime,
		"end_time":   preview.Command.EndTime,
		"reason":     preview.Command.Reason,
		"collection": preview.TargetCollection,
		"record_id":  recordID,
	})
	if err != nil {
		payload = []byte("{}")
	}

	entry := AuditRecord{
		ID:           s.idGenerator(),
		RawText:      params.Text,
		Category:     string(preview.Command.Category),
		Payload:      string(payload),
		ExecutedBy:   params.Principal.OperatorID,
		Status:       status,
		ErrorMessage: message,
		CreatedAt:    s.now(),
	}

	if err := s.audit.AppendEntry(ctx, entry); err != nil {
		logger.ErrorContext(ctx, "failed to append audit entry", "error", err, "status", status)
		return err
	}
	return nil
}

func rejectionMessage(preview command.CommandPreview) string {
	parts := make([]string, 0, len(preview.Command.Errors)+2)
	parts = append(parts, preview.Command.Errors...)
	if validation := command.Validate(preview.Command); !validation.IsValid {
		for _, msg := range validation.Errors {
			if !containsString(parts, msg) {
				parts = append(parts, msg)
			}
		}
	}
	if preview.PersonNotFound {
		parts = append(parts, "person not found")
	}
	for _, warning := range preview.Warnings {
		if warning == warnAbsenceOverlap {
			continue
		}
		parts = append(parts, warning)
	}
	if len(parts) == 0 {
		return "command rejected"
	}
	return strings.Join(parts, "; ")
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
