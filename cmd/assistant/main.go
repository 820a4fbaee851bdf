package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/hr-assistant/internal/application"
	"github.com/example/hr-assistant/internal/config"
	httptransport "github.com/example/hr-assistant/internal/http"
	"github.com/example/hr-assistant/internal/persistence"
	"github.com/example/hr-assistant/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	personRepo := newPersonRepositoryAdapter(sqlite.NewPersonRepository(pool))
	absenceStore := newAbsenceStoreAdapter(sqlite.NewAbsenceRepository(pool))
	auditLog := newAuditLogAdapter(sqlite.NewAuditRepository(pool))
	operatorRepo := sqlite.NewOperatorRepository(pool)
	credentialStore := newCredentialStoreAdapter(operatorRepo)
	sessionRepo := newSessionRepositoryAdapter(sqlite.NewSessionRepository(pool))

	if err := ensureBootstrapOperator(context.Background(), operatorRepo, cfg, idGenerator, now, logger); err != nil {
		logger.Error("failed to bootstrap administrator account", "error", err)
		os.Exit(1)
	}

	commandService := application.NewCommandService(application.CommandServiceConfig{
		People:           personRepo,
		Absences:         absenceStore,
		Audit:            auditLog,
		IDGenerator:      idGenerator,
		Now:              now,
		MaxCommandLength: cfg.MaxCommandLength,
		LookupCacheTTL:   cfg.LookupCacheTTL,
		Logger:           logger,
	})
	personService := application.NewPersonService(personRepo, idGenerator, now, logger)
	personService.AttachLookupCache(commandService.LookupCache())
	authService := application.NewAuthServiceWithLogger(credentialStore, sessionRepo, nil, tokenGenerator, now, cfg.SessionTTL, logger)

	authHandler := httptransport.NewAuthHandler(authService, logger)
	commandHandler := httptransport.NewCommandHandler(commandService, logger)
	personHandler := httptransport.NewPersonHandler(personService, logger)
	auditHandler := httptransport.NewAuditHandler(commandService, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:     authHandler,
		Commands: commandHandler,
		People:   personHandler,
		Audit:    auditHandler,
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Session creation is the only endpoint reachable without a token.
		if r.Method == http.MethodPost && strings.EqualFold(r.URL.Path, "/sessions") {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("assistant API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// ensureBootstrapOperator seeds the configured administrator account on first
// start so a fresh deployment can log in.
func ensureBootstrapOperator(ctx context.Context, repo *sqlite.OperatorRepository, cfg config.Config, idGenerator func() string, now func() time.Time, logger *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	if _, err := repo.GetOperatorByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return err
	}

	hash, err := application.HashPassword(cfg.AdminPassword, application.DefaultPasswordParams)
	if err != nil {
		return err
	}

	created := now()
	operator := persistence.Operator{
		ID:           idGenerator(),
		Email:        cfg.AdminEmail,
		DisplayName:  cfg.AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := repo.CreateOperator(ctx, operator); err != nil {
		return err
	}

	logger.Info("administrator account bootstrapped", "email", cfg.AdminEmail)
	return nil
}

// mapPersistenceError translates storage sentinels into application sentinels.
func mapPersistenceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return application.ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return application.ErrAlreadyExists
	default:
		return err
	}
}

type personRepositoryAdapter struct {
	repo *sqlite.PersonRepository
}

func newPersonRepositoryAdapter(repo *sqlite.PersonRepository) *personRepositoryAdapter {
	return &personRepositoryAdapter{repo: repo}
}

func (a *personRepositoryAdapter) CreatePerson(ctx context.Context, person application.Person) (application.Person, error) {
	if err := a.repo.CreatePerson(ctx, toPersistencePerson(person)); err != nil {
		return application.Person{}, mapPersistenceError(err)
	}
	stored, err := a.repo.GetPerson(ctx, person.ID)
	if err != nil {
		return application.Person{}, mapPersistenceError(err)
	}
	return toApplicationPerson(stored), nil
}

func (a *personRepositoryAdapter) GetPerson(ctx context.Context, id string) (application.Person, error) {
	stored, err := a.repo.GetPerson(ctx, id)
	if err != nil {
		return application.Person{}, mapPersistenceError(err)
	}
	return toApplicationPerson(stored), nil
}

func (a *personRepositoryAdapter) GetPersonByIdentifier(ctx context.Context, identifier string) (application.Person, error) {
	stored, err := a.repo.GetPersonByIdentifier(ctx, identifier)
	if err != nil {
		return application.Person{}, mapPersistenceError(err)
	}
	return toApplicationPerson(stored), nil
}

func (a *personRepositoryAdapter) UpdatePerson(ctx context.Context, person application.Person) (application.Person, error) {
	if err := a.repo.UpdatePerson(ctx, toPersistencePerson(person)); err != nil {
		return application.Person{}, mapPersistenceError(err)
	}
	stored, err := a.repo.GetPerson(ctx, person.ID)
	if err != nil {
		return application.Person{}, mapPersistenceError(err)
	}
	return toApplicationPerson(stored), nil
}

func (a *personRepositoryAdapter) DeletePerson(ctx context.Context, id string) error {
	return mapPersistenceError(a.repo.DeletePerson(ctx, id))
}

func (a *personRepositoryAdapter) ListPeople(ctx context.Context) ([]application.Person, error) {
	models, err := a.repo.ListPeople(ctx)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	people := make([]application.Person, 0, len(models))
	for _, model := range models {
		people = append(people, toApplicationPerson(model))
	}
	return people, nil
}

type absenceStoreAdapter struct {
	repo *sqlite.AbsenceRepository
}

func newAbsenceStoreAdapter(repo *sqlite.AbsenceRepository) *absenceStoreAdapter {
	return &absenceStoreAdapter{repo: repo}
}

func (a *absenceStoreAdapter) CreateAbsence(ctx context.Context, record application.AbsenceRecord) error {
	return mapPersistenceError(a.repo.CreateAbsence(ctx, persistence.Absence{
		ID:         record.ID,
		PersonID:   record.PersonID,
		Category:   record.Category,
		Collection: record.Collection,
		StartDate:  record.StartDate,
		EndDate:    record.EndDate,
		StartTime:  record.StartTime,
		EndTime:    record.EndTime,
		Reason:     record.Reason,
		CreatedBy:  record.CreatedBy,
		CreatedAt:  record.CreatedAt,
	}))
}

func (a *absenceStoreAdapter) ListAbsencesForPerson(ctx context.Context, personID string) ([]application.AbsenceRecord, error) {
	models, err := a.repo.ListAbsencesForPerson(ctx, personID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	records := make([]application.AbsenceRecord, 0, len(models))
	for _, model := range models {
		records = append(records, application.AbsenceRecord{
			ID:         model.ID,
			PersonID:   model.PersonID,
			Category:   model.Category,
			Collection: model.Collection,
			StartDate:  model.StartDate,
			EndDate:    model.EndDate,
			StartTime:  model.StartTime,
			EndTime:    model.EndTime,
			Reason:     model.Reason,
			CreatedBy:  model.CreatedBy,
			CreatedAt:  model.CreatedAt,
		})
	}
	return records, nil
}

type auditLogAdapter struct {
	repo *sqlite.AuditRepository
}

func newAuditLogAdapter(repo *sqlite.AuditRepository) *auditLogAdapter {
	return &auditLogAdapter{repo: repo}
}

func (a *auditLogAdapter) AppendEntry(ctx context.Context, entry application.AuditRecord) error {
	return mapPersistenceError(a.repo.AppendEntry(ctx, persistence.AuditEntry{
		ID:           entry.ID,
		RawText:      entry.RawText,
		Category:     entry.Category,
		Payload:      entry.Payload,
		ExecutedBy:   entry.ExecutedBy,
		Status:       entry.Status,
		ErrorMessage: entry.ErrorMessage,
		CreatedAt:    entry.CreatedAt,
	}))
}

func (a *auditLogAdapter) ListEntries(ctx context.Context, limit int) ([]application.AuditRecord, error) {
	models, err := a.repo.ListEntries(ctx, limit)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	entries := make([]application.AuditRecord, 0, len(models))
	for _, model := range models {
		entries = append(entries, application.AuditRecord{
			ID:           model.ID,
			RawText:      model.RawText,
			Category:     model.Category,
			Payload:      model.Payload,
			ExecutedBy:   model.ExecutedBy,
			Status:       model.Status,
			ErrorMessage: model.ErrorMessage,
			CreatedAt:    model.CreatedAt,
		})
	}
	return entries, nil
}

type credentialStoreAdapter struct {
	repo *sqlite.OperatorRepository
}

func newCredentialStoreAdapter(repo *sqlite.OperatorRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetOperatorCredentialsByEmail(ctx context.Context, email string) (application.OperatorCredentials, error) {
	stored, err := a.repo.GetOperatorByEmail(ctx, email)
	if err != nil {
		return application.OperatorCredentials{}, mapPersistenceError(err)
	}
	return application.OperatorCredentials{
		Operator:     toApplicationOperator(stored),
		PasswordHash: stored.PasswordHash,
		Disabled:     stored.Disabled,
	}, nil
}

func (a *credentialStoreAdapter) GetOperator(ctx context.Context, id string) (application.Operator, error) {
	stored, err := a.repo.GetOperator(ctx, id)
	if err != nil {
		return application.Operator{}, mapPersistenceError(err)
	}
	return toApplicationOperator(stored), nil
}

type sessionRepositoryAdapter struct {
	repo *sqlite.SessionRepository
}

func newSessionRepositoryAdapter(repo *sqlite.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.CreateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, mapPersistenceError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, token string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, mapPersistenceError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) UpdateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.UpdateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, mapPersistenceError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	stored, err := a.repo.RevokeSession(ctx, token, revokedAt)
	if err != nil {
		return application.Session{}, mapPersistenceError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return mapPersistenceError(a.repo.DeleteExpiredSessions(ctx, reference))
}

func toApplicationPerson(model persistence.Person) application.Person {
	return application.Person{
		ID:         model.ID,
		Identifier: model.Identifier,
		FullName:   model.FullName,
		Role:       model.Role,
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistencePerson(person application.Person) persistence.Person {
	return persistence.Person{
		ID:         person.ID,
		Identifier: person.Identifier,
		FullName:   person.FullName,
		Role:       person.Role,
		Status:     person.Status,
		CreatedAt:  person.CreatedAt,
		UpdatedAt:  person.UpdatedAt,
	}
}

func toApplicationOperator(model persistence.Operator) application.Operator {
	return application.Operator{
		ID:          model.ID,
		Email:       model.Email,
		DisplayName: model.DisplayName,
		IsAdmin:     model.IsAdmin,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		ID:         model.ID,
		OperatorID: model.OperatorID,
		Token:      model.Token,
		ExpiresAt:  model.ExpiresAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		RevokedAt:  cloneTime(model.RevokedAt),
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:         session.ID,
		OperatorID: session.OperatorID,
		Token:      session.Token,
		ExpiresAt:  session.ExpiresAt,
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
		RevokedAt:  cloneTime(session.RevokedAt),
	}
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
