package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/hr-assistant/internal/application"
	"github.com/example/hr-assistant/internal/rut"
)

type personService interface {
	CreatePerson(ctx context.Context, params application.CreatePersonParams) (application.Person, error)
	UpdatePerson(ctx context.Context, params application.UpdatePersonParams) (application.Person, error)
	DeletePerson(ctx context.Context, principal application.Principal, personID string) error
	GetPerson(ctx context.Context, principal application.Principal, personID string) (application.Person, error)
	ListPeople(ctx context.Context, principal application.Principal) ([]application.Person, error)
}

type PersonHandler struct {
	service   personService
	responder responder
	logger    *slog.Logger
}

func NewPersonHandler(service personService, logger *slog.Logger) *PersonHandler {
	base := defaultLogger(logger)
	return &PersonHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *PersonHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PersonHandler", operation, attrs...)
}

func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.OperatorID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode person request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.OperatorID)

	person, err := h.service.CreatePerson(r.Context(), application.CreatePersonParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "person creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("person_id", person.ID).InfoContext(r.Context(), "person created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, personResponse{Person: toPersonDTO(person)})
}

func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	personID, ok := PersonIDFromContext(r.Context())
	if !ok || strings.TrimSpace(personID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing person id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.OperatorID, "person_id", personID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode person update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.OperatorID, "person_id", personID)

	person, err := h.service.UpdatePerson(r.Context(), application.UpdatePersonParams{
		Principal: principal,
		PersonID:  personID,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "person update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "person updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, personResponse{Person: toPersonDTO(person)})
}

func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	personID, ok := PersonIDFromContext(r.Context())
	if !ok || strings.TrimSpace(personID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing person id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.OperatorID, "person_id", personID)
	if err := h.service.DeletePerson(r.Context(), principal, personID); err != nil {
		logger.ErrorContext(r.Context(), "person delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "person deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	personID, ok := PersonIDFromContext(r.Context())
	if !ok || strings.TrimSpace(personID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing person id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.OperatorID, "person_id", personID)

	person, err := h.service.GetPerson(r.Context(), principal, personID)
	if err != nil {
		logger.ErrorContext(r.Context(), "person get failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, personResponse{Person: toPersonDTO(person)})
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.OperatorID)
	people, err := h.service.ListPeople(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "person list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(people)).InfoContext(r.Context(), "people listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listPeopleResponse{People: toPersonDTOs(people)})
}

type personRequest struct {
	Identifier string `json:"identifier"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

func (r personRequest) toInput() application.PersonInput {
	return application.PersonInput{
		Identifier: strings.TrimSpace(r.Identifier),
		FullName:   strings.TrimSpace(r.FullName),
		Role:       strings.TrimSpace(r.Role),
		Status:     strings.TrimSpace(r.Status),
	}
}

type personResponse struct {
	Person personDTO `json:"person"`
}

type listPeopleResponse struct {
	People []personDTO `json:"people"`
}

type personDTO struct {
	ID                  string `json:"id"`
	Identifier          string `json:"identifier"`
	IdentifierFormatted string `json:"identifier_formatted"`
	FullName            string `json:"full_name"`
	Role                string `json:"role"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

func toPersonDTO(person application.Person) personDTO {
	return personDTO{
		ID:                  person.ID,
		Identifier:          person.Identifier,
		IdentifierFormatted: rut.Format(person.Identifier),
		FullName:            person.FullName,
		Role:                person.Role,
		Status:              person.Status,
		CreatedAt:           person.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:           person.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toPersonDTOs(people []application.Person) []personDTO {
	if len(people) == 0 {
		return nil
	}
	out := make([]personDTO, 0, len(people))
	for _, person := range people {
		out = append(out, toPersonDTO(person))
	}
	return out
}
