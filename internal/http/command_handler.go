package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/hr-assistant/internal/application"
	"github.com/example/hr-assistant/internal/command"
	"github.com/example/hr-assistant/internal/rut"
)

type commandService interface {
	Preview(ctx context.Context, params application.PreviewParams) (application.PreviewResult, error)
	Execute(ctx context.Context, params application.ExecuteParams) (application.ExecutionResult, error)
}

type CommandHandler struct {
	service   commandService
	responder responder
	logger    *slog.Logger
}

func NewCommandHandler(service commandService, logger *slog.Logger) *CommandHandler {
	base := defaultLogger(logger)
	return &CommandHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CommandHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CommandHandler", operation, attrs...)
}

func (h *CommandHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Preview", "principal_id", principal.OperatorID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode command request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Preview", "principal_id", principal.OperatorID)

	result, err := h.service.Preview(r.Context(), application.PreviewParams{
		Principal: principal,
		Text:      req.Text,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "command preview failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With(
		"category", string(result.Preview.Command.Category),
		"can_execute", result.Preview.CanExecute,
	).InfoContext(r.Context(), "command previewed")

	h.responder.writeJSON(r.Context(), w, http.StatusOK, previewResponse{Preview: toPreviewDTO(result.Preview)})
}

func (h *CommandHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Execute", "principal_id", principal.OperatorID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode command request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Execute", "principal_id", principal.OperatorID)

	result, err := h.service.Execute(r.Context(), application.ExecuteParams{
		Principal: principal,
		Text:      req.Text,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "command execution failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With(
		"category", string(result.Preview.Command.Category),
		"absence_id", result.AbsenceID,
	).InfoContext(r.Context(), "command executed")

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, executeResponse{
		Preview:    toPreviewDTO(result.Preview),
		AbsenceID:  result.AbsenceID,
		Collection: result.Collection,
	})
}

type commandRequest struct {
	Text string `json:"text"`
}

type previewResponse struct {
	Preview previewDTO `json:"preview"`
}

type executeResponse struct {
	Preview    previewDTO `json:"preview"`
	AbsenceID  string     `json:"absence_id"`
	Collection string     `json:"collection"`
}

type previewDTO struct {
	Category          string            `json:"category"`
	CategoryLabel     string            `json:"category_label"`
	Confidence        float64           `json:"confidence"`
	Identifier        string            `json:"identifier,omitempty"`
	RawIdentifier     string            `json:"raw_identifier,omitempty"`
	StartDate         string            `json:"start_date,omitempty"`
	EndDate           string            `json:"end_date,omitempty"`
	StartTime         string            `json:"start_time,omitempty"`
	EndTime           string            `json:"end_time,omitempty"`
	DurationDays      int               `json:"duration_days,omitempty"`
	Reason            string            `json:"reason,omitempty"`
	Person            *previewPersonDTO `json:"person,omitempty"`
	PersonNotFound    bool              `json:"person_not_found"`
	ActionDescription string            `json:"action_description"`
	TargetCollection  string            `json:"target_collection,omitempty"`
	Errors            []string          `json:"errors,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	CanExecute        bool              `json:"can_execute"`
}

type previewPersonDTO struct {
	ID                  string `json:"id"`
	Identifier          string `json:"identifier"`
	IdentifierFormatted string `json:"identifier_formatted"`
	FullName            string `json:"full_name"`
	Role                string `json:"role,omitempty"`
	Status              string `json:"status"`
}

func toPreviewDTO(preview command.CommandPreview) previewDTO {
	parsed := preview.Command

	dto := previewDTO{
		Category:          string(parsed.Category),
		CategoryLabel:     parsed.Category.Label(),
		Confidence:        parsed.Confidence,
		Identifier:        parsed.Identifier,
		RawIdentifier:     parsed.RawIdentifier,
		StartDate:         parsed.StartDate,
		EndDate:           parsed.EndDate,
		StartTime:         parsed.StartTime,
		EndTime:           parsed.EndTime,
		DurationDays:      parsed.DurationDays,
		Reason:            parsed.Reason,
		PersonNotFound:    preview.PersonNotFound,
		ActionDescription: preview.ActionDescription,
		TargetCollection:  preview.TargetCollection,
		Errors:            translateMessages(parsed.Errors),
		Warnings:          translateMessages(preview.Warnings),
		CanExecute:        preview.CanExecute,
	}

	if preview.Person != nil {
		dto.Person = &previewPersonDTO{
			ID:                  preview.Person.ID,
			Identifier:          preview.Person.Identifier,
			IdentifierFormatted: rut.Format(preview.Person.Identifier),
			FullName:            preview.Person.FullName,
			Role:                preview.Person.Role,
			Status:              preview.Person.Status,
		}
	}

	return dto
}
